// Command pizzabot runs the pizzeria WhatsApp ordering bot: it connects a
// messaging transport, wires the conversation engine to the pizzeria backend
// API and serves the health/notify HTTP endpoints.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lasenhorita/pizzabot/internal/api"
	"github.com/lasenhorita/pizzabot/internal/backend"
	"github.com/lasenhorita/pizzabot/internal/flow"
	"github.com/lasenhorita/pizzabot/internal/messaging"
	"github.com/lasenhorita/pizzabot/internal/session"
	"github.com/lasenhorita/pizzabot/internal/twiliowhatsapp"
	"github.com/lasenhorita/pizzabot/internal/util"
	"github.com/lasenhorita/pizzabot/internal/whatsapp"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for bot state data
	DefaultStateDir = "/var/lib/pizzabot"
	// DefaultDBFileName is the default whatsmeow SQLite database filename
	DefaultDBFileName = "whatsmeow.db"
	// DefaultAPIURL is the default pizzeria backend base URL
	DefaultAPIURL = "http://localhost:3000/api"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if err := run(flags); err != nil {
		slog.Error("pizzabot failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("pizzabot exited successfully")
}

// Config holds environment configuration
type Config struct {
	APIURL      string
	WhatsAppDSN string
	StateDir    string
	NotifyAddr  string
	Provider    string
}

// Flags holds command line flag values
type Flags struct {
	qrOutput   *string
	numeric    *bool
	stateDir   *string
	dbDSN      *string
	apiURL     *string
	notifyAddr *string
	provider   *string
}

// initializeLogger sets up structured logging; LOG_DEBUG lowers the level.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("LOG_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		APIURL:      os.Getenv("API_URL"),
		WhatsAppDSN: os.Getenv("WHATSAPP_DB_DSN"),
		StateDir:    os.Getenv("PIZZABOT_STATE_DIR"),
		NotifyAddr:  os.Getenv("NOTIFY_ADDR"),
		Provider:    os.Getenv("MESSAGING_PROVIDER"),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No PIZZABOT_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
		slog.Debug("No API_URL set, using default", "api_url", config.APIURL)
	}
	if config.WhatsAppDSN == "" {
		config.WhatsAppDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.WhatsAppDSN)
	}
	if config.Provider == "" {
		config.Provider = "whatsmeow"
	}

	slog.Debug("environment variables loaded",
		"API_URL", config.APIURL,
		"WHATSAPP_DB_DSN_SET", config.WhatsAppDSN != "",
		"PIZZABOT_STATE_DIR", config.StateDir,
		"NOTIFY_ADDR", config.NotifyAddr,
		"MESSAGING_PROVIDER", config.Provider)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		qrOutput:   flag.String("qr-output", "", "path to write login QR code"),
		numeric:    flag.Bool("numeric-code", false, "use numeric login code instead of QR code"),
		stateDir:   flag.String("state-dir", config.StateDir, "state directory for bot data (overrides $PIZZABOT_STATE_DIR)"),
		dbDSN:      flag.String("db-dsn", config.WhatsAppDSN, "database DSN for the WhatsApp device store (overrides $WHATSAPP_DB_DSN)"),
		apiURL:     flag.String("api-url", config.APIURL, "pizzeria backend base URL (overrides $API_URL)"),
		notifyAddr: flag.String("notify-addr", config.NotifyAddr, "listen address for the health/notify API (overrides $NOTIFY_ADDR)"),
		provider:   flag.String("provider", config.Provider, "messaging provider: whatsmeow or twilio (overrides $MESSAGING_PROVIDER)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"qrOutput", *flags.qrOutput,
		"numeric", *flags.numeric,
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"apiURL", *flags.apiURL,
		"notifyAddr", *flags.notifyAddr,
		"provider", *flags.provider)

	if *flags.dbDSN == config.WhatsAppDSN && config.WhatsAppDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if !strings.Contains(*flags.dbDSN, "postgres://") && !strings.Contains(*flags.dbDSN, "host=") {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
	}
	return nil
}

// buildMessagingService constructs the configured messaging provider.
func buildMessagingService(flags Flags) (messaging.Service, []api.Option, error) {
	var apiOpts []api.Option
	if *flags.notifyAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.notifyAddr))
	}

	if strings.EqualFold(*flags.provider, "twilio") {
		client, err := twiliowhatsapp.NewClient()
		if err != nil {
			return nil, nil, err
		}
		service := messaging.NewTwilioService(client)
		apiOpts = append(apiOpts, api.WithTwilioWebhook(service.WebhookHandler))
		return service, apiOpts, nil
	}

	var waOpts []whatsapp.Option
	if *flags.qrOutput != "" {
		waOpts = append(waOpts, whatsapp.WithQRCodeOutput(*flags.qrOutput))
	}
	if *flags.numeric {
		waOpts = append(waOpts, whatsapp.WithNumericCode())
	}
	if *flags.dbDSN != "" {
		waOpts = append(waOpts, whatsapp.WithDBDSN(*flags.dbDSN))
	}
	client, err := whatsapp.NewClient(waOpts...)
	if err != nil {
		return nil, nil, err
	}
	return messaging.NewWhatsAppService(client), apiOpts, nil
}

// run wires the modules together and serves until interrupted.
func run(flags Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, apiOpts, err := buildMessagingService(flags)
	if err != nil {
		return err
	}
	defer func() {
		if err := service.Stop(); err != nil {
			slog.Error("Failed to stop messaging service", "error", err)
		}
	}()

	client, err := backend.NewClient(backend.WithBaseURL(*flags.apiURL))
	if err != nil {
		return err
	}

	sessions := session.NewInMemoryStore()
	engine := flow.NewEngine(sessions, client, client, client)
	dispatcher := messaging.NewDispatcher(service, engine, sessions, client)

	if err := service.Start(ctx); err != nil {
		return err
	}
	go dispatcher.Run(ctx)

	server := api.NewServer(service, dispatcher, apiOpts...)
	slog.Info("Bootstrapping pizzabot", "provider", *flags.provider, "api_url", *flags.apiURL)
	return server.Run(ctx)
}
