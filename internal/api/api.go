// Package api exposes the bot's HTTP surface: a health probe and the
// backend-facing notify endpoint used to push order updates to customers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/lasenhorita/pizzabot/internal/messaging"
	"github.com/lasenhorita/pizzabot/internal/models"
)

// DefaultAddr is the default listen address for the bot API.
const DefaultAddr = ":3001"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr          string
	TwilioWebhook http.HandlerFunc
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithTwilioWebhook mounts the Twilio inbound webhook on the router.
func WithTwilioWebhook(h http.HandlerFunc) Option {
	return func(o *Opts) { o.TwilioWebhook = h }
}

// Server serves the bot HTTP API.
type Server struct {
	addr       string
	service    messaging.Service
	dispatcher *messaging.Dispatcher
	httpServer *http.Server
}

// NewServer creates the API server around a messaging service and dispatcher.
func NewServer(service messaging.Service, dispatcher *messaging.Dispatcher, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	s := &Server{
		addr:       cfg.Addr,
		service:    service,
		dispatcher: dispatcher,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", s.healthHandler)
	r.Post("/notify", s.notifyHandler)
	if cfg.TwilioWebhook != nil {
		r.Post("/twilio/webhook", cfg.TwilioWebhook)
		slog.Info("Server Twilio webhook mounted", "path", "/twilio/webhook")
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("Server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// healthHandler reports process liveness and transport connectivity.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]interface{}{
		"connected": s.service.Connected(),
		"time":      time.Now().UTC().Format(time.RFC3339),
	}))
}

// notifyHandler pushes a backend-originated message to a customer. It prefers
// an existing conversation thread and falls back to addressing the phone
// number directly.
func (s *Server) notifyHandler(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server notify bad payload", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON payload"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server notify missing fields", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("telefone and mensagem are required"))
		return
	}

	if !s.service.Connected() {
		slog.Warn("Server notify rejected, transport offline", "phone", req.Phone)
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Messaging transport not connected"))
		return
	}

	to, err := s.dispatcher.ResolveThread(req.Phone)
	if err != nil {
		if !errors.Is(err, models.ErrThreadNotFound) {
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		slog.Debug("Server notify no conversation thread, addressing phone directly", "phone", req.Phone)
		to = req.Phone
	}

	if err := s.service.SendMessage(r.Context(), to, req.Message); err != nil {
		slog.Error("Server notify send failed", "phone", req.Phone, "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to deliver message"))
		return
	}

	slog.Info("Server notify delivered", "phone", req.Phone)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Message delivered", nil))
}
