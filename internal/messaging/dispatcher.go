package messaging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lasenhorita/pizzabot/internal/models"
	"github.com/lasenhorita/pizzabot/internal/session"
)

// Handler consumes one inbound message for a session and returns the reply.
type Handler interface {
	HandleMessage(ctx context.Context, sess *models.Session, text string) string
}

// Registrar is the customer-directory slice the dispatcher needs for
// first-contact auto-registration.
type Registrar interface {
	CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error)
}

// Dispatcher pulls inbound messages off the service's response channel and
// runs them through the conversation engine, one message at a time per
// conversation.
type Dispatcher struct {
	service   Service
	handler   Handler
	sessions  session.Store
	registrar Registrar
}

// NewDispatcher creates a dispatcher binding a transport to the engine. A nil
// registrar disables first-contact auto-registration.
func NewDispatcher(service Service, handler Handler, sessions session.Store, registrar Registrar) *Dispatcher {
	return &Dispatcher{
		service:   service,
		handler:   handler,
		sessions:  sessions,
		registrar: registrar,
	}
}

// Run consumes the response channel until it closes or the context is
// cancelled. Each message is processed in its own goroutine under the
// conversation's lock, so bursts from one sender are serialized while
// distinct conversations proceed independently.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("Dispatcher started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Dispatcher stopping due to context cancellation")
			return
		case resp, ok := <-d.service.Responses():
			if !ok {
				slog.Info("Dispatcher response channel closed")
				return
			}
			go d.dispatch(ctx, resp)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, resp models.Response) {
	id := uuid.NewString()
	if resp.From == "" || strings.TrimSpace(resp.Body) == "" {
		slog.Debug("Dispatcher dropping empty message", "message_id", id, "from", resp.From)
		return
	}

	lock := d.sessions.Lock(resp.From)
	lock.Lock()
	defer lock.Unlock()

	sess := d.sessions.GetOrCreate(resp.From, resp.ChatID)
	slog.Debug("Dispatcher handling message", "message_id", id, "from", resp.From, "state", sess.State)

	if sess.Customer == nil {
		d.autoRegister(ctx, sess, resp.PushName)
	}

	reply := d.handler.HandleMessage(ctx, sess, resp.Body)
	if reply == "" {
		return
	}

	to := threadOf(sess)
	if err := d.service.SendMessage(ctx, to, reply); err != nil {
		slog.Error("Dispatcher reply send failed", "message_id", id, "to", to, "error", err)
		return
	}
	slog.Debug("Dispatcher reply sent", "message_id", id, "to", to, "reply_length", len(reply))
}

// autoRegister creates a minimal customer record from the transport display
// name on first contact. Best-effort: any failure just leaves registration to
// the conversation flow.
func (d *Dispatcher) autoRegister(ctx context.Context, sess *models.Session, pushName string) {
	if d.registrar == nil || pushName == "" {
		return
	}
	existing, err := d.registrar.CustomerByPhone(ctx, sess.Phone)
	if err != nil {
		slog.Debug("Dispatcher auto-registration lookup failed", "phone", sess.Phone, "error", err)
		return
	}
	if existing != nil {
		sess.Customer = existing
		return
	}
	customer, err := d.registrar.CreateCustomer(ctx, models.CreateCustomerRequest{
		Name:  pushName,
		Phone: sess.Phone,
	})
	if err != nil {
		slog.Warn("Dispatcher auto-registration failed", "phone", sess.Phone, "error", err)
		return
	}
	sess.Customer = customer
	slog.Info("Dispatcher auto-registered customer", "phone", sess.Phone, "customer_id", customer.ID)
}

// threadOf returns the transport thread handle for a session. Sessions
// created before any inbound message carry no thread yet, so the bare phone
// stands in.
func threadOf(sess *models.Session) string {
	if sess.ChatID != "" {
		return sess.ChatID
	}
	return sess.Phone
}

// ResolveThread maps a backend-supplied phone number to the transport thread
// handle of an existing conversation, tolerating country-code differences by
// digit-suffix matching. Returns models.ErrThreadNotFound when no
// conversation matches.
func (d *Dispatcher) ResolveThread(phone string) (string, error) {
	digits := phoneNumberRegex.ReplaceAllString(phone, "")
	if digits == "" {
		return "", models.ErrEmptyPhone
	}
	if sess := d.sessions.Get(digits); sess != nil {
		return threadOf(sess), nil
	}

	var match *models.Session
	d.sessions.Range(func(sess *models.Session) bool {
		if strings.HasSuffix(sess.Phone, digits) || strings.HasSuffix(digits, sess.Phone) {
			match = sess
			return false
		}
		return true
	})
	if match == nil {
		return "", models.ErrThreadNotFound
	}
	return threadOf(match), nil
}
