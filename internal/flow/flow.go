// Package flow implements the conversational order-taking state machine.
//
// The engine interprets each inbound text message against the session's
// current state, mutates the session and produces the next outbound text.
// Handlers are pure in (session, input) given the injected backend clients:
// invalid input leaves the state untouched and returns a targeted reprompt,
// and a failed external call leaves the session exactly as it was.
package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lasenhorita/pizzabot/internal/models"
	"github.com/lasenhorita/pizzabot/internal/session"
)

// Catalog is the read-only catalog and delivery-fee accessor.
type Catalog interface {
	Categories(ctx context.Context) ([]models.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	Sizes(ctx context.Context) ([]models.PizzaSize, error)
	Crusts(ctx context.Context) ([]models.Crust, error)
	DeliveryFees(ctx context.Context) ([]models.DeliveryFee, error)
	DeliveryFeeByNeighborhood(ctx context.Context, neighborhood string) (*models.DeliveryFee, error)
}

// Customers is the customer directory accessor.
type Customers interface {
	CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int, req models.UpdateCustomerRequest) (*models.Customer, error)
}

// Orders submits composed orders and reads them back for status display.
type Orders interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	OrdersByCustomer(ctx context.Context, customerID int) ([]models.Order, error)
	OrderByID(ctx context.Context, orderID int) (*models.Order, error)
}

// Engine dispatches inbound messages to per-state handlers.
type Engine struct {
	sessions  session.Store
	catalog   Catalog
	customers Customers
	orders    Orders
}

// NewEngine creates a flow engine with injected dependencies.
func NewEngine(sessions session.Store, catalog Catalog, customers Customers, orders Orders) *Engine {
	return &Engine{
		sessions:  sessions,
		catalog:   catalog,
		customers: customers,
		orders:    orders,
	}
}

// genericErrorReply is shown whenever an external call fails; the session
// stays in its current state so the user can simply retry.
const genericErrorReply = "❌ Desculpe, ocorreu um erro. Tente novamente ou digite *menu* para voltar ao início."

// HandleMessage consumes one inbound message for the session and returns
// the reply text. The global escape commands reset the conversation from
// any state before dispatch.
func (e *Engine) HandleMessage(ctx context.Context, sess *models.Session, text string) string {
	text = strings.TrimSpace(text)
	option := strings.ToLower(text)

	if models.IsEscapeCommand(option) {
		slog.Debug("Engine escape command", "phone", sess.Phone, "state", sess.State)
		sess.Reset()
		return e.mainMenuText(sess)
	}

	state := sess.State
	slog.Debug("Engine dispatching", "phone", sess.Phone, "state", state, "body_length", len(text))

	var reply string
	switch state {
	case models.StateStart, "":
		reply = e.handleStart(ctx, sess)
	case models.StateMainMenu:
		reply = e.handleMainMenu(ctx, sess, option)
	case models.StateRegisterName:
		reply = e.handleRegisterName(sess, text)
	case models.StateRegisterAddress:
		reply = e.handleRegisterAddress(ctx, sess, text)
	case models.StateRegisterNeighborhood:
		reply = e.handleRegisterNeighborhood(ctx, sess, text)
	case models.StateSelectCategory:
		reply = e.handleSelectCategory(ctx, sess, option)
	case models.StateSelectSize:
		reply = e.handleSelectSize(ctx, sess, option)
	case models.StateSelectToppingCount:
		reply = e.handleSelectToppingCount(ctx, sess, option)
	case models.StateSelectTopping:
		reply = e.handleSelectTopping(ctx, sess, option)
	case models.StateSelectCrust:
		reply = e.handleSelectCrust(sess, option)
	case models.StateSelectProduct:
		reply = e.handleSelectProduct(ctx, sess, option)
	case models.StateItemAdded:
		reply = e.handleItemAdded(ctx, sess, option)
	case models.StateCartReview:
		reply = e.handleCartReview(ctx, sess, option)
	case models.StateRemoveItem:
		reply = e.handleRemoveItem(sess, option)
	case models.StateDeliveryType:
		reply = e.handleDeliveryType(ctx, sess, option)
	case models.StateCollectAddress:
		reply = e.handleCollectAddress(ctx, sess, text)
	case models.StateCollectNeighborhood:
		reply = e.handleCollectNeighborhood(ctx, sess, text)
	case models.StatePaymentMethod:
		reply = e.handlePaymentMethod(sess, option)
	case models.StateChangeAmount:
		reply = e.handleChangeAmount(sess, text)
	case models.StateOrderSummary:
		reply = e.handleOrderSummary(ctx, sess, option)
	case models.StateTrackOrder:
		reply = e.handleTrackOrder(ctx, sess, option)
	default:
		slog.Warn("Engine unknown state, resetting", "phone", sess.Phone, "state", state)
		sess.Reset()
		reply = e.mainMenuText(sess)
	}

	if sess.State != state {
		slog.Info("Engine state transition", "phone", sess.Phone, "from", state, "to", sess.State)
	}
	return reply
}
