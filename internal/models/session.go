package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ConvState names the conversation state a session is currently in. Each
// state has exactly one handler in the flow engine.
type ConvState string

const (
	// StateStart is the first-contact state; resolves the customer by phone.
	StateStart ConvState = "START"
	// StateMainMenu offers the top-level options (order/track/info/human).
	StateMainMenu ConvState = "MAIN_MENU"
	// StateRegisterName captures the name of a new customer.
	StateRegisterName ConvState = "REGISTER_NAME"
	// StateRegisterAddress captures the street address of a new customer.
	StateRegisterAddress ConvState = "REGISTER_ADDRESS"
	// StateRegisterNeighborhood selects the neighborhood and creates the customer.
	StateRegisterNeighborhood ConvState = "REGISTER_NEIGHBORHOOD"
	// StateSelectCategory chooses a menu category.
	StateSelectCategory ConvState = "SELECT_CATEGORY"
	// StateSelectSize chooses a pizza size.
	StateSelectSize ConvState = "SELECT_SIZE"
	// StateSelectToppingCount chooses how many distinct toppings (1..max).
	StateSelectToppingCount ConvState = "SELECT_TOPPING_COUNT"
	// StateSelectTopping picks one topping; repeats until the count is reached.
	StateSelectTopping ConvState = "SELECT_TOPPING"
	// StateSelectCrust picks the optional stuffed crust and closes the pizza.
	StateSelectCrust ConvState = "SELECT_CRUST"
	// StateSelectProduct picks a non-pizza product.
	StateSelectProduct ConvState = "SELECT_PRODUCT"
	// StateItemAdded offers to add more items or check out.
	StateItemAdded ConvState = "ITEM_ADDED"
	// StateCartReview shows the cart and subtotal.
	StateCartReview ConvState = "CART_REVIEW"
	// StateRemoveItem picks a cart item to remove.
	StateRemoveItem ConvState = "REMOVE_ITEM"
	// StateDeliveryType chooses delivery vs pickup.
	StateDeliveryType ConvState = "DELIVERY_TYPE"
	// StateCollectAddress captures the delivery address inline at checkout.
	StateCollectAddress ConvState = "COLLECT_ADDRESS"
	// StateCollectNeighborhood captures the delivery neighborhood at checkout.
	StateCollectNeighborhood ConvState = "COLLECT_NEIGHBORHOOD"
	// StatePaymentMethod chooses cash/credit/debit/PIX.
	StatePaymentMethod ConvState = "PAYMENT_METHOD"
	// StateChangeAmount captures the amount tendered for change.
	StateChangeAmount ConvState = "CHANGE_AMOUNT"
	// StateOrderSummary is the final confirmation before submission.
	StateOrderSummary ConvState = "ORDER_SUMMARY"
	// StateTrackOrder lists and inspects recent orders.
	StateTrackOrder ConvState = "TRACK_ORDER"
)

// CartItemKind discriminates pizza items from simple products.
type CartItemKind string

const (
	CartItemPizza   CartItemKind = "pizza"
	CartItemProduct CartItemKind = "produto"
)

// CartItem is a composed line in a session's cart. It is immutable once
// added, except for removal.
type CartItem struct {
	Kind        CartItemKind
	Name        string
	Description string

	// Pizza fields.
	Size     *PizzaSize
	Toppings []Product
	Crust    *Crust

	// Simple product field.
	Product *Product

	UnitPrice decimal.Decimal
	Quantity  int
	Note      string
}

// Subtotal returns the line subtotal (unit price times quantity).
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RegistrationDraft is the scratch data of the name/address/neighborhood
// capture flow, both at registration and at inline checkout collection.
type RegistrationDraft struct {
	Name    string
	Address string
	Fees    []DeliveryFee
}

// PizzaDraft is the scratch data of the pizza composition flow.
type PizzaDraft struct {
	Sizes        []PizzaSize
	Size         *PizzaSize
	ToppingCount int
	Toppings     []Product
	Candidates   []Product
	Crusts       []Crust
}

// CheckoutDraft is the scratch data of the delivery/payment/confirmation flow.
type CheckoutDraft struct {
	DeliveryType  DeliveryType
	Subtotal      decimal.Decimal
	Fee           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	ChangeFor     decimal.Decimal
}

// Session is the per-conversation state held in memory for the process
// lifetime. One session per phone number; never expired.
type Session struct {
	Phone  string
	ChatID string
	State  ConvState

	Customer *Customer
	Cart     []CartItem

	// Browse scratch: catalog listings shown to the user, kept so a numeric
	// reply can be resolved against exactly what was displayed.
	Categories   []Category
	Category     *Category
	Products     []Product
	RecentOrders []Order

	// Flow scratch, one per active flow.
	Reg      *RegistrationDraft
	Pizza    *PizzaDraft
	Checkout *CheckoutDraft
}

// NewSession creates a session in the START state for the given phone.
func NewSession(phone, chatID string) *Session {
	return &Session{Phone: phone, ChatID: chatID, State: StateStart}
}

// CartSubtotal returns the sum of line subtotals over the cart.
func (s *Session) CartSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ClearScratch drops all per-flow working data, keeping customer and cart.
func (s *Session) ClearScratch() {
	s.Categories = nil
	s.Category = nil
	s.Products = nil
	s.RecentOrders = nil
	s.Reg = nil
	s.Pizza = nil
	s.Checkout = nil
}

// Reset returns the session to the main menu with an empty cart, as the
// global escape commands do.
func (s *Session) Reset() {
	s.State = StateMainMenu
	s.Cart = nil
	s.ClearScratch()
}

// IsEscapeCommand reports whether the text is one of the global commands
// that reset the conversation from any state.
func IsEscapeCommand(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "menu", "cancelar":
		return true
	default:
		return false
	}
}
