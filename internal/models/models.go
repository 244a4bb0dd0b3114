// Package models defines the core data structures for the pizzeria bot.
//
// It includes the catalog, customer and order entities mirrored from the
// pizzeria backend's JSON API, plus the shared API response envelope.
package models

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants for user-provided registration input.
const (
	// MinNameLength is the minimum accepted length for a customer name.
	MinNameLength = 2
	// MinAddressLength is the minimum accepted length for a street address.
	MinAddressLength = 5
)

// Error variables for better error handling and testability.
var (
	ErrEmptyPhone       = errors.New("phone cannot be empty")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrNameTooShort     = errors.New("customer name is too short")
	ErrAddressTooShort  = errors.New("address is too short")
	ErrNoToppings       = errors.New("pizza requires at least one topping")
	ErrTooManyToppings  = errors.New("topping count exceeds size limit")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrMissingCustomer  = errors.New("session has no resolved customer")
	ErrThreadNotFound   = errors.New("no conversation thread for phone")
	ErrTransportOffline = errors.New("messaging transport not connected")
)

// Customer is a customer record owned by the pizzeria backend.
type Customer struct {
	ID           int    `json:"id"`
	Name         string `json:"nome"`
	Phone        string `json:"telefone"`
	Address      string `json:"endereco,omitempty"`
	Neighborhood string `json:"bairro,omitempty"`
	Reference    string `json:"referencia,omitempty"`
}

// HasAddress reports whether the customer has a deliverable address on file.
func (c *Customer) HasAddress() bool {
	return c != nil && c.Address != "" && c.Neighborhood != ""
}

// Category is a menu category.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Order int    `json:"ordem"`
}

// SizePrice is the price of one pizza product at one size.
type SizePrice struct {
	SizeID int             `json:"tamanho_id"`
	Price  decimal.Decimal `json:"preco"`
}

// SimplePrice is the single price of a non-pizza product.
type SimplePrice struct {
	Price decimal.Decimal `json:"preco"`
}

// Product is a menu product; pizzas carry per-size prices, everything else a
// single price.
type Product struct {
	ID         int          `json:"id"`
	Name       string       `json:"nome"`
	CategoryID int          `json:"categoria_id"`
	IsPizza    bool         `json:"is_pizza"`
	Active     bool         `json:"ativo"`
	Price      *SimplePrice `json:"preco,omitempty"`
	SizePrices []SizePrice  `json:"precos,omitempty"`
}

// PriceAtSize returns the product's price at the given pizza size, or zero
// when no price row exists for that size.
func (p Product) PriceAtSize(sizeID int) decimal.Decimal {
	for _, sp := range p.SizePrices {
		if sp.SizeID == sizeID {
			return sp.Price
		}
	}
	return decimal.Zero
}

// UnitPrice returns the single price of a non-pizza product, preferring the
// nested price object and falling back to the first price row.
func (p Product) UnitPrice() decimal.Decimal {
	if p.Price != nil {
		return p.Price.Price
	}
	if len(p.SizePrices) > 0 {
		return p.SizePrices[0].Price
	}
	return decimal.Zero
}

// PizzaSize defines slice count and the maximum number of distinct toppings.
type PizzaSize struct {
	ID          int    `json:"id"`
	Name        string `json:"nome"`
	Slices      int    `json:"fatias"`
	MaxToppings int    `json:"max_sabores"`
}

// Crust is an optional stuffed-crust add-on with a fixed surcharge.
type Crust struct {
	ID        int             `json:"id"`
	Name      string          `json:"nome"`
	Surcharge decimal.Decimal `json:"preco"`
}

// DeliveryFee is a neighborhood-indexed flat delivery fee.
type DeliveryFee struct {
	ID               int             `json:"id"`
	Neighborhood     string          `json:"bairro"`
	Fee              decimal.Decimal `json:"taxa"`
	EstimatedMinutes int             `json:"tempo_estimado,omitempty"`
}

// DeliveryType distinguishes delivery from counter pickup.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "entrega"
	DeliveryTypePickup   DeliveryType = "retirada"
)

// PaymentMethod is the declared payment method captured at checkout.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentCredit PaymentMethod = "cartao_credito"
	PaymentDebit  PaymentMethod = "cartao_debito"
	PaymentPix    PaymentMethod = "pix"
)

// OrderStatus is the backend-owned order lifecycle. The bot reads it for
// display and never mutates it.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pendente"
	StatusConfirmed OrderStatus = "confirmado"
	StatusPreparing OrderStatus = "preparando"
	StatusReady     OrderStatus = "pronto"
	StatusOutForDel OrderStatus = "saiu_entrega"
	StatusDelivered OrderStatus = "entregue"
	StatusCancelled OrderStatus = "cancelado"
)

// IsValidOrderStatus checks if the given order status is known.
func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDel, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItemRef is a named reference embedded in a returned order item.
type OrderItemRef struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

// OrderItem is a persisted order line item.
type OrderItem struct {
	ProductID int             `json:"produto_id"`
	SizeID    *int            `json:"tamanho_id,omitempty"`
	CrustID   *int            `json:"borda_id,omitempty"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
	Note      string          `json:"observacao,omitempty"`

	// Populated by the backend on reads.
	Product *OrderItemRef `json:"produto,omitempty"`
	Size    *OrderItemRef `json:"tamanho,omitempty"`
	Crust   *OrderItemRef `json:"borda,omitempty"`
}

// Courier is the delivery courier attached to an out-for-delivery order.
type Courier struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

// Order is an order as created and returned by the backend.
type Order struct {
	ID              int              `json:"id"`
	Number          string           `json:"numero,omitempty"`
	CustomerID      int              `json:"cliente_id"`
	Status          OrderStatus      `json:"status"`
	DeliveryType    DeliveryType     `json:"tipo_entrega"`
	PaymentMethod   PaymentMethod    `json:"forma_pagamento"`
	ChangeFor       *decimal.Decimal `json:"troco_para,omitempty"`
	DeliveryAddress string           `json:"endereco_entrega,omitempty"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	DeliveryFee     decimal.Decimal  `json:"taxa_entrega"`
	Discount        decimal.Decimal  `json:"desconto"`
	Total           decimal.Decimal  `json:"total"`
	Items           []OrderItem      `json:"itens,omitempty"`
	Courier         *Courier         `json:"motoboy,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// DisplayNumber returns the backend-assigned order number, falling back to
// the numeric ID when the backend did not send one.
func (o Order) DisplayNumber() string {
	if o.Number != "" {
		return o.Number
	}
	return strconv.Itoa(o.ID)
}

// CreateOrderRequest is the payload for POST /pedidos.
type CreateOrderRequest struct {
	CustomerID      int              `json:"cliente_id"`
	DeliveryType    DeliveryType     `json:"tipo_entrega"`
	PaymentMethod   PaymentMethod    `json:"forma_pagamento"`
	ChangeFor       *decimal.Decimal `json:"troco_para,omitempty"`
	DeliveryAddress string           `json:"endereco_entrega,omitempty"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	DeliveryFee     decimal.Decimal  `json:"taxa_entrega"`
	Total           decimal.Decimal  `json:"total"`
	Items           []OrderItem      `json:"itens"`
	Phone           string           `json:"telefone,omitempty"`
}

// CreateCustomerRequest is the payload for POST /clientes.
type CreateCustomerRequest struct {
	Name         string `json:"nome"`
	Phone        string `json:"telefone"`
	Address      string `json:"endereco,omitempty"`
	Neighborhood string `json:"bairro,omitempty"`
	Reference    string `json:"referencia,omitempty"`
}

// UpdateCustomerRequest is the payload for PUT /clientes/:id. Nil fields are
// left untouched by the backend.
type UpdateCustomerRequest struct {
	Address      *string `json:"endereco,omitempty"`
	Neighborhood *string `json:"bairro,omitempty"`
}

// NotifyRequest is the payload of the bot-exposed POST /notify endpoint.
type NotifyRequest struct {
	Phone   string `json:"telefone"`
	Message string `json:"mensagem"`
}

// Validate checks the notify payload for required fields.
func (n *NotifyRequest) Validate() error {
	if n.Phone == "" {
		return ErrEmptyPhone
	}
	if n.Message == "" {
		return ErrEmptyMessage
	}
	return nil
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
