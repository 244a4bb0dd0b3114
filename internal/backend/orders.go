package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lasenhorita/pizzabot/internal/models"
)

// CreateOrder submits a composed order and returns the persisted order with
// its backend-assigned number.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var out models.Order
	if err := c.post(ctx, "/pedidos", req, &out); err != nil {
		return nil, err
	}
	slog.Info("Backend order created", "order_id", out.ID, "number", out.Number, "total", out.Total)
	return &out, nil
}

// OrdersByCustomer returns the customer's most recent orders (the backend
// caps the listing at ten).
func (c *Client) OrdersByCustomer(ctx context.Context, customerID int) ([]models.Order, error) {
	var out []models.Order
	if _, err := c.get(ctx, fmt.Sprintf("/pedidos/cliente/%d", customerID), &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderByID returns the full order detail with its items.
func (c *Client) OrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	var out models.Order
	found, err := c.get(ctx, fmt.Sprintf("/pedidos/%d", orderID), &out, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}
