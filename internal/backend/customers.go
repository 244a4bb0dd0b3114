package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lasenhorita/pizzabot/internal/format"
	"github.com/lasenhorita/pizzabot/internal/models"
)

// CustomerByPhone looks up a customer record by phone number. A missing
// customer is a normal outcome and returns (nil, nil).
func (c *Client) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	digits := format.Digits(phone)
	if digits == "" {
		return nil, models.ErrEmptyPhone
	}
	var out models.Customer
	found, err := c.get(ctx, "/clientes/telefone/"+digits, &out, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}

// CreateCustomer creates a customer record and returns it.
func (c *Client) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	var out models.Customer
	if err := c.post(ctx, "/clientes", req, &out); err != nil {
		return nil, err
	}
	slog.Info("Backend customer created", "customer_id", out.ID, "phone", out.Phone)
	return &out, nil
}

// UpdateCustomer updates the address fields of an existing customer.
func (c *Client) UpdateCustomer(ctx context.Context, id int, req models.UpdateCustomerRequest) (*models.Customer, error) {
	var out models.Customer
	if err := c.put(ctx, fmt.Sprintf("/clientes/%d", id), req, &out); err != nil {
		return nil, err
	}
	slog.Info("Backend customer updated", "customer_id", id)
	return &out, nil
}
