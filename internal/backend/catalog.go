package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lasenhorita/pizzabot/internal/models"
)

// Categories returns the active menu categories in display order.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if _, err := c.get(ctx, "/categorias", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductsByCategory returns the active products of one category, each with
// its nested size prices or single price.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	var out []models.Product
	path := fmt.Sprintf("/produtos?categoria_id=%d", categoryID)
	if _, err := c.get(ctx, path, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Sizes returns the active pizza sizes.
func (c *Client) Sizes(ctx context.Context) ([]models.PizzaSize, error) {
	var out []models.PizzaSize
	if _, err := c.get(ctx, "/tamanhos", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Crusts returns the active stuffed crusts.
func (c *Client) Crusts(ctx context.Context) ([]models.Crust, error) {
	var out []models.Crust
	if _, err := c.get(ctx, "/bordas", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliveryFees returns every neighborhood fee row.
func (c *Client) DeliveryFees(ctx context.Context) ([]models.DeliveryFee, error) {
	var out []models.DeliveryFee
	if _, err := c.get(ctx, "/taxas", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliveryFeeByNeighborhood looks up the fee for a neighborhood. The backend
// matches case-insensitively on partial names and falls back to its
// designated "other" row; a 404 means no fee could be resolved at all.
func (c *Client) DeliveryFeeByNeighborhood(ctx context.Context, neighborhood string) (*models.DeliveryFee, error) {
	var out models.DeliveryFee
	path := "/taxas/bairro/" + url.PathEscape(neighborhood)
	found, err := c.get(ctx, path, &out, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}
