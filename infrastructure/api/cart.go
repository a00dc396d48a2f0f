package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront-go/domain/cart"
)

type cartItemDTO struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Price        priceDTO `json:"price"`
	PreviewImage string   `json:"preview_image"`
	Count        int      `json:"count"`
}

type cartDTO struct {
	Products []cartItemDTO `json:"products"`
	Price    struct {
		TotalDiscount int `json:"total_discount"`
		TotalCost     int `json:"total_cost"`
		TotalBaseCost int `json:"total_base_cost"`
	} `json:"price"`
}

type cartArticleDTO struct {
	ProductID int64 `json:"product_id"`
	Count     int   `json:"count,omitempty"`
}

// CartRepository implements cart.Repository.
type CartRepository struct {
	client Client
}

// NewCartRepository creates a cart repository.
func NewCartRepository(client Client) *CartRepository {
	return &CartRepository{client: client}
}

// Get returns the session cart.
func (r *CartRepository) Get(ctx context.Context) (*cart.Cart, error) {
	var resp cartDTO
	if err := r.client.Do(ctx, http.MethodGet, "/api/v1/cart", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	c := &cart.Cart{
		Items:     make([]cart.Item, 0, len(resp.Products)),
		TotalCost: resp.Price.TotalCost,
		BaseCost:  resp.Price.TotalBaseCost,
	}
	for _, p := range resp.Products {
		c.Items = append(c.Items, cart.Item{
			ProductID:    p.ID,
			Title:        p.Title,
			PreviewImage: p.PreviewImage,
			Count:        p.Count,
			Price:        p.Price.TotalCost,
		})
	}
	return c, nil
}

// Add puts a product into the cart.
func (r *CartRepository) Add(ctx context.Context, productID int64, count int) error {
	body := cartArticleDTO{ProductID: productID, Count: count}
	if err := r.client.Do(ctx, http.MethodPost, "/api/v1/cart/product", body, nil); err != nil {
		return fmt.Errorf("failed to add product %d to cart: %w", productID, err)
	}
	return nil
}

// Remove deletes a product line from the cart.
func (r *CartRepository) Remove(ctx context.Context, productID int64) error {
	body := cartArticleDTO{ProductID: productID}
	if err := r.client.Do(ctx, http.MethodDelete, "/api/v1/cart/product", body, nil); err != nil {
		return fmt.Errorf("failed to remove product %d from cart: %w", productID, err)
	}
	return nil
}

var _ cart.Repository = (*CartRepository)(nil)
