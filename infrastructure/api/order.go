package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront-go/domain/order"
)

type orderDTO struct {
	ID      int64 `json:"id"`
	Address struct {
		Address string `json:"address"`
	} `json:"address"`
	TotalCost     int `json:"total_cost"`
	ProductImages []struct {
		ID           int64  `json:"id"`
		PreviewImage string `json:"preview_image"`
	} `json:"product_images"`
	DateAdded    time.Time `json:"date_added"`
	DateDelivery time.Time `json:"date_delivery"`
	OrderNumber  struct {
		Number string `json:"number"`
	} `json:"order_number"`
	Status string `json:"status"`
}

type orderQueryDTO struct {
	PageNum       int    `json:"page_num"`
	Count         int    `json:"count"`
	SortKey       string `json:"sort_key"`
	SortDirection string `json:"sort_direction"`
}

type orderPageDTO struct {
	Orders        []orderDTO `json:"list_placed_orders"`
	MaxCountPages int        `json:"max_count_pages"`
}

// OrderRepository implements order.Repository.
type OrderRepository struct {
	client Client
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(client Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// List returns a page of the user's orders.
func (r *OrderRepository) List(ctx context.Context, q order.Query) (*order.Page, error) {
	body := orderQueryDTO{
		PageNum:       q.Page,
		Count:         q.Count,
		SortKey:       q.SortKey,
		SortDirection: q.SortDirection,
	}

	var resp orderPageDTO
	if err := r.client.Do(ctx, http.MethodPost, "/api/v1/user/order", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	page := &order.Page{
		Orders:     make([]order.Order, 0, len(resp.Orders)),
		PagesCount: resp.MaxCountPages,
		Current:    q.Page,
	}
	for _, o := range resp.Orders {
		images := make([]string, 0, len(o.ProductImages))
		for _, img := range o.ProductImages {
			images = append(images, img.PreviewImage)
		}
		page.Orders = append(page.Orders, order.Order{
			ID:           o.ID,
			Number:       o.OrderNumber.Number,
			Status:       o.Status,
			Address:      o.Address.Address,
			TotalCost:    o.TotalCost,
			DateAdded:    o.DateAdded,
			DateDelivery: o.DateDelivery,
			Images:       images,
		})
	}
	return page, nil
}

var _ order.Repository = (*OrderRepository)(nil)
