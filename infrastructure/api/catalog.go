package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront-go/domain/catalog"
)

type priceDTO struct {
	Discount  int `json:"discount"`
	BaseCost  int `json:"base_cost"`
	TotalCost int `json:"total_cost"`
}

type productDTO struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     int64    `json:"category,omitempty"`
	Price        priceDTO `json:"price"`
	Rating       float64  `json:"rating"`
	CountReviews int      `json:"count_reviews"`
	PreviewImage string   `json:"preview_image"`
	Images       []string `json:"images,omitempty"`
}

func (d productDTO) toDomain() catalog.Product {
	return catalog.Product{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Price: catalog.Price{
			Base:     d.Price.BaseCost,
			Total:    d.Price.TotalCost,
			Discount: d.Price.Discount,
		},
		Rating:       d.Rating,
		ReviewCount:  d.CountReviews,
		PreviewImage: d.PreviewImage,
		Images:       d.Images,
	}
}

type filterDTO struct {
	MinPrice   int  `json:"min_price"`
	MaxPrice   int  `json:"max_price"`
	IsNew      bool `json:"is_new"`
	IsRating   bool `json:"is_rating"`
	IsDiscount bool `json:"is_discount"`
}

type productQueryDTO struct {
	QueryString   string     `json:"query_string,omitempty"`
	PageNum       int        `json:"page_num"`
	Count         int        `json:"count"`
	Category      int64      `json:"category"`
	Filter        *filterDTO `json:"filter"`
	SortKey       string     `json:"sort_key"`
	SortDirection string     `json:"sort_direction"`
}

func newProductQuery(q catalog.Query) productQueryDTO {
	dto := productQueryDTO{
		QueryString:   q.Search,
		PageNum:       q.Page,
		Count:         q.Count,
		Category:      q.Category,
		SortKey:       q.SortKey,
		SortDirection: q.SortDirection,
	}
	if q.Filter != nil {
		dto.Filter = &filterDTO{
			MinPrice:   q.Filter.MinPrice,
			MaxPrice:   q.Filter.MaxPrice,
			IsNew:      q.Filter.IsNew,
			IsRating:   q.Filter.IsRating,
			IsDiscount: q.Filter.IsDiscount,
		}
	}
	return dto
}

type productPageDTO struct {
	Products      []productDTO `json:"list_preview_products"`
	MaxCountPages int          `json:"max_count_pages"`
}

// CatalogRepository implements catalog.Repository.
type CatalogRepository struct {
	client Client
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(client Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

// ListProducts returns a page of a category listing.
func (r *CatalogRepository) ListProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	return r.page(ctx, "/api/v1/product", q)
}

// SearchProducts returns a page of search results.
func (r *CatalogRepository) SearchProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	return r.page(ctx, "/api/v1/product/search", q)
}

func (r *CatalogRepository) page(ctx context.Context, path string, q catalog.Query) (*catalog.Page, error) {
	var resp productPageDTO
	if err := r.client.Do(ctx, http.MethodPost, path, newProductQuery(q), &resp); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	page := &catalog.Page{
		Products:   make([]catalog.Product, 0, len(resp.Products)),
		PagesCount: resp.MaxCountPages,
		Current:    q.Page,
	}
	for _, p := range resp.Products {
		page.Products = append(page.Products, p.toDomain())
	}
	return page, nil
}

// GetProduct returns a single product.
func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	var resp productDTO
	if err := r.client.Do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/product/%d", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	p := resp.toDomain()
	return &p, nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
