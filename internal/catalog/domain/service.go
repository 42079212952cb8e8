package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	ListProducts(ctx context.Context, req ListProductsRequest) ([]ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*ProductResponse, error)
	UpdateStock(ctx context.Context, id string, quantity int) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateProductImage(ctx context.Context, req CreateProductImageRequest) (*ProductImageResponse, error)
	ListProductImages(ctx context.Context, productID string) ([]ProductImageResponse, error)
	DeleteProductImage(ctx context.Context, id string) error
}

// Notifier enqueues asynchronous product notifications. Enqueue must never
// block the write path; delivery failures are the dispatcher's concern.
type Notifier interface {
	EnqueueNewProduct(productID int64)
	EnqueueProductUpdated(productID int64)
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID string `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	ID       string
	Name     *string `json:"name"`
	ParentID *string `json:"parent_id"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

type CreateProductRequest struct {
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   *string        `json:"description"`
	Price         float64        `json:"price"`
	SKU           string         `json:"sku"`
	StockQuantity int            `json:"stock_quantity"`
	CategoryID    string         `json:"category_id"`
	IsActive      *bool          `json:"is_active"`
	Metadata      map[string]any `json:"metadata"`
}

type UpdateProductRequest struct {
	ID            string
	Name          *string        `json:"name"`
	Description   *string        `json:"description"`
	Price         *float64       `json:"price"`
	StockQuantity *int           `json:"stock_quantity"`
	CategoryID    *string        `json:"category_id"`
	IsActive      *bool          `json:"is_active"`
	Metadata      map[string]any `json:"metadata"`
}

type ListProductsRequest struct {
	CategoryID string
	IsActive   *bool
	SortBy     string
	OrderBy    string
}

type ProductResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   *string        `json:"description,omitempty"`
	Price         float64        `json:"price"`
	SKU           string         `json:"sku"`
	StockQuantity int            `json:"stock_quantity"`
	CategoryID    string         `json:"category_id"`
	CategoryName  string         `json:"category_name,omitempty"`
	IsActive      bool           `json:"is_active"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CreatedBy     string         `json:"created_by"`
	UpdatedBy     string         `json:"updated_by,omitempty"`
}

type CreateProductImageRequest struct {
	ProductID string `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

type ProductImageResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
}

var (
	ErrInvalidActor    = errors.New("invalid_actor")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidSKU      = errors.New("invalid_sku")
	ErrInvalidStock    = errors.New("invalid_stock")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidParent   = errors.New("invalid_parent")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidImageURL = errors.New("invalid_image_url")
	ErrInvalidID       = errors.New("invalid_id")
	ErrDuplicateSlug   = errors.New("duplicate_slug")
	ErrDuplicateSKU    = errors.New("duplicate_sku")
	ErrNotFound        = errors.New("not_found")
)
