package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error

	AttachProduct(ctx context.Context, promotionID, productID string) (*LinkResponse, error)
	DetachProduct(ctx context.Context, promotionID, productID string) error
	ListProducts(ctx context.Context, promotionID string) ([]LinkResponse, error)
}

type CreateRequest struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateRequest struct {
	ID          string
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type Response struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
}

type LinkResponse struct {
	ID          string    `json:"id"`
	PromotionID string    `json:"promotion_id"`
	ProductID   string    `json:"product_id"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrInvalidActor     = errors.New("invalid_actor")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrInvalidProduct   = errors.New("invalid_product")
	ErrInvalidID        = errors.New("invalid_id")
	ErrDuplicateSlug    = errors.New("duplicate_slug")
	ErrDuplicateLink    = errors.New("duplicate_link")
	ErrNotFound         = errors.New("not_found")
)
