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
}

type CreateRequest struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Content *string `json:"content"`
}

type UpdateRequest struct {
	ID      string
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type Response struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidTitle  = errors.New("invalid_title")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateSlug = errors.New("duplicate_slug")
	ErrNotFound      = errors.New("not_found")
)
