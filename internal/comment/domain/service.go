package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	TargetType string  `json:"target_type"`
	TargetID   string  `json:"target_id"`
	Rating     *int    `json:"rating"`
	Body       *string `json:"body"`
}

type ListRequest struct {
	TargetType string
	TargetID   string
}

type Response struct {
	ID         string     `json:"id"`
	TargetType TargetType `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Rating     *int       `json:"rating,omitempty"`
	Body       *string    `json:"body,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	CreatedBy  string     `json:"created_by"`
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidTarget = errors.New("invalid_target")
	ErrInvalidRating = errors.New("invalid_rating")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
