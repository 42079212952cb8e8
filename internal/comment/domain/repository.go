package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, comment *Comment) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Comment, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Comment, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListFilter struct {
	TargetType TargetType
	TargetID   int64
}
