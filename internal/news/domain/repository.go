package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, article *News) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*News, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]News, error)
	Update(ctx context.Context, db *gorm.DB, article *News) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
