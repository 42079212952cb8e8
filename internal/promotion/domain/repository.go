package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, promotion *Promotion) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Promotion, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Promotion, error)
	Update(ctx context.Context, db *gorm.DB, promotion *Promotion) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error

	InsertLink(ctx context.Context, db *gorm.DB, link *PromotionProduct) error
	FindLinks(ctx context.Context, db *gorm.DB, promotionID int64) ([]PromotionProduct, error)
	DeleteLink(ctx context.Context, db *gorm.DB, promotionID, productID int64) error
}
