package domain

import (
	"context"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Insert(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Category, error)
	FindChildren(ctx context.Context, db *gorm.DB, parentID int64) ([]Category, error)
	Update(ctx context.Context, db *gorm.DB, category *Category) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ProductRepository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindBySKU(ctx context.Context, db *gorm.DB, sku string) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListProductFilter) ([]Product, error)
	FindLowStock(ctx context.Context, db *gorm.DB, threshold int) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ProductImageRepository interface {
	Insert(ctx context.Context, db *gorm.DB, image *ProductImage) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*ProductImage, error)
	FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]ProductImage, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListProductFilter struct {
	CategoryID int64
	IsActive   *bool
	SortBy     string
	OrderBy    string
}
