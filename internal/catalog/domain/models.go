package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Slug      string         `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	ParentID  *int64         `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedBy int64          `gorm:"not null" json:"created_by"`
	UpdatedBy *int64         `json:"updated_by,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID            int64             `gorm:"primaryKey" json:"id"`
	Name          string            `gorm:"type:text;not null" json:"name"`
	Slug          string            `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description   *string           `gorm:"type:text" json:"description,omitempty"`
	Price         float64           `gorm:"not null" json:"price"`
	SKU           string            `gorm:"column:sku;type:text;not null;uniqueIndex" json:"sku"`
	StockQuantity int               `gorm:"not null;default:0" json:"stock_quantity"`
	CategoryID    int64             `gorm:"not null;index" json:"category_id"`
	IsActive      bool              `gorm:"not null;default:true" json:"is_active"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedBy     int64             `gorm:"not null" json:"created_by"`
	UpdatedBy     *int64            `json:"updated_by,omitempty"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	ProductID int64          `gorm:"not null;index" json:"product_id"`
	ImageURL  string         `gorm:"type:text;not null" json:"image_url"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedBy int64          `gorm:"not null" json:"created_by"`
	UpdatedBy *int64         `json:"updated_by,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductImage) TableName() string { return "product_images" }
