package domain

import (
	"time"

	"gorm.io/gorm"
)

type Promotion struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Slug        string         `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time      `gorm:"not null" json:"start_date"`
	EndDate     time.Time      `gorm:"not null" json:"end_date"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedBy   int64          `gorm:"not null" json:"created_by"`
	UpdatedBy   *int64         `json:"updated_by,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Promotion) TableName() string { return "promotions" }

// PromotionProduct links a product into a promotion. Links are plain rows
// with no soft delete: detaching removes the row so the pair can be
// re-attached later without tripping the unique index.
type PromotionProduct struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	PromotionID int64     `gorm:"not null;uniqueIndex:ux_promotion_product,priority:1" json:"promotion_id"`
	ProductID   int64     `gorm:"not null;uniqueIndex:ux_promotion_product,priority:2" json:"product_id"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy   int64     `gorm:"not null" json:"created_by"`
}

func (PromotionProduct) TableName() string { return "promotion_products" }
