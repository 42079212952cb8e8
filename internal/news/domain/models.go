package domain

import (
	"time"

	"gorm.io/gorm"
)

type News struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"type:text;not null" json:"title"`
	Slug      string         `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Content   *string        `gorm:"type:text" json:"content,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedBy int64          `gorm:"not null" json:"created_by"`
	UpdatedBy *int64         `json:"updated_by,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (News) TableName() string { return "news" }
