package domain

import (
	"time"

	"gorm.io/gorm"
)

// TargetType identifies what a comment is attached to. Only products and
// news articles accept comments.
type TargetType string

const (
	TargetProduct TargetType = "product"
	TargetNews    TargetType = "news"
)

func (t TargetType) Valid() bool {
	return t == TargetProduct || t == TargetNews
}

type Comment struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	TargetType TargetType     `gorm:"type:text;not null;index:ix_comments_target,priority:1" json:"target_type"`
	TargetID   int64          `gorm:"not null;index:ix_comments_target,priority:2" json:"target_id"`
	Rating     *int           `json:"rating,omitempty"`
	Body       *string        `gorm:"type:text" json:"body,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedBy  int64          `gorm:"not null" json:"created_by"`
	UpdatedBy  *int64         `json:"updated_by,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Comment) TableName() string { return "comments" }
