package domain

import (
	"time"

	"gorm.io/gorm"
)

type Role struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:text;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Role) TableName() string { return "roles" }

type User struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email        string         `gorm:"type:text" json:"email,omitempty"`
	PasswordHash string         `gorm:"type:text;not null" json:"-"`
	RoleID       int64          `gorm:"not null;index" json:"role_id"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
