package domain

import (
	"context"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Insert(ctx context.Context, db *gorm.DB, role *Role) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Role, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Role, error)
	Update(ctx context.Context, db *gorm.DB, role *Role) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type UserRepository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListUserFilter) ([]User, error)
	Update(ctx context.Context, db *gorm.DB, user *User) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListUserFilter struct {
	RoleID   int64
	IsActive *bool
}
