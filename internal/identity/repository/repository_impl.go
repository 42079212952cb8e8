package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/sellapp/internal/identity/domain"
	"gorm.io/gorm"
)

type roleRepo struct{}

func ProvideRoleRepository() domain.RoleRepository {
	return &roleRepo{}
}

func (r *roleRepo) Insert(ctx context.Context, db *gorm.DB, role *domain.Role) error {
	return db.WithContext(ctx).Create(role).Error
}

func (r *roleRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Role, error) {
	var role domain.Role
	err := db.WithContext(ctx).First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Role, error) {
	var roles []domain.Role
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepo) Update(ctx context.Context, db *gorm.DB, role *domain.Role) error {
	return db.WithContext(ctx).Save(role).Error
}

func (r *roleRepo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Role{}, "id = ?", id).Error
}

type userRepo struct{}

func ProvideUserRepository() domain.UserRepository {
	return &userRepo{}
}

func (r *userRepo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, db *gorm.DB, filter domain.ListUserFilter) ([]domain.User, error) {
	stmt := db.WithContext(ctx).Model(&domain.User{})
	if filter.RoleID != 0 {
		stmt = stmt.Where("role_id = ?", filter.RoleID)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var users []domain.User
	if err := stmt.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error
}
