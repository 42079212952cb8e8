package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/sellapp/internal/comment/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, comment *domain.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	if err := db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Comment, error) {
	var comments []domain.Comment
	tx := db.WithContext(ctx).Model(&domain.Comment{})
	if filter.TargetType != "" {
		tx = tx.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID != 0 {
		tx = tx.Where("target_id = ?", filter.TargetID)
	}
	if err := tx.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id).Error
}
