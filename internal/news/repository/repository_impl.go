package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/sellapp/internal/news/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, article *domain.News) error {
	return db.WithContext(ctx).Create(article).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.News, error) {
	var article domain.News
	err := db.WithContext(ctx).First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.News, error) {
	var articles []domain.News
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, article *domain.News) error {
	return db.WithContext(ctx).Save(article).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.News{}, "id = ?", id).Error
}
