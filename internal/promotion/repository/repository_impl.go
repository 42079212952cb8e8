package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/sellapp/internal/promotion/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, promotion *domain.Promotion) error {
	return db.WithContext(ctx).Create(promotion).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Promotion, error) {
	var promotion domain.Promotion
	err := db.WithContext(ctx).First(&promotion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Promotion, error) {
	var promotions []domain.Promotion
	if err := db.WithContext(ctx).Order("start_date DESC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, promotion *domain.Promotion) error {
	return db.WithContext(ctx).Save(promotion).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Promotion{}, "id = ?", id).Error
}

func (r *repo) InsertLink(ctx context.Context, db *gorm.DB, link *domain.PromotionProduct) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) FindLinks(ctx context.Context, db *gorm.DB, promotionID int64) ([]domain.PromotionProduct, error) {
	var links []domain.PromotionProduct
	if err := db.WithContext(ctx).Where("promotion_id = ?", promotionID).Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) DeleteLink(ctx context.Context, db *gorm.DB, promotionID, productID int64) error {
	return db.WithContext(ctx).
		Where("promotion_id = ? AND product_id = ?", promotionID, productID).
		Delete(&domain.PromotionProduct{}).Error
}
