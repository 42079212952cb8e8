package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/sellapp/internal/catalog/domain"
	"gorm.io/gorm"
)

type categoryRepo struct{}

func ProvideCategoryRepository() domain.CategoryRepository {
	return &categoryRepo{}
}

func (r *categoryRepo) Insert(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	var category domain.Category
	err := db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var categories []domain.Category
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) FindChildren(ctx context.Context, db *gorm.DB, parentID int64) ([]domain.Category, error) {
	var categories []domain.Category
	if err := db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

type productRepo struct{}

func ProvideProductRepository() domain.ProductRepository {
	return &productRepo{}
}

func (r *productRepo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, db *gorm.DB, sku string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

var productSortColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
	"updated_at": true,
}

func (r *productRepo) List(ctx context.Context, db *gorm.DB, filter domain.ListProductFilter) ([]domain.Product, error) {
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if filter.CategoryID != 0 {
		stmt = stmt.Where("category_id = ?", filter.CategoryID)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	sortBy := strings.TrimSpace(filter.SortBy)
	if !productSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "ASC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderBy), "desc") {
		order = "DESC"
	}

	var products []domain.Product
	if err := stmt.Order(sortBy + " " + order).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) FindLowStock(ctx context.Context, db *gorm.DB, threshold int) ([]domain.Product, error) {
	var products []domain.Product
	err := db.WithContext(ctx).
		Where("stock_quantity <= ? AND is_active = ?", threshold, true).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

type productImageRepo struct{}

func ProvideProductImageRepository() domain.ProductImageRepository {
	return &productImageRepo{}
}

func (r *productImageRepo) Insert(ctx context.Context, db *gorm.DB, image *domain.ProductImage) error {
	return db.WithContext(ctx).Create(image).Error
}

func (r *productImageRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.ProductImage, error) {
	var image domain.ProductImage
	err := db.WithContext(ctx).First(&image, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepo) FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductImage, error) {
	var images []domain.ProductImage
	if err := db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productImageRepo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.ProductImage{}, "id = ?", id).Error
}
