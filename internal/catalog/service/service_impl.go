package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
	"github.com/smallbiznis/sellapp/internal/cache"
	"github.com/smallbiznis/sellapp/internal/catalog/domain"
	"github.com/smallbiznis/sellapp/internal/clock"
	"github.com/smallbiznis/sellapp/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const minPrice = 0.01

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Categories domain.CategoryRepository
	Products   domain.ProductRepository
	Images     domain.ProductImageRepository
	Evictor    cache.Evictor
	Notifier   domain.Notifier
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	categories domain.CategoryRepository
	products   domain.ProductRepository
	images     domain.ProductImageRepository
	evictor    cache.Evictor
	notifier   domain.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("catalog.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		categories: p.Categories,
		products:   p.Products,
		images:     p.Images,
		evictor:    p.Evictor,
		notifier:   p.Notifier,
	}
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.CategoryResponse, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	var parentID *int64
	if strings.TrimSpace(req.ParentID) != "" {
		id, err := parseID(req.ParentID)
		if err != nil {
			return nil, domain.ErrInvalidParent
		}
		parent, err := s.categories.FindByID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrInvalidParent
		}
		parentID = &id
	}

	now := s.clock.Now()
	category := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		Slug:      assignSlug(req.Slug, name),
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor.Int64(),
	}
	if err := s.categories.Insert(ctx, s.db, category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}

	s.evictCategory(ctx, category.ID)
	s.log.Info("category created", zap.String("name", category.Name), zap.String("slug", category.Slug))

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, toCategoryResponse(&categories[i]))
	}
	return resp, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.CategoryResponse, error) {
	categoryID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *Service) UpdateCategory(ctx context.Context, req domain.UpdateCategoryRequest) (*domain.CategoryResponse, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	categoryID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		// The slug is assigned once at creation and never rewritten.
		category.Name = name
	}
	if req.ParentID != nil {
		if strings.TrimSpace(*req.ParentID) == "" {
			category.ParentID = nil
		} else {
			id, err := parseID(*req.ParentID)
			if err != nil || id == categoryID {
				return nil, domain.ErrInvalidParent
			}
			parent, err := s.categories.FindByID(ctx, s.db, id)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, domain.ErrInvalidParent
			}
			category.ParentID = &id
		}
	}

	actorID := actor.Int64()
	category.UpdatedBy = &actorID
	category.UpdatedAt = s.clock.Now()
	if err := s.categories.Update(ctx, s.db, category); err != nil {
		return nil, err
	}

	s.evictCategory(ctx, category.ID)

	resp := toCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory removes a category and, recursively, every category whose
// parent chain leads to it. The whole subtree is deleted in one transaction;
// cache keys are evicted only after the transaction commits.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return err
	}

	category, err := s.categories.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}

	deleted := []int64{categoryID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		queue := []int64{categoryID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			children, err := s.categories.FindChildren(ctx, tx, current)
			if err != nil {
				return err
			}
			for i := range children {
				queue = append(queue, children[i].ID)
				deleted = append(deleted, children[i].ID)
			}

			if err := s.categories.Delete(ctx, tx, current); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range deleted {
		s.evictCategory(ctx, id)
	}
	s.log.Info("category deleted", zap.String("name", category.Name), zap.Int("cascaded", len(deleted)-1))
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.ProductResponse, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price < minPrice {
		return nil, domain.ErrInvalidPrice
	}
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, domain.ErrInvalidSKU
	}
	if req.StockQuantity < 0 {
		return nil, domain.ErrInvalidStock
	}

	categoryID, err := parseID(req.CategoryID)
	if err != nil {
		return nil, domain.ErrInvalidCategory
	}
	category, err := s.categories.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidCategory
	}

	description := strings.TrimSpace(ptrToString(req.Description))
	var descriptionPtr *string
	if description != "" {
		descriptionPtr = &description
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:            s.genID.Generate().Int64(),
		Name:          name,
		Slug:          assignSlug(req.Slug, name),
		Description:   descriptionPtr,
		Price:         req.Price,
		SKU:           sku,
		StockQuantity: req.StockQuantity,
		CategoryID:    categoryID,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actor.Int64(),
	}
	if req.Metadata != nil {
		product.Metadata = datatypes.JSONMap(req.Metadata)
	}
	if err := s.products.Insert(ctx, s.db, product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// The driver does not say which unique column collided.
			if existing, lookupErr := s.products.FindBySKU(ctx, s.db, sku); lookupErr == nil && existing != nil {
				return nil, domain.ErrDuplicateSKU
			}
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}

	s.evictProduct(ctx, product.ID)
	s.notifier.EnqueueNewProduct(product.ID)
	s.log.Info("product created", zap.String("name", product.Name), zap.String("sku", product.SKU))

	resp := s.toProductResponse(product, category)
	return &resp, nil
}

func (s *Service) ListProducts(ctx context.Context, req domain.ListProductsRequest) ([]domain.ProductResponse, error) {
	filter := domain.ListProductFilter{
		IsActive: req.IsActive,
		SortBy:   strings.TrimSpace(req.SortBy),
		OrderBy:  strings.TrimSpace(req.OrderBy),
	}
	if strings.TrimSpace(req.CategoryID) != "" {
		categoryID, err := parseID(req.CategoryID)
		if err != nil {
			return nil, domain.ErrInvalidCategory
		}
		filter.CategoryID = categoryID
	}

	products, err := s.products.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, s.toProductResponse(&products[i], nil))
	}
	return resp, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.ProductResponse, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	category, err := s.categories.FindByID(ctx, s.db, product.CategoryID)
	if err != nil {
		return nil, err
	}

	resp := s.toProductResponse(product, category)
	return &resp, nil
}

func (s *Service) UpdateProduct(ctx context.Context, req domain.UpdateProductRequest) (*domain.ProductResponse, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	productID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		product.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			product.Description = nil
		} else {
			product.Description = &description
		}
	}
	if req.Price != nil {
		if *req.Price < minPrice {
			return nil, domain.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, domain.ErrInvalidStock
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.CategoryID != nil {
		categoryID, err := parseID(*req.CategoryID)
		if err != nil {
			return nil, domain.ErrInvalidCategory
		}
		category, err := s.categories.FindByID(ctx, s.db, categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrInvalidCategory
		}
		product.CategoryID = categoryID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Metadata != nil {
		product.Metadata = datatypes.JSONMap(req.Metadata)
	}

	actorID := actor.Int64()
	product.UpdatedBy = &actorID
	product.UpdatedAt = s.clock.Now()
	if err := s.products.Update(ctx, s.db, product); err != nil {
		return nil, err
	}

	s.evictProduct(ctx, product.ID)
	s.notifier.EnqueueProductUpdated(product.ID)
	s.log.Info("product updated", zap.String("name", product.Name), zap.String("sku", product.SKU))

	resp := s.toProductResponse(product, nil)
	return &resp, nil
}

func (s *Service) UpdateStock(ctx context.Context, id string, quantity int) (*domain.ProductResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidStock
	}
	return s.UpdateProduct(ctx, domain.UpdateProductRequest{
		ID:            id,
		StockQuantity: &quantity,
	})
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	if err := s.products.Delete(ctx, s.db, productID); err != nil {
		return err
	}

	s.evictProduct(ctx, productID)
	s.log.Info("product deleted", zap.String("name", product.Name), zap.String("sku", product.SKU))
	return nil
}

func (s *Service) CreateProductImage(ctx context.Context, req domain.CreateProductImageRequest) (*domain.ProductImageResponse, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return nil, domain.ErrInvalidImageURL
	}

	productID, err := parseID(req.ProductID)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}
	product, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}

	now := s.clock.Now()
	image := &domain.ProductImage{
		ID:        s.genID.Generate().Int64(),
		ProductID: productID,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor.Int64(),
	}
	if err := s.images.Insert(ctx, s.db, image); err != nil {
		return nil, err
	}

	// Images render as part of the product detail.
	s.evictProduct(ctx, productID)

	resp := toProductImageResponse(image)
	return &resp, nil
}

func (s *Service) ListProductImages(ctx context.Context, productID string) ([]domain.ProductImageResponse, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}

	images, err := s.images.FindByProduct(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ProductImageResponse, 0, len(images))
	for i := range images {
		resp = append(resp, toProductImageResponse(&images[i]))
	}
	return resp, nil
}

func (s *Service) DeleteProductImage(ctx context.Context, id string) error {
	imageID, err := parseID(id)
	if err != nil {
		return err
	}

	image, err := s.images.FindByID(ctx, s.db, imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return domain.ErrNotFound
	}

	if err := s.images.Delete(ctx, s.db, imageID); err != nil {
		return err
	}

	s.evictProduct(ctx, image.ProductID)
	return nil
}

func (s *Service) evictProduct(ctx context.Context, id int64) {
	s.evictor.Evict(ctx, cache.EntityKey(cache.KindProduct, id), cache.ListKey(cache.KindProduct))
}

func (s *Service) evictCategory(ctx context.Context, id int64) {
	s.evictor.Evict(ctx, cache.EntityKey(cache.KindCategory, id), cache.ListKey(cache.KindCategory))
}

func (s *Service) toProductResponse(p *domain.Product, category *domain.Category) domain.ProductResponse {
	resp := domain.ProductResponse{
		ID:            snowflake.ID(p.ID).String(),
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		SKU:           p.SKU,
		StockQuantity: p.StockQuantity,
		CategoryID:    snowflake.ID(p.CategoryID).String(),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CreatedBy:     snowflake.ID(p.CreatedBy).String(),
	}
	if category != nil {
		resp.CategoryName = category.Name
	}
	if p.UpdatedBy != nil {
		resp.UpdatedBy = snowflake.ID(*p.UpdatedBy).String()
	}
	if len(p.Metadata) > 0 {
		resp.Metadata = map[string]any(p.Metadata)
	}
	return resp
}

func toCategoryResponse(c *domain.Category) domain.CategoryResponse {
	resp := domain.CategoryResponse{
		ID:        snowflake.ID(c.ID).String(),
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		CreatedBy: snowflake.ID(c.CreatedBy).String(),
	}
	if c.ParentID != nil {
		resp.ParentID = snowflake.ID(*c.ParentID).String()
	}
	if c.UpdatedBy != nil {
		resp.UpdatedBy = snowflake.ID(*c.UpdatedBy).String()
	}
	return resp
}

func toProductImageResponse(i *domain.ProductImage) domain.ProductImageResponse {
	return domain.ProductImageResponse{
		ID:        snowflake.ID(i.ID).String(),
		ProductID: snowflake.ID(i.ProductID).String(),
		ImageURL:  i.ImageURL,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
		CreatedBy: snowflake.ID(i.CreatedBy).String(),
	}
}

// assignSlug keeps a caller-provided slug and otherwise derives one from the
// display name. Collisions surface as a uniqueness violation on insert.
func assignSlug(explicit, name string) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return slug.Make(trimmed)
	}
	return slug.Make(name)
}

func parseID(raw string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}

func ptrToString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
