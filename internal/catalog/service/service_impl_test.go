package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
	"github.com/smallbiznis/sellapp/internal/catalog/domain"
	"github.com/smallbiznis/sellapp/internal/catalog/repository"
	"github.com/smallbiznis/sellapp/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type recordingEvictor struct {
	keys []string
}

func (e *recordingEvictor) Evict(ctx context.Context, keys ...string) {
	e.keys = append(e.keys, keys...)
}

type recordingNotifier struct {
	created []int64
	updated []int64
}

func (n *recordingNotifier) EnqueueNewProduct(productID int64)     { n.created = append(n.created, productID) }
func (n *recordingNotifier) EnqueueProductUpdated(productID int64) { n.updated = append(n.updated, productID) }

func newTestService(t *testing.T) (*Service, *recordingEvictor, *recordingNotifier, context.Context, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.ProductImage{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	evictor := &recordingEvictor{}
	notifier := &recordingNotifier{}
	clk := clock.NewFakeClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:         db,
		Log:        zaptest.NewLogger(t),
		GenID:      node,
		Clock:      clk,
		Categories: repository.ProvideCategoryRepository(),
		Products:   repository.ProvideProductRepository(),
		Images:     repository.ProvideProductImageRepository(),
		Evictor:    evictor,
		Notifier:   notifier,
	}).(*Service)

	ctx := actorcontext.WithActorID(context.Background(), node.Generate().Int64())
	return svc, evictor, notifier, ctx, clk
}

func createCategory(t *testing.T, svc *Service, ctx context.Context, name string) *domain.CategoryResponse {
	t.Helper()
	category, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return category
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc, evictor, _, ctx, _ := newTestService(t)

	category := createCategory(t, svc, ctx, "Home & Garden")
	assert.Equal(t, "home-garden", category.Slug)
	assert.Contains(t, evictor.keys, "category_"+category.ID)
	assert.Contains(t, evictor.keys, "categories_list")
}

func TestCreateCategoryRequiresActor(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), domain.CreateCategoryRequest{Name: "Books"})
	assert.ErrorIs(t, err, domain.ErrInvalidActor)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)

	createCategory(t, svc, ctx, "Books")
	_, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "books"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestCreateCategorySlugReservedAfterDelete(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)

	category := createCategory(t, svc, ctx, "Books")
	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	_, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "Books"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestDeleteCategoryCascades(t *testing.T) {
	svc, evictor, _, ctx, _ := newTestService(t)

	root := createCategory(t, svc, ctx, "Electronics")
	child, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "Phones", ParentID: root.ID})
	require.NoError(t, err)
	grandchild, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "Smartphones", ParentID: child.ID})
	require.NoError(t, err)

	evictor.keys = nil
	require.NoError(t, svc.DeleteCategory(ctx, root.ID))

	for _, id := range []string{root.ID, child.ID, grandchild.ID} {
		_, err := svc.GetCategory(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, evictor.keys, "category_"+id)
	}
}

func TestCreateProduct(t *testing.T) {
	svc, evictor, notifier, ctx, _ := newTestService(t)

	category := createCategory(t, svc, ctx, "Books")
	evictor.keys = nil

	product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name:          "Go in Practice",
		Price:         34.99,
		SKU:           "BOOK-001",
		StockQuantity: 5,
		CategoryID:    category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "go-in-practice", product.Slug)
	assert.Equal(t, category.ID, product.CategoryID)
	assert.Equal(t, "Books", product.CategoryName)
	assert.True(t, product.IsActive)
	assert.Contains(t, evictor.keys, "product_"+product.ID)
	assert.Contains(t, evictor.keys, "products_list")
	require.Len(t, notifier.created, 1)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)
	category := createCategory(t, svc, ctx, "Books")

	_, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Free", Price: 0, SKU: "X", StockQuantity: 1, CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "No SKU", Price: 1, StockQuantity: 1, CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSKU)

	_, err = svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Negative", Price: 1, SKU: "Y", StockQuantity: -1, CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	_, err = svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Orphan", Price: 1, SKU: "Z", StockQuantity: 1, CategoryID: "999999",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)
	category := createCategory(t, svc, ctx, "Books")

	_, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "First", Price: 1, SKU: "DUP-1", StockQuantity: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Second", Price: 1, SKU: "DUP-1", StockQuantity: 1, CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestUpdateProduct(t *testing.T) {
	svc, evictor, notifier, ctx, clk := newTestService(t)
	category := createCategory(t, svc, ctx, "Books")

	product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Original", Price: 10, SKU: "UPD-1", StockQuantity: 3, CategoryID: category.ID,
	})
	require.NoError(t, err)

	evictor.keys = nil
	clk.Advance(time.Minute)
	newName := "Renamed"
	newPrice := 12.50
	updated, err := svc.UpdateProduct(ctx, domain.UpdateProductRequest{
		ID:    product.ID,
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 12.50, updated.Price)
	// Slug is fixed at creation.
	assert.Equal(t, product.Slug, updated.Slug)
	assert.True(t, updated.UpdatedAt.After(product.UpdatedAt))
	assert.Contains(t, evictor.keys, "product_"+product.ID)
	require.Len(t, notifier.updated, 1)
	assert.Equal(t, notifier.created[0], notifier.updated[0])
}

func TestUpdateStock(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)
	category := createCategory(t, svc, ctx, "Books")

	product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Stocked", Price: 5, SKU: "STK-1", StockQuantity: 3, CategoryID: category.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStock(ctx, product.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.StockQuantity)

	_, err = svc.UpdateStock(ctx, product.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestDeleteProductEvicts(t *testing.T) {
	svc, evictor, _, ctx, _ := newTestService(t)
	category := createCategory(t, svc, ctx, "Books")

	product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Doomed", Price: 5, SKU: "DEL-1", StockQuantity: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	evictor.keys = nil
	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	assert.Contains(t, evictor.keys, "product_"+product.ID)
	assert.Contains(t, evictor.keys, "products_list")

	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductImages(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)
	category := createCategory(t, svc, ctx, "Books")

	product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name: "Pictured", Price: 5, SKU: "IMG-1", StockQuantity: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	image, err := svc.CreateProductImage(ctx, domain.CreateProductImageRequest{
		ProductID: product.ID,
		ImageURL:  "https://cdn.example.com/p/1.jpg",
	})
	require.NoError(t, err)

	images, err := svc.ListProductImages(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, image.ID, images[0].ID)

	require.NoError(t, svc.DeleteProductImage(ctx, image.ID))
	images, err = svc.ListProductImages(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}
