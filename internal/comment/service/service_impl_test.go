package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/sellapp/internal/catalog/repository"
	"github.com/smallbiznis/sellapp/internal/comment/domain"
	"github.com/smallbiznis/sellapp/internal/comment/repository"
	newsdomain "github.com/smallbiznis/sellapp/internal/news/domain"
	newsrepository "github.com/smallbiznis/sellapp/internal/news/repository"
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

func newTestService(t *testing.T) (*Service, *recordingEvictor, context.Context, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&newsdomain.News{},
		&domain.Comment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	evictor := &recordingEvictor{}
	svc := New(Params{
		DB:       db,
		Log:      zaptest.NewLogger(t),
		GenID:    node,
		Repo:     repository.Provide(),
		Products: catalogrepository.ProvideProductRepository(),
		News:     newsrepository.Provide(),
		Evictor:  evictor,
	}).(*Service)

	ctx := actorcontext.WithActorID(context.Background(), node.Generate().Int64())
	return svc, evictor, ctx, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node) *catalogdomain.Product {
	t.Helper()
	product := &catalogdomain.Product{
		ID:            node.Generate().Int64(),
		Name:          "Widget",
		Slug:          "widget",
		SKU:           "W-1",
		Price:         9.99,
		StockQuantity: 4,
		CategoryID:    node.Generate().Int64(),
		IsActive:      true,
		CreatedBy:     node.Generate().Int64(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateCommentEvictsTargetKeys(t *testing.T) {
	svc, evictor, ctx, db, node := newTestService(t)
	product := seedProduct(t, db, node)

	rating := 4
	comment, err := svc.Create(ctx, domain.CreateRequest{
		TargetType: "product",
		TargetID:   snowflake.ID(product.ID).String(),
		Rating:     &rating,
	})
	require.NoError(t, err)

	productID := snowflake.ID(product.ID).String()
	assert.Contains(t, evictor.keys, "comment_"+comment.ID)
	assert.Contains(t, evictor.keys, "comments_list")
	assert.Contains(t, evictor.keys, "product_"+productID+"_comments")
	assert.Contains(t, evictor.keys, "product_"+productID+"_rating")
}

func TestCreateCommentValidation(t *testing.T) {
	svc, _, ctx, db, node := newTestService(t)
	product := seedProduct(t, db, node)
	productID := snowflake.ID(product.ID).String()

	_, err := svc.Create(ctx, domain.CreateRequest{TargetType: "order", TargetID: productID})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	missing := snowflake.ID(node.Generate().Int64()).String()
	_, err = svc.Create(ctx, domain.CreateRequest{TargetType: "product", TargetID: missing})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	for _, rating := range []int{0, 6} {
		r := rating
		_, err = svc.Create(ctx, domain.CreateRequest{TargetType: "product", TargetID: productID, Rating: &r})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}

	_, err = svc.Create(context.Background(), domain.CreateRequest{TargetType: "product", TargetID: productID})
	assert.ErrorIs(t, err, domain.ErrInvalidActor)
}

func TestDeleteCommentEvictsTargetKeys(t *testing.T) {
	svc, evictor, ctx, db, node := newTestService(t)
	product := seedProduct(t, db, node)

	comment, err := svc.Create(ctx, domain.CreateRequest{
		TargetType: "product",
		TargetID:   snowflake.ID(product.ID).String(),
	})
	require.NoError(t, err)

	evictor.keys = nil
	require.NoError(t, svc.Delete(ctx, comment.ID))

	productID := snowflake.ID(product.ID).String()
	assert.Contains(t, evictor.keys, "comment_"+comment.ID)
	assert.Contains(t, evictor.keys, "product_"+productID+"_comments")

	_, err = svc.Get(ctx, comment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCommentsByTarget(t *testing.T) {
	svc, _, ctx, db, node := newTestService(t)
	product := seedProduct(t, db, node)
	other := seedOtherProduct(t, db, node)

	for _, target := range []*catalogdomain.Product{product, product, other} {
		_, err := svc.Create(ctx, domain.CreateRequest{
			TargetType: "product",
			TargetID:   snowflake.ID(target.ID).String(),
		})
		require.NoError(t, err)
	}

	comments, err := svc.List(ctx, domain.ListRequest{
		TargetType: "product",
		TargetID:   snowflake.ID(product.ID).String(),
	})
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func seedOtherProduct(t *testing.T, db *gorm.DB, node *snowflake.Node) *catalogdomain.Product {
	t.Helper()
	product := &catalogdomain.Product{
		ID:            node.Generate().Int64(),
		Name:          "Gadget",
		Slug:          "gadget",
		SKU:           "G-1",
		Price:         19.99,
		StockQuantity: 2,
		CategoryID:    node.Generate().Int64(),
		IsActive:      true,
		CreatedBy:     node.Generate().Int64(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
