package notification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/sellapp/internal/catalog/repository"
	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type sentEmail struct {
	To      []string
	Subject string
	Body    string
}

type fakeEmailProvider struct {
	mu    sync.Mutex
	sent  []sentEmail
	fail  int
	calls int
}

func (p *fakeEmailProvider) Send(ctx context.Context, to []string, subject string, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.fail {
		return errors.New("smtp unavailable")
	}
	p.sent = append(p.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (p *fakeEmailProvider) emails() []sentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sentEmail(nil), p.sent...)
}

func newTestDispatcher(t *testing.T, provider *fakeEmailProvider) (*Dispatcher, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.Category{}, &catalogdomain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		Email: config.EmailConfig{AdminEmail: "admin@example.com"},
		Notification: config.NotificationConfig{
			Workers:           1,
			QueueSize:         8,
			JobTimeout:        5 * time.Second,
			MaxAttempts:       3,
			LowStockThreshold: 10,
		},
	}

	d := New(Params{
		DB:         db,
		Log:        zaptest.NewLogger(t),
		Config:     cfg,
		Products:   catalogrepository.ProvideProductRepository(),
		Categories: catalogrepository.ProvideCategoryRepository(),
		Email:      provider,
	})
	return d, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, name, sku string, stock int) *catalogdomain.Product {
	t.Helper()
	category := &catalogdomain.Category{
		ID:        node.Generate().Int64(),
		Name:      "Default",
		Slug:      "default-" + sku,
		CreatedBy: node.Generate().Int64(),
	}
	require.NoError(t, db.Create(category).Error)

	product := &catalogdomain.Product{
		ID:            node.Generate().Int64(),
		Name:          name,
		Slug:          strings.ToLower(name) + "-" + sku,
		SKU:           sku,
		Price:         25,
		StockQuantity: stock,
		CategoryID:    category.ID,
		IsActive:      true,
		CreatedBy:     node.Generate().Int64(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestProcessProductJobSendsEmail(t *testing.T) {
	provider := &fakeEmailProvider{}
	d, db, node := newTestDispatcher(t, provider)
	product := seedProduct(t, db, node, "Widget", "W-1", 4)

	ok := d.ProcessProductJob(context.Background(), job{Kind: jobProductCreated, ProductID: product.ID})
	assert.True(t, ok)

	emails := provider.emails()
	require.Len(t, emails, 1)
	assert.Equal(t, []string{"admin@example.com"}, emails[0].To)
	assert.Equal(t, "New Product Added: Widget", emails[0].Subject)
	assert.Contains(t, emails[0].Body, "SKU: W-1")
	assert.Contains(t, emails[0].Body, "Category: Default")
}

func TestProcessProductJobMissingProduct(t *testing.T) {
	provider := &fakeEmailProvider{}
	d, _, node := newTestDispatcher(t, provider)

	ok := d.ProcessProductJob(context.Background(), job{Kind: jobProductUpdated, ProductID: node.Generate().Int64()})
	assert.False(t, ok)
	assert.Empty(t, provider.emails())
}

func TestProcessProductJobRetriesTransportErrors(t *testing.T) {
	provider := &fakeEmailProvider{fail: 2}
	d, db, node := newTestDispatcher(t, provider)
	product := seedProduct(t, db, node, "Flaky", "F-1", 4)

	ok := d.ProcessProductJob(context.Background(), job{Kind: jobProductUpdated, ProductID: product.ID})
	assert.True(t, ok)
	require.Len(t, provider.emails(), 1)
	assert.Equal(t, "Product Updated: Flaky", provider.emails()[0].Subject)
}

func TestCheckLowStockListsOnlyLowProducts(t *testing.T) {
	provider := &fakeEmailProvider{}
	d, db, node := newTestDispatcher(t, provider)
	seedProduct(t, db, node, "Scarce", "S-1", 5)
	seedProduct(t, db, node, "Plenty", "P-1", 12)

	ok := d.CheckLowStock(context.Background())
	assert.True(t, ok)

	emails := provider.emails()
	require.Len(t, emails, 1)
	assert.Equal(t, "Low Stock Alert", emails[0].Subject)
	assert.Contains(t, emails[0].Body, "Scarce (SKU: S-1): 5 units")
	assert.NotContains(t, emails[0].Body, "Plenty")
}

func TestCheckLowStockNoLowProducts(t *testing.T) {
	provider := &fakeEmailProvider{}
	d, db, node := newTestDispatcher(t, provider)
	seedProduct(t, db, node, "Plenty", "P-1", 50)

	ok := d.CheckLowStock(context.Background())
	assert.True(t, ok)
	assert.Empty(t, provider.emails())
}

func TestEnqueueAndDrain(t *testing.T) {
	provider := &fakeEmailProvider{}
	d, db, node := newTestDispatcher(t, provider)
	product := seedProduct(t, db, node, "Queued", "Q-1", 4)

	d.Start()
	d.EnqueueNewProduct(product.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	require.Len(t, provider.emails(), 1)

	// Enqueue after stop must not panic and must not send.
	d.EnqueueProductUpdated(product.ID)
	assert.Len(t, provider.emails(), 1)
}
