package notification

import (
	"context"
	"sync"
	"time"

	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/smallbiznis/sellapp/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Config     config.Config
	Products   catalogdomain.ProductRepository
	Categories catalogdomain.CategoryRepository
	Email      email.Provider
}

// Dispatcher runs product notification jobs on a bounded in-process
// queue. Enqueue never blocks the write path: when the queue is full
// the job is dropped and logged.
type Dispatcher struct {
	db         *gorm.DB
	log        *zap.Logger
	cfg        config.NotificationConfig
	adminEmail string
	products   catalogdomain.ProductRepository
	categories catalogdomain.CategoryRepository
	email      email.Provider

	queue chan job
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func New(p Params) *Dispatcher {
	return &Dispatcher{
		db:         p.DB,
		log:        p.Log.Named("notification.dispatcher"),
		cfg:        p.Config.Notification,
		adminEmail: p.Config.Email.AdminEmail,
		products:   p.Products,
		categories: p.Categories,
		email:      p.Email,
		queue:      make(chan job, p.Config.Notification.QueueSize),
	}
}

// Start spawns the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the queue and waits for in-flight jobs to drain, or for
// ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) EnqueueNewProduct(productID int64) {
	d.enqueue(job{Kind: jobProductCreated, ProductID: productID})
}

func (d *Dispatcher) EnqueueProductUpdated(productID int64) {
	d.enqueue(job{Kind: jobProductUpdated, ProductID: productID})
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn("dispatcher stopped, dropping job",
			zap.String("kind", string(j.Kind)),
			zap.Int64("product_id", j.ProductID),
		)
		return
	}
	select {
	case d.queue <- j:
	default:
		d.log.Warn("notification queue full, dropping job",
			zap.String("kind", string(j.Kind)),
			zap.Int64("product_id", j.ProductID),
		)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.run(j)
	}
}

func (d *Dispatcher) run(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.JobTimeout)
	defer cancel()

	if ok := d.ProcessProductJob(ctx, j); !ok {
		d.log.Error("notification job failed",
			zap.String("kind", string(j.Kind)),
			zap.Int64("product_id", j.ProductID),
		)
	}
}

// ProcessProductJob sends the email for a single product job. A missing
// product is permanent and is only logged; transport errors are retried
// with backoff up to MaxAttempts.
func (d *Dispatcher) ProcessProductJob(ctx context.Context, j job) bool {
	product, err := d.products.FindByID(ctx, d.db, j.ProductID)
	if err != nil {
		d.log.Error("load product", zap.Int64("product_id", j.ProductID), zap.Error(err))
		return false
	}
	if product == nil {
		d.log.Error("product not found", zap.Int64("product_id", j.ProductID))
		return false
	}

	categoryName := ""
	if category, err := d.categories.FindByID(ctx, d.db, product.CategoryID); err == nil && category != nil {
		categoryName = category.Name
	}

	subject, body := productEmail(j.Kind, product, categoryName)
	if err := d.send(ctx, subject, body); err != nil {
		d.log.Error("send notification",
			zap.String("kind", string(j.Kind)),
			zap.Int64("product_id", j.ProductID),
			zap.Error(err),
		)
		return false
	}

	d.log.Info("notification sent",
		zap.String("kind", string(j.Kind)),
		zap.Int64("product_id", j.ProductID),
	)
	return true
}

// CheckLowStock emails the admin a single digest of every active
// product at or below the configured threshold. Returns false only when
// the check itself failed.
func (d *Dispatcher) CheckLowStock(ctx context.Context) bool {
	products, err := d.products.FindLowStock(ctx, d.db, d.cfg.LowStockThreshold)
	if err != nil {
		d.log.Error("check low stock", zap.Error(err))
		return false
	}
	if len(products) == 0 {
		d.log.Info("no low stock products found")
		return true
	}

	subject, body := lowStockEmail(products)
	if err := d.send(ctx, subject, body); err != nil {
		d.log.Error("send low stock alert", zap.Error(err))
		return false
	}

	d.log.Info("low stock alert sent", zap.Int("products", len(products)))
	return true
}

func (d *Dispatcher) send(ctx context.Context, subject, body string) error {
	backoff := 500 * time.Millisecond
	var err error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		err = d.email.Send(ctx, []string{d.adminEmail}, subject, body)
		if err == nil {
			return nil
		}
		if attempt == d.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
