package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/sellapp/internal/catalog/repository"
	"github.com/smallbiznis/sellapp/internal/clock"
	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/smallbiznis/sellapp/internal/notification"
	"github.com/smallbiznis/sellapp/internal/providers/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.Category{}, &catalogdomain.Product{}))

	dispatcher := notification.New(notification.Params{
		DB:  db,
		Log: zaptest.NewLogger(t),
		Config: config.Config{
			Email: config.EmailConfig{AdminEmail: "admin@example.com"},
			Notification: config.NotificationConfig{
				Workers:           1,
				QueueSize:         4,
				JobTimeout:        5 * time.Second,
				MaxAttempts:       1,
				LowStockThreshold: 10,
			},
		},
		Products:   catalogrepository.ProvideProductRepository(),
		Categories: catalogrepository.ProvideCategoryRepository(),
		Email:      &email.NoOpProvider{},
	})

	sched, err := New(Params{
		Log:        zaptest.NewLogger(t),
		Dispatcher: dispatcher,
		Clock:      clock.NewFakeClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		Config:     Config{RunInterval: time.Hour, JobTimeout: time.Second},
	})
	require.NoError(t, err)
	return sched
}

func TestRunOnce(t *testing.T) {
	sched := newTestScheduler(t)
	assert.NoError(t, sched.RunOnce(context.Background()))
}

func TestNewRejectsMissingDeps(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, 30*time.Second, cfg.JobTimeout)
}
