package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smallbiznis/sellapp/internal/clock"
	"github.com/smallbiznis/sellapp/internal/notification"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: invalid configuration")

type Params struct {
	fx.In

	Log        *zap.Logger
	Dispatcher *notification.Dispatcher
	Clock      clock.Clock
	Config     Config `optional:"true"`
}

// Scheduler drives the periodic low stock check. It replaces an
// external cron with an in-process ticker loop.
type Scheduler struct {
	log        *zap.Logger
	cfg        Config
	clock      clock.Clock
	dispatcher *notification.Dispatcher
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Dispatcher == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:        p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:        p.Config.withDefaults(),
		clock:      p.Clock,
		dispatcher: p.Dispatcher,
	}, nil
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "low_stock_check", s.cfg.JobTimeout, func(ctx context.Context) error {
		if ok := s.dispatcher.CheckLowStock(ctx); !ok {
			return errors.New("low stock check failed")
		}
		return nil
	})
}

func (s *Scheduler) runJob(parent context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	log.Debug("job started")

	err := fn(ctx)
	log.Debug("job finished", zap.Duration("elapsed", s.clock.Now().Sub(start)))
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out", zap.Duration("timeout", timeout), zap.Error(err))
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
