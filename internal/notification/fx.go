package notification

import (
	"context"

	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("notification",
	fx.Provide(New),
	fx.Provide(func(d *Dispatcher) catalogdomain.Notifier { return d }),
	fx.Invoke(registerHooks),
)

func registerHooks(lc fx.Lifecycle, d *Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
}
