package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sellapp/internal/cache"
	"github.com/smallbiznis/sellapp/internal/catalog"
	"github.com/smallbiznis/sellapp/internal/clock"
	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/smallbiznis/sellapp/internal/logger"
	"github.com/smallbiznis/sellapp/internal/migration"
	"github.com/smallbiznis/sellapp/internal/notification"
	"github.com/smallbiznis/sellapp/internal/providers/email"
	"github.com/smallbiznis/sellapp/internal/scheduler"
	"github.com/smallbiznis/sellapp/pkg/db"
	"go.uber.org/fx"
)

// Standalone scheduler binary for deployments that split the periodic
// jobs out of the API process. No HTTP server is wired here.
func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		cache.Module,
		clock.Module,
		migration.Module,

		email.Module,
		catalog.Module,
		notification.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
