package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sellapp/internal/cache"
	"github.com/smallbiznis/sellapp/internal/clock"
	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/smallbiznis/sellapp/internal/logger"
	"github.com/smallbiznis/sellapp/internal/migration"
	"github.com/smallbiznis/sellapp/internal/notification"
	"github.com/smallbiznis/sellapp/internal/scheduler"
	"github.com/smallbiznis/sellapp/internal/server"
	"github.com/smallbiznis/sellapp/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		cache.Module,
		clock.Module,
		migration.Module,

		// Domain services and HTTP surface
		server.Module,

		// Async notifications and the periodic low stock check
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
