package catalog

import (
	"github.com/smallbiznis/sellapp/internal/catalog/repository"
	"github.com/smallbiznis/sellapp/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.ProvideCategoryRepository),
	fx.Provide(repository.ProvideProductRepository),
	fx.Provide(repository.ProvideProductImageRepository),
	fx.Provide(service.New),
)
