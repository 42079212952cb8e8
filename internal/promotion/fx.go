package promotion

import (
	"github.com/smallbiznis/sellapp/internal/promotion/repository"
	"github.com/smallbiznis/sellapp/internal/promotion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("promotion.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
