package news

import (
	"github.com/smallbiznis/sellapp/internal/news/repository"
	"github.com/smallbiznis/sellapp/internal/news/service"
	"go.uber.org/fx"
)

var Module = fx.Module("news.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
