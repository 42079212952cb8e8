package comment

import (
	"github.com/smallbiznis/sellapp/internal/comment/repository"
	"github.com/smallbiznis/sellapp/internal/comment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("comment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
