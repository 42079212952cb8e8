package identity

import (
	"github.com/smallbiznis/sellapp/internal/identity/repository"
	"github.com/smallbiznis/sellapp/internal/identity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.service",
	fx.Provide(repository.ProvideRoleRepository),
	fx.Provide(repository.ProvideUserRepository),
	fx.Provide(service.New),
)
