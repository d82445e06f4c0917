package components

import (
	"sponsorship-api/internal/handler"
	"sponsorship-api/internal/handler/api"
	"sponsorship-api/internal/handler/middleware"
	"sponsorship-api/internal/pkg/config"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewSponsorshipHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(authCommands, userQueries, cfg.JWT, cfg.Cookie)
}
