package components

import (
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/infra/readstore"
	"sponsorship-api/internal/infra/repository"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side
		fx.Annotate(
			repository.NewGrantRepository,
			fx.As(new(commands.GrantRepository)),
		),
		fx.Annotate(
			repository.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewGrantReadStore,
			fx.As(new(queries.GrantReadStore)),
		),
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
