package components

import (
	"sponsorship-api/internal/pkg/clock"
	"sponsorship-api/internal/pkg/config"
	"sponsorship-api/internal/usecase"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewAllocator,
		NewSponsorshipCommands,
		commands.NewIntakeCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewGrantQueries,
		queries.NewRequestQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewAllocator(grants commands.GrantRepository, pool *pgxpool.Pool, clk clock.Clock, cfg config.Config) commands.Allocator {
	return commands.NewAllocator(grants, pool, clk, cfg.Sponsorship.MaxAllocateAttempts)
}

func NewSponsorshipCommands(
	requests commands.RequestRepository,
	grants commands.GrantRepository,
	allocator commands.Allocator,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.Config,
) commands.SponsorshipCommands {
	return commands.NewSponsorshipCommands(requests, grants, allocator, pool, clk, cfg.Sponsorship.MaxAllocateAttempts)
}
