package components

import (
	"lastbite/internal/engine"
	"lastbite/internal/infra/archive"
	"lastbite/internal/usecase"
	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(eng *engine.Engine) commands.ListingCommands {
			return commands.NewListingUseCase(eng.Store, eng.Coordinator)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(eng *engine.Engine, arch archive.Archiver) queries.ListingQueries {
			return queries.NewListingQueries(eng.Store, eng.Matcher, arch, eng)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
		usecase.NewTokenIssuer,
	),
)
