package bootstrap

import (
	"lastbite/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.EngineModule,
	components.UseCaseModule,
	components.HandlerModule,
)
