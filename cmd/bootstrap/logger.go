package bootstrap

import (
	"log/slog"

	"lastbite/internal/handler/middleware"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		clock.NewRealClock,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
