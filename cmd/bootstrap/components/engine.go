package components

import (
	"context"
	"log/slog"

	"lastbite/internal/engine"
	"lastbite/internal/engine/store"
	"lastbite/internal/infra/archive"
	"lastbite/internal/infra/events"
	"lastbite/internal/infra/journal"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/config"
	"lastbite/internal/pkg/errs"

	"go.uber.org/fx"
)

var EngineModule = fx.Module("engine",
	fx.Provide(
		NewEngine,
	),
)

type EngineParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Journal   store.Journal
	Replay    *journal.Journal
	Sink      *archive.Sink
	Publisher *events.Publisher
	Clock     clock.Clock
	Logger    *slog.Logger
}

// NewEngine replays the journal on start, before the scheduler runs.
// Sinks are subscribed up front; a restore does not notify them, so
// restored terminal listings are offered to the archive again.
func NewEngine(p EngineParams) *engine.Engine {
	cfg := p.Config.Engine
	if p.Config.Archive.Driver == config.ArchiveDriverNone && cfg.Retention > 0 {
		p.Logger.Warn("archive disabled, terminal listings are kept in memory",
			slog.Duration("configured_retention", cfg.Retention))
		cfg.Retention = 0
	}

	eng := engine.New(cfg, p.Journal, p.Clock, p.Logger)
	eng.Subscribe(p.Sink.OnEvent)
	p.Sink.OnArchived(eng.ConfirmArchived)
	if p.Publisher != nil {
		eng.Subscribe(p.Publisher.OnEvent)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if p.Replay != nil {
				states, err := p.Replay.Load()
				if err != nil {
					return errs.Mark(errs.Wrap(err, "load journal"), errs.ErrJournalReplay)
				}
				if err := eng.Restore(states); err != nil {
					return errs.Mark(err, errs.ErrJournalReplay)
				}
				if n := eng.ResubmitTerminal(p.Sink.Enqueue); n > 0 {
					p.Logger.Info("terminal listings queued for archive", slog.Int("count", n))
				}
			}
			eng.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return eng.Stop(ctx)
		},
	})

	return eng
}
