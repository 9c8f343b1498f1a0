package components

import (
	"context"
	"log/slog"
	"time"

	"lastbite/internal/engine/store"
	"lastbite/internal/infra/archive"
	"lastbite/internal/infra/db"
	"lastbite/internal/infra/events"
	"lastbite/internal/infra/journal"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/config"

	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

var PersistenceModule = fx.Module("persistence",
	journalModule,
	archiveModule,
	eventsModule,
)

var journalModule = fx.Module("persistence/journal",
	fx.Provide(
		NewJournal,
		NewStoreJournal,
	),
)

var archiveModule = fx.Module("persistence/archive",
	fx.Provide(
		NewArchive,
		NewArchiveSink,
	),
)

var eventsModule = fx.Module("persistence/events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewJournal returns nil when journaling is disabled.
func NewJournal(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*journal.Journal, error) {
	if !cfg.Journal.Enabled {
		logger.Warn("journal disabled, listings will not survive a restart")
		return nil, nil
	}

	j, err := journal.Open(cfg.Journal.Dir, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return j.Close()
		},
	})

	return j, nil
}

func NewStoreJournal(j *journal.Journal) store.Journal {
	if j == nil {
		return nil
	}
	return j
}

func NewArchive(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (archive.Archiver, error) {
	var (
		a   archive.Archiver
		err error
	)
	switch cfg.Archive.Driver {
	case config.ArchiveDriverSQLite:
		a, err = archive.OpenSQLite(cfg.Archive.SQLitePath, logger)
	case config.ArchiveDriverPostgres:
		a, err = newPostgresArchive(lc, cfg, logger)
	default:
		a = archive.Nop{}
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return a.Close()
		},
	})

	logger.Info("archive ready", slog.String("driver", cfg.Archive.Driver))
	return a, nil
}

func newPostgresArchive(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (archive.Archiver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := archive.Migrate(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return archive.NewPostgres(pool, logger), nil
}

func NewArchiveSink(lc fx.Lifecycle, a archive.Archiver, cfg config.Config, logger *slog.Logger) *archive.Sink {
	sink := archive.NewSink(a, cfg.Archive.Buffer, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sink.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := sink.Stop(ctx)
			logger.Info("archive sink stopped",
				slog.Int64("written", sink.Written()),
				slog.Int64("dropped", sink.Dropped()))
			return err
		},
	})

	return sink
}

// NewEventPublisher returns nil when no brokers are configured.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) *events.Publisher {
	if !cfg.Kafka.Enabled() {
		return nil
	}

	pub := events.NewPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.Kafka.Buffer, clk, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pub.Start()
			logger.Info("listing events enabled",
				slog.Any("brokers", cfg.Kafka.Brokers),
				slog.String("topic", cfg.Kafka.Topic))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := pub.Stop(ctx)
			logger.Info("event publisher stopped",
				slog.Int64("sent", pub.Sent()),
				slog.Int64("dropped", pub.Dropped()))
			return err
		},
	})

	return pub
}
