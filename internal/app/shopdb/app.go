package shopdb

import (
	"context"
	"fmt"
	"shopdb/internal/config"
	"shopdb/internal/metrics"
	"shopdb/internal/schema"
	"shopdb/internal/store/storepg"

	"go.uber.org/zap"
)

// App owns the database pool and everything built on it.
type App struct {
	Gateway *Gateway
	Schema  schema.ISchemaGenerator
	Metrics *metrics.Prometheus

	storage *storepg.Storage
}

func Bootstrap(ctx context.Context, cfg config.Summary, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := BootstrapPostgres(ctx, cfg.Drivers.Db)
	if err != nil {
		return nil, fmt.Errorf("BootstrapPostgres: %w", err)
	}
	logger.Info("connected to database",
		zap.String("driver", cfg.Drivers.Db.DriverName),
		zap.String("host", cfg.Drivers.Db.Host),
		zap.String("database", cfg.Drivers.Db.Database))

	registry := schema.Default()
	s := storepg.NewStorage(db)
	m := metrics.New()
	return &App{
		Gateway: NewGateway(s, registry, logger, m),
		Schema:  GetSchemaGenerator(db, registry),
		Metrics: m,
		storage: s,
	}, nil
}

func (a *App) Close() error {
	return a.storage.Close()
}
