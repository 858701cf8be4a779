package main

import (
	"context"
	"fmt"
	"shopdb/internal/app/shopdb"
	"shopdb/internal/config"
	"shopdb/internal/logger"

	"go.uber.org/zap"
)

// Globals are the connection flags shared by every command. Non-empty flags win over the
// config file and the SHOPDB_* environment.
type Globals struct {
	Config   string `name:"config" help:"Path to the YAML config file" type:"path"`
	Driver   string `name:"driver" help:"SQL driver: postgres (lib/pq) or pgx"`
	Host     string `name:"host" help:"Database host"`
	Port     uint16 `name:"port" help:"Database port"`
	User     string `name:"user" short:"U" help:"Database user"`
	Password string `name:"password" help:"Database password"`
	Database string `name:"database" short:"d" help:"Database name"`
	LogLevel string `name:"log-level" help:"debug, info, warn or error"`
}

func (g *Globals) apply(cfg *config.Summary) {
	db := &cfg.Drivers.Db
	if g.Driver != "" {
		db.DriverName = g.Driver
	}
	if g.Host != "" {
		db.Host = g.Host
	}
	if g.Port != 0 {
		db.Port = g.Port
	}
	if g.User != "" {
		db.User = g.User
	}
	if g.Password != "" {
		db.Password = g.Password
	}
	if g.Database != "" {
		db.Database = g.Database
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
}

type session struct {
	cfg    config.Summary
	app    *shopdb.App
	logger *zap.Logger
}

func (g *Globals) open(ctx context.Context) (*session, error) {
	cfg, err := config.ParseConfig(g.Config)
	if err != nil {
		return nil, err
	}
	g.apply(&cfg)

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}
	zap.ReplaceGlobals(log)
	if cfg.Source != "" {
		log.Debug("config loaded", zap.String("path", cfg.Source))
	}

	app, err := shopdb.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Error("bootstrap failed", zap.Error(err))
		_ = logger.Sync(log)
		return nil, err
	}
	return &session{cfg: cfg, app: app, logger: log}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.logger.Warn("close database", zap.Error(err))
	}
	_ = logger.Sync(s.logger)
}
