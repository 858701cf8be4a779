package shopdb

import (
	"context"
	"fmt"
	"shopdb/internal/config"
	"shopdb/internal/domain"
	pgx "shopdb/internal/db/pg"

	"github.com/jmoiron/sqlx"
)

// BootstrapPostgres opens the pool with lib/pq or pgx depending on drivers.db.driver_name.
func BootstrapPostgres(ctx context.Context, dbCfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, ok := domain.DriverNameToType[dbCfg.DriverName]
	if !ok {
		return nil, fmt.Errorf("%q: %w", dbCfg.DriverName, domain.ErrorUnknownDriverName)
	}
	driverName := domain.DriverTypeToSqlName[driver]

	pgconn, err := pgx.GetPostgresConnector(ctx, domainCfgToPostgres(dbCfg), driverName)
	if err != nil {
		return nil, fmt.Errorf("GetPostgresConnector: %w", err)
	}
	if driver == domain.Pgx {
		return pgx.GetSqlxConnectorPgxDriver(pgconn), nil
	}
	return pgx.GetSqlxConnector(pgconn, driverName), nil
}

func domainCfgToPostgres(db config.DatabaseConfig) *pgx.PostgresConfig {
	return &pgx.PostgresConfig{
		Host:         db.Host,
		Port:         db.Port,
		Database:     db.Database,
		User:         db.User,
		Password:     db.Password,
		SSLMode:      db.SSLMode,
		MaxOpenConns: db.MaxOpenConns,
		PingPeriod:   db.PingPeriod,
		PingTimeout:  db.PingTimeout,
	}
}
