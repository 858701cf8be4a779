package pg

import (
	"context"
	"database/sql"
	"fmt"
	"shopdb/internal/domain"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const defaultPingPeriod = time.Second

type PostgresConfig struct {
	Host         string
	Port         uint16
	Database     string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	PingTimeout  time.Duration
	PingPeriod   time.Duration
}

// DSN renders a keyword/value connection string understood by both lib/pq and pgx.
func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts := []string{
		"user=" + dsnValue(c.User),
		"dbname=" + dsnValue(c.Database),
		"host=" + dsnValue(c.Host),
		"sslmode=" + dsnValue(sslMode),
	}
	if c.Password != "" {
		parts = append(parts, "password="+dsnValue(c.Password))
	}
	if c.Port != 0 {
		parts = append(parts, "port="+strconv.FormatUint(uint64(c.Port), 10))
	}
	return strings.Join(parts, " ")
}

// GetPostgresConnector opens the pool with the given sql driver ("postgres" or "pgx") and waits
// until the server answers a ping.
func GetPostgresConnector(ctx context.Context, cfg *PostgresConfig, driverName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := pingDbWithRetry(ctx, db, cfg.PingTimeout, cfg.PingPeriod); err != nil {
		db.Close()
		return nil, fmt.Errorf("pingDbWithRetry(): %v: %w", err, domain.ErrorConnection)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}

func GetSqlxConnector(db *sql.DB, driverName string) *sqlx.DB {
	return sqlx.NewDb(db, driverName)
}

func GetSqlxConnectorPgxDriver(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "pgx")
}

func pingDbWithRetry(ctx context.Context, db *sql.DB, timeout, period time.Duration) error {
	if timeout <= 0 {
		return db.PingContext(ctx)
	}
	if period <= 0 {
		period = defaultPingPeriod
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := db.PingContext(ctx)
	for err != nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-time.After(period):
			err = db.PingContext(ctx)
		}
	}
	return nil
}

func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
