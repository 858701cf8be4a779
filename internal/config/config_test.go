package config

import (
	"os"
	"path/filepath"
	"shopdb/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
drivers:
  db:
    driver_name: pgx
    host: db.local
    port: 5433
    user: shop
    password: secret
    database: shop
    ping_timeout: 5s
    ping_period: 500ms
log:
  level: debug
  format: json
service:
  metrics_port: 9100
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseConfig(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := ParseConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "pgx", cfg.Drivers.Db.DriverName)
	assert.Equal(t, "db.local", cfg.Drivers.Db.Host)
	assert.Equal(t, uint16(5433), cfg.Drivers.Db.Port)
	assert.Equal(t, 5*time.Second, cfg.Drivers.Db.PingTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Drivers.Db.PingPeriod)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint16(9100), cfg.Service.MetricsPort)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("SHOPDB_DB_HOST", "override.local")
	t.Setenv("SHOPDB_DB_PASSWORD", "from-env")
	t.Setenv("SHOPDB_DB_PORT", "6543")

	cfg, err := ParseConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "override.local", cfg.Drivers.Db.Host)
	assert.Equal(t, "from-env", cfg.Drivers.Db.Password)
	assert.Equal(t, uint16(6543), cfg.Drivers.Db.Port)
	assert.Equal(t, "shop", cfg.Drivers.Db.User)
}

func TestParseConfig_BadPort(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("SHOPDB_DB_PORT", "not-a-port")

	_, err := ParseConfig(path)
	assert.ErrorIs(t, err, domain.ErrorValidation)
}

func TestParseConfig_MissingExplicitPath(t *testing.T) {
	_, err := ParseConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestParseConfig_NoDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("SHOPDB_DB_HOST", "env-host")

	cfg, err := ParseConfig("")
	if cfg.Source == "/app/config/config.yml" {
		t.Skip("host has a global config file")
	}
	require.NoError(t, err)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, "env-host", cfg.Drivers.Db.Host)
}

func TestSummary_Validate(t *testing.T) {
	var cfg Summary
	err := cfg.Validate()
	assert.ErrorIs(t, err, domain.ErrorValidation)
	assert.Equal(t, "postgres", cfg.Drivers.Db.DriverName)

	cfg.Drivers.Db.Host = "h"
	cfg.Drivers.Db.User = "u"
	cfg.Drivers.Db.Database = "d"
	assert.NoError(t, cfg.Validate())

	cfg.Drivers.Db.DriverName = "mysql"
	assert.ErrorIs(t, cfg.Validate(), domain.ErrorUnknownDriverName)
}
