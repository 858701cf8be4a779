package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"shopdb/internal/domain"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var DefaultConfigPaths = []string{
	"./.shopdb/config/config.yml",
	"./.shopdb/config/config.example.yml",
	"/app/config/config.yml",
}

// ParseConfig loads the explicit path when given, otherwise the first readable default path.
// A missing default file is not an error: connection settings may come from the environment.
func ParseConfig(path string) (Summary, error) {
	var cfg Summary

	paths := DefaultConfigPaths
	if path != "" {
		paths = []string{path}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			cfg.Source = p
			break
		}
		if path != "" || !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load config from %s: %w", p, err)
		}
	}

	if cfg.Source != "" {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets SHOPDB_* variables take priority over the file.
func (s *Summary) applyEnv() error {
	db := &s.Drivers.Db
	overrides := map[string]*string{
		"SHOPDB_DB_DRIVER":   &db.DriverName,
		"SHOPDB_DB_HOST":     &db.Host,
		"SHOPDB_DB_USER":     &db.User,
		"SHOPDB_DB_PASSWORD": &db.Password,
		"SHOPDB_DB_NAME":     &db.Database,
		"SHOPDB_DB_SSLMODE":  &db.SSLMode,
		"SHOPDB_LOG_LEVEL":   &s.Log.Level,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("SHOPDB_DB_PORT"); v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("SHOPDB_DB_PORT=%q: %w", v, domain.ErrorValidation)
		}
		db.Port = uint16(port)
	}
	return nil
}

// Validate checks the connection parameters every command needs.
func (s *Summary) Validate() error {
	db := s.Drivers.Db
	if db.DriverName == "" {
		s.Drivers.Db.DriverName = "postgres"
	}
	if _, ok := domain.DriverNameToType[s.Drivers.Db.DriverName]; !ok {
		return fmt.Errorf("driver %q: %w", s.Drivers.Db.DriverName, domain.ErrorUnknownDriverName)
	}
	missing := make([]string, 0, 3)
	if db.Host == "" {
		missing = append(missing, "host")
	}
	if db.User == "" {
		missing = append(missing, "user")
	}
	if db.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return fmt.Errorf("database settings missing %v: %w", missing, domain.ErrorValidation)
	}
	return nil
}

type Summary struct {
	Drivers struct {
		Db DatabaseConfig `yaml:"db"`
	} `yaml:"drivers"`
	Log     LogConfig     `yaml:"log"`
	Service ServiceConfig `yaml:"service"`
	Source  string        `yaml:"-"`
}

type ServiceConfig struct {
	MetricsPort uint16 `yaml:"metrics_port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type DatabaseConfig struct {
	DriverName   string        `yaml:"driver_name"`
	Host         string        `yaml:"host"`
	Port         uint16        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password,omitempty"`
	Database     string        `yaml:"database"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	PingTimeout  time.Duration `yaml:"ping_timeout"`
	PingPeriod   time.Duration `yaml:"ping_period"`
}
