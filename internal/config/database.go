package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	databaseDriverEnv      = "DATABASE_DRIVER"
	databaseDSNEnv         = "DATABASE_DSN"
	databaseAutoMigrateEnv = "DATABASE_AUTO_MIGRATE"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultDatabaseDriver = DriverSQLite
	defaultSQLiteDSN      = "file:scheduling.db?_pragma=foreign_keys(1)"
)

type DatabaseConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
}

func LoadDatabaseConfig() (*DatabaseConfig, error) {
	driver := strings.ToLower(os.Getenv(databaseDriverEnv))
	if driver == "" {
		driver = defaultDatabaseDriver
	}

	dsn := os.Getenv(databaseDSNEnv)
	if dsn == "" && driver == DriverSQLite {
		dsn = defaultSQLiteDSN
	}

	autoMigrate := true
	if v := os.Getenv(databaseAutoMigrateEnv); v != "" {
		autoMigrate = v == "true" || v == "1"
	}

	cfg := &DatabaseConfig{
		Driver:      driver,
		DSN:         dsn,
		AutoMigrate: autoMigrate,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: got %q", ErrUnsupportedDriver, c.Driver)
	}
	if c.DSN == "" {
		return ErrDatabaseDSNMissing
	}
	return nil
}
