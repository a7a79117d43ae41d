package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrUnsupportedDriver      = errors.New("DATABASE_DRIVER must be sqlite or postgres")
	ErrDatabaseDSNMissing     = errors.New("DATABASE_DSN is required")
	ErrInvalidProjectStart    = errors.New("SCHEDULE_PROJECT_START must be a date (2006-01-02) or RFC3339 timestamp")
	ErrInvalidScheduleSetting = errors.New("schedule setting must be a positive integer")
)
