package repository

import "errors"

var (
	ErrRedisConnection     = errors.New("redis connection error")
	ErrInvalidScheduleData = errors.New("invalid schedule data")
	ErrInvalidLockTTL      = errors.New("lock ttl must be positive")
)
