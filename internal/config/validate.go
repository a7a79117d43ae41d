package config

import "errors"

func ValidateForRun(cfg *Config) error {
	return errors.Join(
		cfg.Database.Validate(),
		cfg.Redis.Validate(),
	)
}
