package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Read loads configuration from path when it is set, otherwise from the
// environment. Environment variables override file values.
func Read(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
