package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when neither an explicit path nor CONFIG_PATH is given.
const DefaultPath = "./config.yaml"

// Load builds the configuration from an optional YAML file overlaid with
// environment variables and env-default tags, then validates it.
//
// The file is path when non-empty (opsctl --config), else CONFIG_PATH, else
// DefaultPath. A missing file is an error only when it was named explicitly;
// a missing DefaultPath means env and defaults alone.
func Load(path string) (*Config, error) {
	path, explicit := resolvePath(path)

	var cfg Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case !explicit && errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func resolvePath(flag string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env, true
	}
	return DefaultPath, false
}
