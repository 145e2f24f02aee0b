package main

import (
	"errors"
	"fmt"
	"os"

	"physcalc/internal/config"

	"github.com/joho/godotenv"
)

// loadDotEnv loads variables from the given dotenv files, or from .env when
// none are named. Variables already in the process environment win. A
// missing .env is fine; a missing file named on the command line is not.
func loadDotEnv(files []string) error {
	explicit := len(files) > 0
	if !explicit {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil {
			continue
		}
		if !explicit && errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", f, err)
	}
	return nil
}

// loadConfig builds the configuration from defaults, the optional file and
// the environment, then applies CLI flags.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, os.Getenv)
	if err != nil {
		return nil, err
	}

	cfg.Server.Dev = opts.dev
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
