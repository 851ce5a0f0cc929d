// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	DatabaseURL  string
	DatabaseType string
	VoterKeySalt string
	User         string
	Output       string
	LogLevel     slog.Level
	EnvFile      string
}

// ParseFlags reads global flags, falls back to the environment (including a
// .env file) and returns the remaining command arguments.
func ParseFlags(args []string) (Config, []string, error) {
	var cfg Config
	var logLevel string

	fs := flag.NewFlagSet("quickly-elect", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.User, "u", "", "Acting user name")
	fs.StringVar(&cfg.Output, "o", "", "Output format (text or json)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file to load")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterKeySalt, "voter-salt", "", "Voter key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, nil, err
	}

	// Fall back to environment variables
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, nil, fmt.Errorf("invalid database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, nil, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:quickly-elect.db"
	}

	if cfg.User == "" {
		cfg.User = os.Getenv("ELECT_USER")
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("USER")
	}
	if cfg.User == "" {
		return Config{}, nil, errors.New("user required (use -u or ELECT_USER env)")
	}

	if cfg.Output == "" {
		cfg.Output = os.Getenv("OUTPUT")
		if cfg.Output == "" {
			cfg.Output = OutputText
		}
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return Config{}, nil, fmt.Errorf("invalid output format %q", cfg.Output)
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
			return Config{}, nil, errors.New("invalid log level")
		}
	}

	// Secrets - MUST be provided
	if cfg.VoterKeySalt == "" {
		cfg.VoterKeySalt = os.Getenv("VOTER_KEY_SALT")
	}
	if cfg.VoterKeySalt == "" {
		return Config{}, nil, errors.New("VOTER_KEY_SALT required")
	}

	return cfg, fs.Args(), nil
}

// loadEnvFile loads variables that are not already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
