package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is loaded from the environment, after an optional .env file.
type Config struct {
	Routes    string `env:"STATEROUTER_ROUTES" envDefault:"routes.json"`
	BasePath  string `env:"STATEROUTER_BASE_PATH"`
	Scheme    string `env:"STATEROUTER_SCHEME" envDefault:"http"`
	Host      string `env:"STATEROUTER_HOST"`
	Addr      string `env:"STATEROUTER_ADDR" envDefault:":8080"`
	LogLevel  string `env:"STATEROUTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"STATEROUTER_LOG_FORMAT" envDefault:"text"`
}

// loadConfig reads envFile into the process environment, unless it does
// not exist, then parses Config.
func loadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format '%s'", cfg.LogFormat)
	}
}
