// Package config loads process configuration from environment variables.
//
// Values are read once at start-up with koanf, checked with
// go-playground/validator, and mapped onto the store and logger settings.
//
//	TABLE_NAME             movie table (required)
//	MOVIECAST_TABLE_NAME   cast table (required by the fetch function)
//	MOVIECAST_INDEX_NAME   optional GSI on movieId in the cast table
//	TTL_ATTR               optional TTL attribute; expired items read as absent
//	REGION                 AWS region, default eu-west-1
//	DYNAMODB_ENDPOINT      optional endpoint override (DynamoDB Local)
//	LOG_LEVEL              debug, info, warn or error; default info
//	EXPOSE_ERROR_DETAILS   include store error text in fetch 500 bodies
//	LOCAL_ADDR             listen address of the local API, default :3000
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/jacentio/movies/store"
)

// DefaultRegion is used when REGION is not set.
const DefaultRegion = "eu-west-1"

// ErrCastTableRequired is returned by RequireCastTable when no cast table is configured.
var ErrCastTableRequired = errors.New("config: MOVIECAST_TABLE_NAME is required")

// Config is the process configuration.
type Config struct {
	MovieTable         string `koanf:"table_name" validate:"required"`
	CastTable          string `koanf:"moviecast_table_name"`
	CastIndex          string `koanf:"moviecast_index_name"`
	TTLAttr            string `koanf:"ttl_attr"`
	Region             string `koanf:"region" validate:"required"`
	Endpoint           string `koanf:"dynamodb_endpoint" validate:"omitempty,url"`
	LogLevel           string `koanf:"log_level" validate:"oneof=debug info warn error"`
	ExposeErrorDetails bool   `koanf:"expose_error_details"`
	LocalAddr          string `koanf:"local_addr" validate:"required"`
}

func defaults() Config {
	return Config{
		Region:    DefaultRegion,
		LogLevel:  "info",
		LocalAddr: ":3000",
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// RequireCastTable fails when the cast table is not configured.
func (c *Config) RequireCastTable() error {
	if c.CastTable == "" {
		return ErrCastTableRequired
	}
	return nil
}

// StoreConfig maps the configuration onto store.Config.
func (c *Config) StoreConfig() store.Config {
	cfg := store.DefaultConfig()
	cfg.MovieTable = c.MovieTable
	cfg.CastTable = c.CastTable
	cfg.CastIndex = c.CastIndex
	cfg.TTLAttr = c.TTLAttr
	return cfg
}

// ClientOptions returns the DynamoDB client options.
func (c *Config) ClientOptions() store.ClientOptions {
	return store.ClientOptions{
		Region:   c.Region,
		Endpoint: c.Endpoint,
	}
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a JSON logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
