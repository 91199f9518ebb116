// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every error Load and Validate return.
var ErrInvalid = errors.New("invalid config")

// Environment variables read by Load.
const (
	EnvDB       = "TALLY_DB"
	EnvColor    = "TALLY_COLOR"
	EnvLogLevel = "TALLY_LOG_LEVEL"
	EnvRecord   = "TALLY_RECORD"
	EnvHistory  = "TALLY_HISTORY"
	EnvWorkers  = "TALLY_WORKERS"
)

// Config holds the CLI settings. Flags override whatever Load produced.
type Config struct {
	DBPath      string `validate:"required"`                          // SQLite ledger path
	Color       string `validate:"oneof=auto always never"`           // When to emit colors
	LogLevel    string `validate:"oneof=debug info warn error"`       // Minimum slog level
	Record      bool   // Append totals to the ledger on render
	HistoryFile string // REPL line history; empty disables it
	Workers     int    `validate:"min=1,max=64"` // Parallel files for annotate
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:      "tally.db",
		Color:       "auto",
		LogLevel:    "warn",
		HistoryFile: ".tally_history",
		Workers:     4,
	}
}

// LoadDotenv loads an optional .env file into the process environment.
// A missing file is not an error.
func LoadDotenv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load starts from Default and applies any variable getenv returns. The
// result is validated.
func Load(getenv func(string) string) (Config, error) {
	c := Default()
	if v := getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := getenv(EnvColor); v != "" {
		c.Color = strings.ToLower(v)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvRecord); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, EnvRecord, v)
		}
		c.Record = b
	}
	if v, ok := lookup(getenv, EnvHistory); ok {
		c.HistoryFile = v
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, EnvWorkers, v)
		}
		c.Workers = n
	}
	return c, c.Validate()
}

// lookup treats the literal value "none" as an explicit empty setting.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	switch v {
	case "":
		return "", false
	case "none":
		return "", true
	}
	return v, true
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (got %v)", fe.Field(), fe.ActualTag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
