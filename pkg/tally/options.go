// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package tally provides the public API for the tally annotation engine.
package tally

import (
	"log/slog"
	"time"

	"nickandperla.net/tally/internal/annot"
	"nickandperla.net/tally/internal/eval"
	"nickandperla.net/tally/internal/store"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for span traces and ledger events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSQLiteStore configures a SQLite ledger at the given path.
func WithSQLiteStore(path string) Option {
	return func(e *Engine) {
		s, err := store.NewSQLite(path)
		if err != nil {
			e.err = err
			return
		}
		e.store = s
	}
}

// WithMemoryStore configures an in-memory ledger (for testing).
func WithMemoryStore() Option {
	return func(e *Engine) {
		e.store = store.NewMemory()
	}
}

// WithStore configures a custom ledger.
func WithStore(s Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithArithmetic replaces the bracket evaluator.
func WithArithmetic(f ArithFunc) Option {
	return func(e *Engine) {
		e.arith = f
	}
}

// WithClock sets the time source for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Store interface for custom ledgers.
type Store = store.Store

// ArithFunc evaluates the text inside a bracket.
type ArithFunc = eval.ArithFunc

// Re-exported annotation types.
type (
	Selection  = annot.Selection
	Result     = annot.Result
	Annotation = annot.Annotation
	Mode       = annot.Mode
)

// NoSelection means the host has no cursor.
var NoSelection = annot.NoSelection

// Cursor returns a collapsed selection at offset.
func Cursor(offset int) Selection {
	return annot.Cursor(offset)
}

// FormatNumber formats a value the way annotations show it.
func FormatNumber(v float64) string {
	return annot.FormatNumber(v)
}
