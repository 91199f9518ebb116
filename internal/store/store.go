// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store provides the tally ledger: a record of totals computed for
// named sheets. It stores numbers only, never sheet text.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Kind tells which total an entry records.
type Kind string

const (
	// KindTotal is the value shown by a [total] marker.
	KindTotal Kind = "total"
	// KindRunning is the running total left at the end of the sheet.
	KindRunning Kind = "running"
)

// Entry is one recorded value.
type Entry struct {
	ID       string
	Run      string // Groups the entries of one recompute
	Document string
	Kind     Kind
	Offset   int // Start offset of the [total] span; -1 for KindRunning
	Value    float64
	Ts       time.Time
}

// Store is the interface for ledger persistence.
type Store interface {
	// Record appends entries. Entries keep their order within a run.
	Record(entries ...Entry) error
	// History returns a document's entries newest run first. A limit of 0
	// means all runs.
	History(document string, limit int) ([]Entry, error)
	// Documents lists every document with at least one entry.
	Documents() ([]string, error)
	// Close releases resources.
	Close() error
}
