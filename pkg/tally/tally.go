// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package tally

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"nickandperla.net/tally/internal/eval"
	"nickandperla.net/tally/internal/live"
	"nickandperla.net/tally/internal/store"
)

// ErrNoLedger is returned by ledger operations on an Engine built without a
// store.
var ErrNoLedger = errors.New("no ledger configured")

// Engine is the tally annotation engine. Annotate is safe for concurrent use;
// ledger calls are serialized by the store.
type Engine struct {
	evaluator *eval.Evaluator
	store     store.Store
	logger    *slog.Logger
	arith     eval.ArithFunc
	now       func() time.Time
	err       error // First error raised by an option
}

// New creates a new tally engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.err != nil {
		if e.store != nil {
			e.store.Close()
		}
		return nil, e.err
	}

	evalOpts := []eval.Option{eval.WithLogger(e.logger)}
	if e.arith != nil {
		evalOpts = append(evalOpts, eval.WithArithmetic(e.arith))
	}
	e.evaluator = eval.New(evalOpts...)

	return e, nil
}

// Annotate computes the annotation set of text under sel.
func (e *Engine) Annotate(text string, sel Selection) Result {
	return e.evaluator.Compute(text, sel)
}

// AnnotateReader reads a whole sheet from r and annotates it under sel.
func (e *Engine) AnnotateReader(r io.Reader, sel Selection) (string, Result, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", Result{}, err
	}
	text := string(b)
	return text, e.Annotate(text, sel), nil
}

// AnnotateFile annotates the sheet stored at path.
func (e *Engine) AnnotateFile(path string, sel Selection) (string, Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", Result{}, err
	}
	defer f.Close()
	return e.AnnotateReader(f, sel)
}

// NewSession attaches the engine to an editing host.
func (e *Engine) NewSession(host live.Host, opts ...live.SessionOption) *live.Session {
	return live.NewSession(host, e.evaluator.Compute, opts...)
}

// Record appends the totals of res to the ledger under document.
func (e *Engine) Record(document string, res Result) ([]store.Entry, error) {
	if e.store == nil {
		return nil, ErrNoLedger
	}
	entries := store.EntriesFor(document, res, e.now())
	if err := e.store.Record(entries...); err != nil {
		return nil, fmt.Errorf("record %s: %w", document, err)
	}
	e.logger.Debug("recorded", "document", document, "run", entries[0].Run, "entries", len(entries))
	return entries, nil
}

// History returns the ledger entries of document, newest run first.
func (e *Engine) History(document string, limit int) ([]store.Entry, error) {
	if e.store == nil {
		return nil, ErrNoLedger
	}
	return e.store.History(document, limit)
}

// Documents lists every document in the ledger.
func (e *Engine) Documents() ([]string, error) {
	if e.store == nil {
		return nil, ErrNoLedger
	}
	return e.store.Documents()
}

// Close releases resources.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
