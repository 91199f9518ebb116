// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package live connects a text-editing host to the recompute pipeline.
//
// The host reports what changed; a Session decides whether the annotation
// set must be rebuilt and, if so, rebuilds it from the host's current text
// and selection. Sessions are not safe for concurrent use: hosts call them
// from their own event loop.
package live

import (
	"nickandperla.net/tally/internal/annot"
)

// Change describes a host notification.
type Change uint8

const (
	TextChanged Change = 1 << iota
	SelectionChanged
)

// Has reports whether c includes all bits of flag.
func (c Change) Has(flag Change) bool {
	return c&flag == flag
}

// String returns the string representation of a Change.
func (c Change) String() string {
	switch c {
	case 0:
		return "none"
	case TextChanged:
		return "text"
	case SelectionChanged:
		return "selection"
	case TextChanged | SelectionChanged:
		return "text+selection"
	}
	return "unknown"
}

// NeedsRecompute reports whether c requires a full rebuild. Selection moves
// only change which spans are revealed, but rebuilding everything is the
// simple correct policy.
func NeedsRecompute(c Change) bool {
	return c.Has(TextChanged) || c.Has(SelectionChanged)
}

// Host is the text-editing surface being annotated.
type Host interface {
	Text() string
	Selection() annot.Selection
}

// ComputeFunc builds the annotation set for one (text, selection) pair.
type ComputeFunc func(text string, sel annot.Selection) annot.Result

// Session caches the latest annotation set for one host.
type Session struct {
	host      Host
	compute   ComputeFunc
	last      annot.Result
	computed  int // Number of rebuilds so far
	onRebuild func(annot.Result)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// OnRebuild registers a callback run after every rebuild.
func OnRebuild(fn func(annot.Result)) SessionOption {
	return func(s *Session) { s.onRebuild = fn }
}

// NewSession creates a Session and computes the initial annotation set.
func NewSession(host Host, compute ComputeFunc, opts ...SessionOption) *Session {
	s := &Session{host: host, compute: compute}
	for _, opt := range opts {
		opt(s)
	}
	s.rebuild()
	return s
}

// Notify handles a host notification. It returns the current annotation
// set and whether it was rebuilt.
func (s *Session) Notify(c Change) (annot.Result, bool) {
	if !NeedsRecompute(c) {
		return s.last, false
	}
	s.rebuild()
	return s.last, true
}

// Result returns the latest annotation set without recomputing.
func (s *Session) Result() annot.Result {
	return s.last
}

// Rebuilds returns how many times the set has been computed.
func (s *Session) Rebuilds() int {
	return s.computed
}

func (s *Session) rebuild() {
	s.last = s.compute(s.host.Text(), s.host.Selection())
	s.computed++
	if s.onRebuild != nil {
		s.onRebuild(s.last)
	}
}

// Buffer is a minimal in-memory Host. The CLI REPL uses it as its document.
type Buffer struct {
	text string
	sel  annot.Selection
}

// NewBuffer creates a Buffer holding text with the cursor at its end.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, sel: annot.Cursor(len(text))}
}

// Text returns the buffer contents.
func (b *Buffer) Text() string { return b.text }

// Selection returns the current selection.
func (b *Buffer) Selection() annot.Selection { return b.sel }

// SetText replaces the contents, clamps the selection, and returns the
// change to report.
func (b *Buffer) SetText(text string) Change {
	if text == b.text {
		return 0
	}
	b.text = text
	b.sel = clamp(b.sel, len(text))
	return TextChanged
}

// Append adds text at the end and moves the cursor there. A deselected
// buffer stays deselected.
func (b *Buffer) Append(text string) Change {
	if text == "" {
		return 0
	}
	b.text += text
	if b.sel == annot.NoSelection {
		return TextChanged
	}
	b.sel = annot.Cursor(len(b.text))
	return TextChanged | SelectionChanged
}

// Select moves the selection, clamped to the text.
func (b *Buffer) Select(sel annot.Selection) Change {
	sel = clamp(sel, len(b.text))
	if sel == b.sel {
		return 0
	}
	b.sel = sel
	return SelectionChanged
}

// Deselect drops the selection so no span is revealed.
func (b *Buffer) Deselect() Change {
	if b.sel == annot.NoSelection {
		return 0
	}
	b.sel = annot.NoSelection
	return SelectionChanged
}

func clamp(sel annot.Selection, n int) annot.Selection {
	if sel == annot.NoSelection {
		return sel
	}
	sel.From = min(max(sel.From, 0), n)
	sel.To = min(max(sel.To, sel.From), n)
	return sel
}
