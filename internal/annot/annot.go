// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package annot defines the data produced by one recompute of a sheet:
// per-span evaluations and the display annotations handed to the host.
package annot

import (
	"fmt"
	"strings"
)

// Selection is the host's cursor or selection range. A collapsed cursor
// has From == To.
type Selection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Cursor returns a collapsed selection at offset at.
func Cursor(at int) Selection {
	return Selection{From: at, To: at}
}

// NoSelection lies outside every span; hosts without a cursor use it.
var NoSelection = Selection{From: -1, To: -1}

// Within reports whether the selection lies entirely inside [start, end].
// The end is inclusive so a cursor just after `]` still counts.
func (s Selection) Within(start, end int) bool {
	return s.From >= start && s.To <= end
}

// Kind classifies how a span was handled.
type Kind int

const (
	Revealed Kind = iota // Cursor inside; raw text shown
	Total                // [total] marker
	Computed             // Arithmetic evaluated
	Unparsed             // Not arithmetic; raw text shown
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Revealed:
		return "revealed"
	case Total:
		return "total"
	case Computed:
		return "computed"
	case Unparsed:
		return "unparsed"
	}
	return "unknown"
}

// Evaluation is the outcome for one bracket span.
type Evaluation struct {
	Kind     Kind
	Start    int
	End      int
	Inner    string
	Base     float64 // Computed only
	Modifier float64 // Computed only; already floored
	Final    float64 // Computed and Total
}

// Raw returns the span's source text.
func (e Evaluation) Raw() string {
	return "[" + e.Inner + "]"
}

// Mode tells the host how to display an annotated range.
type Mode int

const (
	ModeNone Mode = iota
	ModeReveal
	ModeComputed
	ModeTotal
	ModeModifierPositive
	ModeModifierNegative
)

var modeNames = [...]string{
	ModeNone:             "none",
	ModeReveal:           "reveal",
	ModeComputed:         "computed",
	ModeTotal:            "total",
	ModeModifierPositive: "modifier-positive",
	ModeModifierNegative: "modifier-negative",
}

// String returns the string representation of a Mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Replaces reports whether the host should draw Content instead of the
// source text.
func (m Mode) Replaces() bool {
	return m == ModeComputed || m == ModeTotal
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	for i, name := range modeNames {
		if strings.EqualFold(name, string(b)) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", b)
}

// Value carries the numbers behind a replacement so the host can draw the
// base, the final value, and a tooltip.
type Value struct {
	Base     float64 `json:"base"`
	Final    float64 `json:"final"`
	Modifier float64 `json:"modifier"`
	Tooltip  string  `json:"tooltip"`
}

// Modified reports whether a modifier changed the base.
func (v Value) Modified() bool {
	return v.Modifier != 0
}

// Annotation is a display directive over [Start, End).
type Annotation struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Mode    Mode   `json:"mode"`
	Content string `json:"content"`
	Value   *Value `json:"value,omitempty"`
}

// String returns what the host shows for the range.
func (a Annotation) String() string {
	return a.Content
}

// IsEmpty returns true for a zero-width annotation.
func (a Annotation) IsEmpty() bool {
	return a.End <= a.Start
}

// Result is everything one recompute produces.
type Result struct {
	Annotations []Annotation `json:"annotations"`
	Evaluations []Evaluation `json:"-"`
	// Total is the running total left after the last span. It is only
	// displayed when a trailing [total] consumes it.
	Total float64 `json:"total"`
}

// Count returns how many evaluations have the given kind.
func (r Result) Count(k Kind) int {
	n := 0
	for _, e := range r.Evaluations {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Replacements returns only the annotations whose mode replaces text.
func (r Result) Replacements() []Annotation {
	var out []Annotation
	for _, a := range r.Annotations {
		if a.Mode.Replaces() {
			out = append(out, a)
		}
	}
	return out
}
