// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the tally recompute pipeline.
//
// Compute walks a sheet once, left to right. Each bracket span is either
// revealed (the selection sits inside it), a total marker, an arithmetic
// expression, or left alone. Modifiers written in the plain text since the
// previous span adjust the next computed span only. A running total of
// computed values is consumed and reset by every [total].
package eval

import (
	"context"
	"log/slog"
	"strings"

	"nickandperla.net/tally/internal/annot"
	"nickandperla.net/tally/internal/arith"
	"nickandperla.net/tally/internal/modifier"
	"nickandperla.net/tally/internal/scanner"
	"nickandperla.net/tally/internal/token"
)

// ArithFunc evaluates the text inside a bracket.
type ArithFunc func(expr string) (float64, error)

// Evaluator runs recomputes. It holds configuration only; every call to
// Compute starts from a zero running total.
type Evaluator struct {
	arith  ArithFunc
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithArithmetic replaces the bracket evaluator.
func WithArithmetic(f ArithFunc) Option {
	return func(e *Evaluator) { e.arith = f }
}

// WithLogger sets the logger used for per-span debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		arith:  arith.Evaluate,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// pass is the state of one recompute.
type pass struct {
	text         string
	sel          annot.Selection
	runningTotal float64
	lastConsumed int
	result       annot.Result
}

// Compute evaluates text under the given selection and returns the full,
// ordered annotation set. It never fails: anything it cannot evaluate is
// left as raw text.
func (e *Evaluator) Compute(text string, sel annot.Selection) annot.Result {
	p := &pass{text: text, sel: sel}

	for item := range scanner.Items(text) {
		switch item.Token {
		case token.TEXT:
			e.styleModifiers(p, item)
		case token.BRACKET:
			e.evalSpan(p, item.Span())
		}
	}

	p.result.Total = p.runningTotal
	return p.result
}

// styleModifiers marks every modifier in a plain-text gap by sign.
func (e *Evaluator) styleModifiers(p *pass, gap scanner.Item) {
	for _, tok := range modifier.Scan(p.text, gap.Start, gap.End) {
		mode := annot.ModeModifierNegative
		if tok.Positive() {
			mode = annot.ModeModifierPositive
		}
		p.result.Annotations = append(p.result.Annotations, annot.Annotation{
			Start:   tok.Start,
			End:     tok.End,
			Mode:    mode,
			Content: p.text[tok.Start:tok.End],
		})
	}
}

// evalSpan runs the per-span state machine.
func (e *Evaluator) evalSpan(p *pass, sp scanner.Span) {
	ev := annot.Evaluation{Start: sp.Start, End: sp.End, Inner: sp.Inner}
	defer func() {
		p.lastConsumed = sp.End
		p.result.Evaluations = append(p.result.Evaluations, ev)
		e.trace(ev)
	}()

	if p.sel.Within(sp.Start, sp.End) {
		ev.Kind = annot.Revealed
		p.emit(sp, annot.ModeReveal, sp.Raw(), nil)
		return
	}

	if isTotal(sp.Inner) {
		ev.Kind = annot.Total
		ev.Final = p.runningTotal
		p.runningTotal = 0
		p.emit(sp, annot.ModeTotal, annot.TotalContent(ev.Final), &annot.Value{
			Base:    ev.Final,
			Final:   ev.Final,
			Tooltip: annot.FormatNumber(ev.Final),
		})
		return
	}

	base, err := e.arith(sp.Inner)
	if err != nil {
		ev.Kind = annot.Unparsed
		p.emit(sp, annot.ModeNone, sp.Raw(), nil)
		return
	}

	mod := modifier.Collect(p.text, p.lastConsumed, sp.Start)
	final := annot.Round(base * (1 + mod))
	p.runningTotal += final

	ev.Kind = annot.Computed
	ev.Base, ev.Modifier, ev.Final = base, mod, final

	v := annot.Value{
		Base:     base,
		Final:    final,
		Modifier: mod,
		Tooltip:  annot.Tooltip(base, mod, final),
	}
	p.emit(sp, annot.ModeComputed, annot.ComputedContent(v), &v)
}

func (p *pass) emit(sp scanner.Span, mode annot.Mode, content string, v *annot.Value) {
	p.result.Annotations = append(p.result.Annotations, annot.Annotation{
		Start:   sp.Start,
		End:     sp.End,
		Mode:    mode,
		Content: content,
		Value:   v,
	})
}

func (e *Evaluator) trace(ev annot.Evaluation) {
	if !e.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	e.logger.Debug("span",
		"kind", ev.Kind.String(),
		"start", ev.Start,
		"end", ev.End,
		"inner", ev.Inner,
		"final", ev.Final,
	)
}

// isTotal reports whether inner is a total marker.
func isTotal(inner string) bool {
	return strings.EqualFold(strings.TrimSpace(inner), token.TotalKeyword)
}
