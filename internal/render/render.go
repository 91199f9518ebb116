// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package render draws an annotated sheet for a terminal.
//
// Rendering is a separate stage from the recompute: it takes the source text
// and a finished annot.Result and never evaluates anything itself.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"nickandperla.net/tally/internal/annot"
)

// Colors of the sheet theme.
const (
	colorBracket = lipgloss.Color("#ffe634")
	colorBase    = lipgloss.Color("#c7d2fe")
	colorArrow   = lipgloss.Color("#64748b")
	colorFinal   = lipgloss.Color("#a5b4fc")
	colorPlus    = lipgloss.Color("#4ade80")
	colorMinus   = lipgloss.Color("#f87171")
	colorFooter  = lipgloss.Color("#e5e7eb")
	colorRule    = lipgloss.Color("#334155")
)

// Theme holds one style per rendered piece.
type Theme struct {
	Bracket lipgloss.Style
	Base    lipgloss.Style
	Arrow   lipgloss.Style
	Final   lipgloss.Style
	Plus    lipgloss.Style
	Minus   lipgloss.Style
	Reveal  lipgloss.Style
	Footer  lipgloss.Style
	Rule    lipgloss.Style
}

// NewTheme builds the sheet theme on lr. Whether colors are emitted
// depends on lr's color profile.
func NewTheme(lr *lipgloss.Renderer) Theme {
	return Theme{
		Bracket: lr.NewStyle().Foreground(colorBracket),
		Base:    lr.NewStyle().Foreground(colorBase),
		Arrow:   lr.NewStyle().Foreground(colorArrow),
		Final:   lr.NewStyle().Foreground(colorFinal).Bold(true),
		Plus:    lr.NewStyle().Foreground(colorPlus).Bold(true),
		Minus:   lr.NewStyle().Foreground(colorMinus).Bold(true),
		Reveal:  lr.NewStyle().Underline(true),
		Footer:  lr.NewStyle().Foreground(colorFooter),
		Rule:    lr.NewStyle().Foreground(colorRule),
	}
}

// ColorMode selects when colors are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// NewLipgloss returns a lipgloss renderer for w honoring mode.
func NewLipgloss(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	lr := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		lr.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	}
	return lr
}

// Renderer turns (text, result) into terminal output.
type Renderer struct {
	theme  Theme
	footer bool
	audit  bool
	width  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithFooter appends the running total under the sheet.
func WithFooter(on bool) Option {
	return func(r *Renderer) { r.footer = on }
}

// WithAudit lists every modified or total value with its tooltip.
func WithAudit(on bool) Option {
	return func(r *Renderer) { r.audit = on }
}

// WithWidth right-aligns the footer to width columns. Zero disables
// alignment.
func WithWidth(w int) Option {
	return func(r *Renderer) { r.width = w }
}

// New creates a Renderer. Without WithTheme it uses an unstyled theme.
func New(opts ...Option) *Renderer {
	r := &Renderer{theme: NewTheme(NewLipgloss(io.Discard, ColorNever))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws text with the annotations of res applied.
func (r *Renderer) Render(text string, res annot.Result) string {
	var sb strings.Builder
	pos := 0
	for _, a := range res.Annotations {
		if a.Start < pos || a.End > len(text) || a.IsEmpty() {
			continue
		}
		sb.WriteString(text[pos:a.Start])
		sb.WriteString(r.annotation(text[a.Start:a.End], a))
		pos = a.End
	}
	sb.WriteString(text[pos:])

	if r.footer {
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(r.Footer(res))
		sb.WriteString("\n")
	}
	if r.audit {
		sb.WriteString(r.Audit(res))
	}
	return sb.String()
}

// annotation draws one annotated range whose source text is raw.
func (r *Renderer) annotation(raw string, a annot.Annotation) string {
	switch a.Mode {
	case annot.ModeModifierPositive:
		return r.theme.Plus.Render(raw)
	case annot.ModeModifierNegative:
		return r.theme.Minus.Render(raw)
	case annot.ModeReveal:
		return r.theme.Reveal.Render(raw)
	case annot.ModeComputed:
		if a.Value == nil {
			return raw
		}
		inner := r.theme.Base.Render(annot.FormatNumber(a.Value.Base))
		if a.Value.Modified() {
			inner += " " + r.theme.Arrow.Render("→") + " " + r.theme.Final.Render(annot.FormatNumber(a.Value.Final))
		}
		return r.bracket(inner)
	case annot.ModeTotal:
		if a.Value == nil {
			return raw
		}
		return r.bracket(r.theme.Final.Render(annot.FormatNumber(a.Value.Final)))
	}
	return raw
}

func (r *Renderer) bracket(inner string) string {
	return r.theme.Bracket.Render("[") + inner + r.theme.Bracket.Render("]")
}

// Footer returns the running-total line.
func (r *Renderer) Footer(res annot.Result) string {
	line := "Total: " + annot.FormatNumber(res.Total)
	if r.width <= 0 {
		return r.theme.Footer.Render(line)
	}
	rule := r.theme.Rule.Render(strings.Repeat("─", r.width))
	return rule + "\n" + r.theme.Footer.Width(r.width).Align(lipgloss.Right).Render(line)
}

// Audit lists every replacement with its tooltip, one per line.
func (r *Renderer) Audit(res annot.Result) string {
	var sb strings.Builder
	for _, a := range res.Replacements() {
		if a.Value == nil {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(a.Content)
		sb.WriteString("  ")
		sb.WriteString(a.Value.Tooltip)
		sb.WriteString("\n")
	}
	return sb.String()
}
