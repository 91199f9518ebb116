// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package modifier folds the percentage modifiers written in plain text
// (`+10`, `-25`) into a single signed fraction.
package modifier

import (
	"errors"
	"strconv"

	"nickandperla.net/tally/internal/scanner"
	"nickandperla.net/tally/internal/token"
)

// Floor is the lowest fraction Collect returns. There is no upper bound.
const Floor = -0.8

// Token is one modifier found in text.
type Token struct {
	Start int
	End   int
	Value int  // Signed percentage
	Plus  bool // Written with `+`; `-0` is negative
}

// Positive reports whether the token was written with a plus sign.
func (t Token) Positive() bool {
	return t.Plus
}

// Fraction returns the token's contribution, Value/100.
func (t Token) Fraction() float64 {
	return float64(t.Value) / 100
}

// Scan returns the modifier tokens of text[from:to] in order.
func Scan(text string, from, to int) []Token {
	var toks []Token
	for it := range scanner.Modifiers(text, from, to) {
		toks = append(toks, Token{
			Start: it.Start,
			End:   it.End,
			Value: parse(it.Value),
			Plus:  it.Value[0] == token.BytePlus,
		})
	}
	return toks
}

// Collect sums the fractions of every token in text[from:to], floored at
// Floor. It returns 0 when the range holds no modifier.
func Collect(text string, from, to int) float64 {
	var sum float64
	for it := range scanner.Modifiers(text, from, to) {
		sum += float64(parse(it.Value)) / 100
	}
	if sum < Floor {
		sum = Floor
	}
	return sum
}

// parse converts a signed digit run. Runs too long for an int saturate.
func parse(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}
