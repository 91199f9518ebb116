// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines tally token types and the delimiter constants of
// the sheet syntax.
package token

// Token represents a tally token type.
type Token int

const (
	EOF Token = iota
	TEXT

	BRACKET  // [ ... ] - expression span
	MODIFIER // +N / -N - percentage modifier in plain text
)

// Delimiter and sign bytes.
const (
	ByteOpen  = '['
	ByteClose = ']'
	BytePlus  = '+'
	ByteMinus = '-'
)

// TotalKeyword is the inner text (trimmed, case-insensitive) of a total marker.
const TotalKeyword = "total"

// IsSign returns true if b starts a modifier.
func IsSign(b byte) bool {
	return b == BytePlus || b == ByteMinus
}

// IsDigit returns true for ASCII decimal digits.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case TEXT:
		return "TEXT"
	case BRACKET:
		return "BRACKET"
	case MODIFIER:
		return "MODIFIER"
	}
	return "UNKNOWN"
}
