// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a forward-only lexer for tally sheets.
//
// A sheet is free-form text in which `[...]` spans hold arithmetic. The
// scanner splits the text into plain TEXT gaps and BRACKET spans, in
// document order and without overlap. Offsets are byte offsets into the
// scanned string.
package scanner

import (
	"iter"
	"strings"

	"nickandperla.net/tally/internal/token"
)

// Scanner tokenizes a sheet into text gaps and bracket spans.
type Scanner struct {
	src    string
	pos    int // Next unread byte
	peeked *Item
}

// Item represents a scanned token with its location.
type Item struct {
	Token token.Token
	Value string // Raw source text of the item
	Start int    // Offset of the first byte
	End   int    // Offset one past the last byte
}

// Inner returns the text strictly between the brackets of a BRACKET item.
// It returns "" for any other token.
func (it Item) Inner() string {
	if it.Token != token.BRACKET || len(it.Value) < 2 {
		return ""
	}
	return it.Value[1 : len(it.Value)-1]
}

// Span returns the bracket span described by a BRACKET item.
func (it Item) Span() Span {
	return Span{Start: it.Start, End: it.End, Inner: it.Inner()}
}

// Span is a located `[...]` region.
type Span struct {
	Start int
	End   int
	Inner string
}

// Raw returns the span's source text including brackets.
func (s Span) Raw() string {
	return string(token.ByteOpen) + s.Inner + string(token.ByteClose)
}

// New creates a new Scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the offset of the next unread byte.
func (s *Scanner) Pos() int {
	if s.peeked != nil {
		return s.peeked.Start
	}
	return s.pos
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() Item {
	if s.peeked != nil {
		return *s.peeked
	}
	item := s.Next()
	s.peeked = &item
	return item
}

// Next returns the next item. Once the input is exhausted it returns EOF
// on every call.
func (s *Scanner) Next() Item {
	if s.peeked != nil {
		item := *s.peeked
		s.peeked = nil
		return item
	}

	if s.pos >= len(s.src) {
		return Item{Token: token.EOF, Start: len(s.src), End: len(s.src)}
	}

	start, end, ok := s.nextSpan(s.pos)
	if !ok {
		// No more spans: the rest is one gap
		item := Item{Token: token.TEXT, Value: s.src[s.pos:], Start: s.pos, End: len(s.src)}
		s.pos = len(s.src)
		return item
	}

	if start > s.pos {
		// Return the gap first; the span is found again on the next call
		item := Item{Token: token.TEXT, Value: s.src[s.pos:start], Start: s.pos, End: start}
		s.pos = start
		return item
	}

	s.pos = end
	return Item{Token: token.BRACKET, Value: s.src[start:end], Start: start, End: end}
}

// nextSpan finds the first span starting at or after from.
//
// The first `]` after an opening `[` closes the span, so an inner `[` is a
// literal. A `[` directly followed by `]` opens nothing and the search moves
// on. Once no `]` remains, no later `[` can close either.
func (s *Scanner) nextSpan(from int) (start, end int, ok bool) {
	for from < len(s.src) {
		open := strings.IndexByte(s.src[from:], token.ByteOpen)
		if open < 0 {
			return 0, 0, false
		}
		open += from

		shut := strings.IndexByte(s.src[open+1:], token.ByteClose)
		if shut < 0 {
			return 0, 0, false
		}
		if shut == 0 {
			from = open + 1
			continue
		}
		return open, open + 1 + shut + 1, true
	}
	return 0, 0, false
}

// Spans returns all bracket spans of text, in order. Each iteration runs a
// fresh scan.
func Spans(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		s := New(text)
		for {
			item := s.Next()
			switch item.Token {
			case token.EOF:
				return
			case token.BRACKET:
				if !yield(item.Span()) {
					return
				}
			}
		}
	}
}

// Items returns every item of text, gaps and spans, in order.
func Items(text string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		s := New(text)
		for {
			item := s.Next()
			if item.Token == token.EOF || !yield(item) {
				return
			}
		}
	}
}

// Modifiers returns the MODIFIER items found in text[from:to]: a `+` or `-`
// followed by one or more ASCII digits. Bounds are clamped to the text.
// Offsets are relative to text, not to the sub-range.
func Modifiers(text string, from, to int) iter.Seq[Item] {
	from = max(from, 0)
	to = min(to, len(text))
	return func(yield func(Item) bool) {
		i := from
		for i < to {
			if !token.IsSign(text[i]) {
				i++
				continue
			}
			j := i + 1
			for j < to && token.IsDigit(text[j]) {
				j++
			}
			if j == i+1 {
				i++
				continue
			}
			if !yield(Item{Token: token.MODIFIER, Value: text[i:j], Start: i, End: j}) {
				return
			}
			i = j
		}
	}
}
