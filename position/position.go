// Package position holds the source-location primitives shared by every
// later stage of the grammar pipeline: the scanner, lexer, parser,
// preprocessor, and error model all carry their positional information as
// a Location, a Span, or a Spanned value.
package position

import (
	"encoding/json"
	"fmt"
)

// Location is a zero-based (column, line) pair. The zero value is the
// start of the source.
//
// Column counts Unicode code points, not bytes and not graphemes, so that
// a Location is stable under combining-character reordering while still
// meaning something to tools that count code points.
type Location struct {
	Line   int
	Column int
}

// NewLocation returns the zero Location.
func NewLocation() Location {
	return Location{}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Column+1)
}

// MarshalJSON renders {"line": ..., "column": ...}, the shape spec.md §6
// specifies for a Location embedded in an error's span.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	}{l.Line, l.Column})
}

// Span is an ordered pair of Locations bracketing a lexical or syntactic
// unit.
type Span struct {
	From Location `json:"from"`
	To   Location `json:"to"`
}

// NewSpan builds a Span from two (column, line) pairs.
func NewSpan(from, to Location) Span {
	return Span{From: from, To: to}
}

// Combine returns the span running from the start of a to the end of b.
func Combine(a, b Span) Span {
	return Span{From: a.From, To: b.To}
}

// Between returns the span running from the end of a to the start of b.
// It is used for the empty production (spec.md §4.4): the gap left
// between the last consumed token and the next one.
func Between(a, b Span) Span {
	return Span{From: a.To, To: b.From}
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.From, s.To)
}

// Spanned pairs an arbitrary value with the Span it was read from. It is
// the universal vehicle for positional information through the scanner,
// lexer, and parser.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// New wraps a value with its span.
func New[T any](value T, span Span) Spanned[T] {
	return Spanned[T]{Value: value, Span: span}
}
