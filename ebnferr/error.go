// Package ebnferr is the uniform error model shared by the scanner,
// lexer, parser, and preprocessor (spec.md §4.8, §7). Every stage raises
// its own sentinel or typed error as Cause and lets the caller attach a
// Span; there is no accumulation across stages — the first error wins.
package ebnferr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bellinitte/parser-parser/position"
)

// Error is the single carrier type every stage's failure is lifted into,
// mirroring the teacher's SpecError{Cause error, Row int} but keeping a
// full Span instead of a bare row.
type Error struct {
	Cause error
	Span  position.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Span.From, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the human-readable description of the error's cause, the
// "kind" field of the embedding convention in spec.md §6.
func (e *Error) Kind() string {
	return e.Cause.Error()
}

// Render produces the CLI's "Error: <kind> at position line:column" line
// (spec.md §7).
func (e *Error) Render() string {
	return fmt.Sprintf("Error: %s at position %s", e.Kind(), e.Span.From)
}

// New wraps cause with span into an *Error.
func New(cause error, span position.Span) *Error {
	return &Error{Cause: cause, Span: span}
}

// MarshalJSON renders the embedding convention of spec.md §6:
// {"kind": "<human-readable>", "span": {"from": {...}, "to": {...}}}.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string        `json:"kind"`
		Span position.Span `json:"span"`
	}{
		Kind: e.Kind(),
		Span: e.Span,
	})
}

// Lexical error kinds (spec.md §4.3, §7).
var (
	ErrUnterminatedComment  = errors.New("unterminated comment")
	ErrUnterminatedTerminal = errors.New("unterminated terminal literal")
	ErrEmptyTerminal        = errors.New("terminal literal must not be empty")
	ErrUnterminatedSpecial  = errors.New("unterminated special sequence")
)

// InvalidSymbolError is raised for any grapheme that cannot begin a token
// outside a literal, and for the degenerate lexemes (*), (/), (:).
type InvalidSymbolError struct {
	Text string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q", e.Text)
}

// Syntactic error kinds (spec.md §4.4, §7).
var (
	ErrIdentifierExpected       = errors.New("identifier expected")
	ErrDefinitionSymbolExpected = errors.New("'=' expected")
	ErrTerminatorSymbolExpected = errors.New("terminator (';' or '.') expected")
	ErrEndGroupSymbolExpected   = errors.New("')' expected")
	ErrEndOptionSymbolExpected  = errors.New("']' or '/)' expected")
	ErrEndRepeatSymbolExpected  = errors.New("'}' or ':)' expected")
	ErrRepetitionSymbolExpected = errors.New("'*' expected")
	ErrDefinitionExpected       = errors.New("'|', '/' or '!' expected")

	// Primary-token-kind mismatches, used internally by the parser's
	// token matchers.
	ErrNonterminalExpected = errors.New("nonterminal expected")
	ErrTerminalExpected    = errors.New("terminal expected")
	ErrSpecialExpected     = errors.New("special sequence expected")
	ErrIntegerExpected     = errors.New("integer expected")
)

// Semantic error kinds (spec.md §4.5, §7).

// UndefinedRuleError is raised when a Nonterminal occurrence names no
// production in the grammar.
type UndefinedRuleError struct {
	Name string
}

func (e *UndefinedRuleError) Error() string {
	return fmt.Sprintf("undefined rule %q", e.Name)
}

// LeftRecursionError is raised when a rule is reachable from itself
// without first consuming a terminal. Chain is the reference chain
// R -> ... -> R, ending in R.
type LeftRecursionError struct {
	Chain []string
}

func (e *LeftRecursionError) Error() string {
	return fmt.Sprintf("left recursion: %s", strings.Join(e.Chain, " -> "))
}
