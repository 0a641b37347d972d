// Package ast defines the grammar's abstract syntax tree (spec.md §3):
// the Expression sum type, productions, and the parsed Grammar. Trees are
// genuinely trees — children are held by value, never shared — per the
// "recursive AST ownership" design note (spec.md §9).
package ast

import "github.com/bellinitte/parser-parser/position"

// Expression is the recursive sum type of spec.md §3. Every concrete
// variant below implements it; Span returns the node's source span, which
// is well-defined for every Expression reachable from a Grammar.
type Expression interface {
	Span() position.Span
}

// Alternative is an ordered choice between at least two operands
// (spec.md §4.4's flattening rule guarantees this: a one-element
// alternative-list collapses to its single child instead of wrapping it).
type Alternative struct {
	First, Second Expression
	Rest          []Expression
	span          position.Span
}

func NewAlternative(first, second Expression, rest []Expression, span position.Span) *Alternative {
	return &Alternative{First: first, Second: second, Rest: rest, span: span}
}

func (a *Alternative) Span() position.Span { return a.span }

// Operands returns all operands of the alternative in order.
func (a *Alternative) Operands() []Expression {
	return append([]Expression{a.First, a.Second}, a.Rest...)
}

// Sequence is concatenation of at least two operands, same flattening
// guarantee as Alternative.
type Sequence struct {
	First, Second Expression
	Rest          []Expression
	span          position.Span
}

func NewSequence(first, second Expression, rest []Expression, span position.Span) *Sequence {
	return &Sequence{First: first, Second: second, Rest: rest, span: span}
}

func (s *Sequence) Span() position.Span { return s.span }

func (s *Sequence) Operands() []Expression {
	return append([]Expression{s.First, s.Second}, s.Rest...)
}

// Optional is `[ inner ]`.
type Optional struct {
	Inner Expression
	span  position.Span
}

func NewOptional(inner Expression, span position.Span) *Optional {
	return &Optional{Inner: inner, span: span}
}

func (o *Optional) Span() position.Span { return o.span }

// Repeated is `{ inner }`.
type Repeated struct {
	Inner Expression
	span  position.Span
}

func NewRepeated(inner Expression, span position.Span) *Repeated {
	return &Repeated{Inner: inner, span: span}
}

func (r *Repeated) Span() position.Span { return r.span }

// Factor is `count * primary`, count >= 2. A count of 0 canonicalizes to
// Empty and a count of 1 canonicalizes to primary unchanged (spec.md
// §4.4); a Factor node is only ever constructed for count >= 2, so the
// recognizer never needs to special-case count 0 or 1.
type Factor struct {
	Count   uint64
	Primary Expression
	span    position.Span
}

func NewFactor(count uint64, primary Expression, span position.Span) *Factor {
	return &Factor{Count: count, Primary: primary, span: span}
}

func (f *Factor) Span() position.Span { return f.span }

// Exception is `subject - restriction`.
type Exception struct {
	Subject, Restriction Expression
	span                 position.Span
}

func NewException(subject, restriction Expression, span position.Span) *Exception {
	return &Exception{Subject: subject, Restriction: restriction, span: span}
}

func (e *Exception) Span() position.Span { return e.span }

// Nonterminal is a reference to another production by name.
type Nonterminal struct {
	Name string
	span position.Span
}

func NewNonterminal(name string, span position.Span) *Nonterminal {
	return &Nonterminal{Name: name, span: span}
}

func (n *Nonterminal) Span() position.Span { return n.span }

// Terminal is a literal string to match exactly.
type Terminal struct {
	Literal string
	span    position.Span
}

func NewTerminal(literal string, span position.Span) *Terminal {
	return &Terminal{Literal: literal, span: span}
}

func (t *Terminal) Span() position.Span { return t.span }

// Special is an opaque `?...?` special sequence. It always fails to match
// at recognition time (spec.md §9); the recognizer has no hook for
// interpreting Special bodies.
type Special struct {
	Text string
	span position.Span
}

func NewSpecial(text string, span position.Span) *Special {
	return &Special{Text: text, span: span}
}

func (s *Special) Span() position.Span { return s.span }

// Empty is the empty production, matching zero input unconditionally.
type Empty struct {
	span position.Span
}

func NewEmpty(span position.Span) *Empty {
	return &Empty{span: span}
}

func (e *Empty) Span() position.Span { return e.span }

// Production is a single (name, right-hand side) binding, carrying its own
// span and the span of just its name (used to point errors at the
// definition site rather than the whole production).
type Production struct {
	Name     string
	NameSpan position.Span
	RHS      Expression
	span     position.Span
}

func NewProduction(name string, nameSpan position.Span, rhs Expression, span position.Span) *Production {
	return &Production{Name: name, NameSpan: nameSpan, RHS: rhs, span: span}
}

func (p *Production) Span() position.Span { return p.span }

// Grammar is an ordered list of spanned productions — the parser's output.
type Grammar struct {
	Productions []*Production
}

// ProductionNames returns the production names in source order, including
// duplicates if the source defines a name more than once (spec.md §6:
// "an accessor for the ordered list of production names in source
// order").
func (g *Grammar) ProductionNames() []string {
	names := make([]string, len(g.Productions))
	for i, p := range g.Productions {
		names[i] = p.Name
	}
	return names
}
