// Package preprocess validates a parsed grammar before it is handed to
// canon and recognize (spec.md §4.5): every referenced nonterminal must
// be defined somewhere in the grammar, and no rule may be left-recursive
// — reachable from itself without first consuming a terminal. Both
// checks return the first violation found; there is no accumulation
// across passes (spec.md §7's first-error-wins rule).
package preprocess

import (
	"github.com/bellinitte/parser-parser/ast"
	"github.com/bellinitte/parser-parser/ebnferr"
	"github.com/bellinitte/parser-parser/position"
)

// Warning is a non-fatal finding — currently only duplicate rule
// definitions, which spec.md §9 permits (last definition wins) rather
// than rejects.
type Warning struct {
	Message string
	Span    position.Span
}

// Validate runs the undefined-nonterminal and left-recursion passes over
// g, in that order, and additionally collects duplicate-definition
// warnings. The returned warnings are still populated even when err is
// non-nil, since they are gathered before either failing pass runs.
func Validate(g *ast.Grammar) ([]Warning, error) {
	warnings := duplicateWarnings(g)

	defined := make(map[string]bool, len(g.Productions))
	for _, p := range g.Productions {
		defined[p.Name] = true
	}

	for _, p := range g.Productions {
		if err := checkDefined(p.RHS, defined); err != nil {
			return warnings, err
		}
	}

	rhsByName := rhsTable(g)
	for _, p := range g.Productions {
		if err := checkLeftRecursion(p.Name, rhsByName); err != nil {
			return warnings, err
		}
	}

	return warnings, nil
}

func duplicateWarnings(g *ast.Grammar) []Warning {
	var warnings []Warning
	seen := make(map[string]bool, len(g.Productions))
	for _, p := range g.Productions {
		if seen[p.Name] {
			warnings = append(warnings, Warning{
				Message: "rule \"" + p.Name + "\" redefined; the last definition wins",
				Span:    p.NameSpan,
			})
		}
		seen[p.Name] = true
	}
	return warnings
}

// rhsTable builds the name-to-right-hand-side map used by both passes,
// with later productions overwriting earlier ones for the same name —
// the same last-definition-wins rule canon.Compile applies.
func rhsTable(g *ast.Grammar) map[string]ast.Expression {
	m := make(map[string]ast.Expression, len(g.Productions))
	for _, p := range g.Productions {
		m[p.Name] = p.RHS
	}
	return m
}

// checkDefined walks e looking for a Nonterminal occurrence whose name is
// not in defined.
func checkDefined(e ast.Expression, defined map[string]bool) error {
	switch n := e.(type) {
	case *ast.Nonterminal:
		if !defined[n.Name] {
			return ebnferr.New(&ebnferr.UndefinedRuleError{Name: n.Name}, n.Span())
		}
	case *ast.Alternative:
		for _, op := range n.Operands() {
			if err := checkDefined(op, defined); err != nil {
				return err
			}
		}
	case *ast.Sequence:
		for _, op := range n.Operands() {
			if err := checkDefined(op, defined); err != nil {
				return err
			}
		}
	case *ast.Optional:
		return checkDefined(n.Inner, defined)
	case *ast.Repeated:
		return checkDefined(n.Inner, defined)
	case *ast.Factor:
		return checkDefined(n.Primary, defined)
	case *ast.Exception:
		if err := checkDefined(n.Subject, defined); err != nil {
			return err
		}
		return checkDefined(n.Restriction, defined)
	}
	return nil
}

// checkLeftRecursion follows the leftmost corner of start's right-hand
// side, expanding nonterminals as it goes, and fails if start is
// reachable from itself along a path that never has to consume a
// terminal first. path records the chain for the error message.
func checkLeftRecursion(start string, rhs map[string]ast.Expression) error {
	return walkLeftCorner(start, rhs[start], rhs, []string{start}, map[string]bool{start: true})
}

func walkLeftCorner(start string, e ast.Expression, rhs map[string]ast.Expression, path []string, onPath map[string]bool) error {
	for _, name := range leftCorners(e, rhs) {
		if name == start {
			return ebnferr.New(&ebnferr.LeftRecursionError{Chain: append(append([]string{}, path...), start)}, e.Span())
		}
		if onPath[name] {
			// Left-recursive through some other rule, already reported
			// when that rule itself is checked; skip to avoid infinite
			// recursion here.
			continue
		}
		onPath[name] = true
		if err := walkLeftCorner(start, rhs[name], rhs, append(path, name), onPath); err != nil {
			return err
		}
		delete(onPath, name)
	}
	return nil
}

// leftCorners returns the nonterminal names that can occur in the
// leftmost position of e without any terminal being consumed first —
// i.e. e's own first symbol, plus (for a Sequence) the next operand's
// leftmost corners whenever every operand tried so far can match the
// empty string.
func leftCorners(e ast.Expression, rhs map[string]ast.Expression) []string {
	switch n := e.(type) {
	case *ast.Nonterminal:
		return []string{n.Name}
	case *ast.Alternative:
		var out []string
		for _, op := range n.Operands() {
			out = append(out, leftCorners(op, rhs)...)
		}
		return out
	case *ast.Sequence:
		var out []string
		for _, op := range n.Operands() {
			out = append(out, leftCorners(op, rhs)...)
			if !canFailEmpty(op, rhs, map[string]bool{}) {
				break
			}
		}
		return out
	case *ast.Optional:
		return leftCorners(n.Inner, rhs)
	case *ast.Repeated:
		return leftCorners(n.Inner, rhs)
	case *ast.Factor:
		return leftCorners(n.Primary, rhs)
	case *ast.Exception:
		return leftCorners(n.Subject, rhs)
	default:
		return nil
	}
}

// canFailEmpty reports whether e can match the empty string — i.e.
// succeed while consuming zero input — per spec.md §4.5's formal
// definition, matching the original's is_failing
// (original_source/ebnf/src/preprocessor/mod.rs): Terminal/Special are
// never nullable; Empty/Optional/Repeated always are; a Factor defers to
// its primary (count==0 factors are already canonicalized to Empty, so
// there is no zero case to special-case here); an Alternative is nullable
// only if every operand is; a Sequence is nullable if any operand is; an
// Exception is nullable only if both its subject and restriction are.
//
// A Nonterminal expands to can-fail-empty(RHS(n)), guarded by trace so a
// rule already being expanded on this call chain is treated as
// non-nullable rather than recursing forever — this is what lets
// walkLeftCorner see through a nullable nonterminal (e.g. `b = ;` in
// `a = b, a;`) to find the left recursion hiding behind it.
func canFailEmpty(e ast.Expression, rhs map[string]ast.Expression, trace map[string]bool) bool {
	switch n := e.(type) {
	case *ast.Empty:
		return true
	case *ast.Optional:
		return true
	case *ast.Repeated:
		return true
	case *ast.Terminal:
		return false
	case *ast.Special:
		return false
	case *ast.Nonterminal:
		if trace[n.Name] {
			return false
		}
		trace[n.Name] = true
		result := canFailEmpty(rhs[n.Name], rhs, trace)
		delete(trace, n.Name)
		return result
	case *ast.Factor:
		return canFailEmpty(n.Primary, rhs, trace)
	case *ast.Exception:
		return canFailEmpty(n.Subject, rhs, trace) && canFailEmpty(n.Restriction, rhs, trace)
	case *ast.Sequence:
		for _, op := range n.Operands() {
			if canFailEmpty(op, rhs, trace) {
				return true
			}
		}
		return false
	case *ast.Alternative:
		for _, op := range n.Operands() {
			if !canFailEmpty(op, rhs, trace) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
