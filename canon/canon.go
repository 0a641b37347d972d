// Package canon lowers a validated ast.Grammar into the flat
// representation recognize interprets (spec.md §4.6): a plain
// name-to-right-hand-side table. The right-hand sides are the parser's
// ast.Expression values, spans included; they are not stripped. Compile is
// meant to run only after preprocess.Validate has accepted the grammar —
// it performs no checks of its own.
package canon

import "github.com/bellinitte/parser-parser/ast"

// Grammar is a canonical, name-addressed grammar: every production's
// right-hand side, keyed by name. The expressions still carry their
// spans; recognize only walks the expression tree and ignores them.
type Grammar map[string]ast.Expression

// Compile builds a Grammar from g, last definition wins for a repeated
// name (spec.md §9) — later productions in source order simply overwrite
// earlier map entries for the same key.
func Compile(g *ast.Grammar) Grammar {
	out := make(Grammar, len(g.Productions))
	for _, p := range g.Productions {
		out[p.Name] = p.RHS
	}
	return out
}

// Lookup returns the right-hand side bound to name, if any.
func (g Grammar) Lookup(name string) (ast.Expression, bool) {
	rhs, ok := g[name]
	return rhs, ok
}
