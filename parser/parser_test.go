package parser

import (
	"testing"

	"github.com/bellinitte/parser-parser/ast"
	"github.com/bellinitte/parser-parser/ebnferr"
	"github.com/bellinitte/parser-parser/lexer"
	"github.com/bellinitte/parser-parser/scanner"
)

func mustParse(t *testing.T, src string) *ast.Grammar {
	t.Helper()
	toks, err := lexer.Lex(scanner.Scan(src))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	g, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return g
}

func TestParse_SingleProduction(t *testing.T) {
	g := mustParse(t, `abc = 'def';`)
	if len(g.Productions) != 1 {
		t.Fatalf("unexpected production count: %d", len(g.Productions))
	}
	p := g.Productions[0]
	if p.Name != "abc" {
		t.Fatalf("unexpected name: %q", p.Name)
	}
	term, ok := p.RHS.(*ast.Terminal)
	if !ok {
		t.Fatalf("unexpected RHS type: %T", p.RHS)
	}
	if term.Literal != "def" {
		t.Fatalf("unexpected literal: %q", term.Literal)
	}
}

func TestParse_FlatteningRule(t *testing.T) {
	g := mustParse(t, `a = x | y | z;`)
	alt, ok := g.Productions[0].RHS.(*ast.Alternative)
	if !ok {
		t.Fatalf("unexpected RHS type: %T", g.Productions[0].RHS)
	}
	if len(alt.Operands()) != 3 {
		t.Fatalf("unexpected operand count: %d", len(alt.Operands()))
	}

	// A single operand must collapse to the bare child, never a
	// one-operand Alternative/Sequence.
	g2 := mustParse(t, `a = x;`)
	if _, ok := g2.Productions[0].RHS.(*ast.Nonterminal); !ok {
		t.Fatalf("expected a bare Nonterminal, got: %T", g2.Productions[0].RHS)
	}
}

func TestParse_FactorCanonicalization(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		check   func(t *testing.T, rhs ast.Expression)
	}{
		{
			caption: "count 0 canonicalizes to Empty",
			src:     `a = 0 * "x";`,
			check: func(t *testing.T, rhs ast.Expression) {
				if _, ok := rhs.(*ast.Empty); !ok {
					t.Fatalf("expected Empty, got: %T", rhs)
				}
			},
		},
		{
			caption: "count 1 canonicalizes to the bare primary",
			src:     `a = 1 * "x";`,
			check: func(t *testing.T, rhs ast.Expression) {
				term, ok := rhs.(*ast.Terminal)
				if !ok || term.Literal != "x" {
					t.Fatalf("expected Terminal(\"x\"), got: %#v", rhs)
				}
			},
		},
		{
			caption: "count >= 2 builds a Factor node",
			src:     `a = 3 * "x";`,
			check: func(t *testing.T, rhs ast.Expression) {
				f, ok := rhs.(*ast.Factor)
				if !ok || f.Count != 3 {
					t.Fatalf("expected Factor{Count: 3}, got: %#v", rhs)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := mustParse(t, tt.src)
			tt.check(t, g.Productions[0].RHS)
		})
	}
}

func TestParse_GroupingIsTransparent(t *testing.T) {
	g := mustParse(t, `a = (x);`)
	if _, ok := g.Productions[0].RHS.(*ast.Nonterminal); !ok {
		t.Fatalf("expected grouping to vanish into a bare Nonterminal, got: %T", g.Productions[0].RHS)
	}
}

func TestParse_EmptyProduction(t *testing.T) {
	g := mustParse(t, `a = ;`)
	if _, ok := g.Productions[0].RHS.(*ast.Empty); !ok {
		t.Fatalf("expected Empty, got: %T", g.Productions[0].RHS)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    error
	}{
		{"missing identifier entirely", `;`, ebnferr.ErrIdentifierExpected},
		{"missing '='", `a 'x';`, ebnferr.ErrDefinitionSymbolExpected},
		{"missing terminator", `a = 'x'`, ebnferr.ErrTerminatorSymbolExpected},
		{"unclosed group", `a = (x;`, ebnferr.ErrEndGroupSymbolExpected},
		{"unclosed option", `a = [x;`, ebnferr.ErrEndOptionSymbolExpected},
		{"unclosed repeat", `a = {x;`, ebnferr.ErrEndRepeatSymbolExpected},
		{"missing '*' after integer", `a = 3 x;`, ebnferr.ErrRepetitionSymbolExpected},
		// Scenario 7 of spec.md §8: a stray second terminator after a
		// complete production is reported as another identifier expected.
		{"trailing garbage after a complete production", `a = b;;`, ebnferr.ErrIdentifierExpected},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := lexer.Lex(scanner.Scan(tt.src))
			if err != nil {
				t.Fatalf("unexpected lex error: %v", err)
			}
			_, err = Parse(toks)
			if err == nil {
				t.Fatalf("expected a parse error")
			}
			e, ok := err.(*ebnferr.Error)
			if !ok {
				t.Fatalf("unexpected error type: %T", err)
			}
			if e.Cause != tt.want {
				t.Fatalf("unexpected cause; want: %v, got: %v", tt.want, e.Cause)
			}
		})
	}
}
