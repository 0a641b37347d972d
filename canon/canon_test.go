package canon

import (
	"testing"

	"github.com/bellinitte/parser-parser/ast"
	"github.com/bellinitte/parser-parser/lexer"
	"github.com/bellinitte/parser-parser/parser"
	"github.com/bellinitte/parser-parser/scanner"
)

func compile(t *testing.T, src string) Grammar {
	t.Helper()
	toks, err := lexer.Lex(scanner.Scan(src))
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	g, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return Compile(g)
}

func TestCompile_LookupByName(t *testing.T) {
	g := compile(t, `a = 'x'; b = a;`)
	if _, ok := g.Lookup("a"); !ok {
		t.Fatal("expected rule \"a\" to be present")
	}
	if _, ok := g.Lookup("b"); !ok {
		t.Fatal("expected rule \"b\" to be present")
	}
	if _, ok := g.Lookup("c"); ok {
		t.Fatal("did not expect rule \"c\" to be present")
	}
}

func TestCompile_LastDefinitionWins(t *testing.T) {
	g := compile(t, `a = 'x'; a = 'y';`)
	rhs, ok := g.Lookup("a")
	if !ok {
		t.Fatal("expected rule \"a\" to be present")
	}
	term, ok := rhs.(*ast.Terminal)
	if !ok || term.Literal != "y" {
		t.Fatalf("expected the later definition to win, got: %#v", rhs)
	}
}
