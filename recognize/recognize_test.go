package recognize

import (
	"testing"

	"github.com/bellinitte/parser-parser/canon"
	"github.com/bellinitte/parser-parser/lexer"
	"github.com/bellinitte/parser-parser/parser"
	"github.com/bellinitte/parser-parser/preprocess"
	"github.com/bellinitte/parser-parser/scanner"
)

func compile(t *testing.T, src string) canon.Grammar {
	t.Helper()
	toks, err := lexer.Lex(scanner.Scan(src))
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	g, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := preprocess.Validate(g); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return canon.Compile(g)
}

func TestRecognize_Terminal(t *testing.T) {
	g := compile(t, `abc = 'def';`)
	tree, ok := Recognize(g, "abc", "def", nil)
	if !ok {
		t.Fatal("expected acceptance")
	}
	root := tree.(NonterminalNode)
	if root.Name != "abc" || len(root.Children) != 1 {
		t.Fatalf("unexpected tree: %#v", root)
	}
	leaf, ok := root.Children[0].(TerminalNode)
	if !ok || leaf.Literal != "def" {
		t.Fatalf("unexpected leaf: %#v", root.Children[0])
	}
}

func TestRecognize_EmptyProduction(t *testing.T) {
	g := compile(t, `a = ;`)

	tree, ok := Recognize(g, "a", "", nil)
	if !ok {
		t.Fatal("expected acceptance of empty input")
	}
	root := tree.(NonterminalNode)
	if len(root.Children) != 0 {
		t.Fatalf("expected no children, got: %#v", root.Children)
	}

	if _, ok := Recognize(g, "a", "x", nil); ok {
		t.Fatal("expected rejection: trailing unconsumed input")
	}
}

func TestRecognize_RepeatedDigits(t *testing.T) {
	g := compile(t, `
		number = digit, { digit };
		digit  = '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9';
	`)

	if _, ok := Recognize(g, "number", "123", nil); !ok {
		t.Fatal("expected acceptance")
	}
	if _, ok := Recognize(g, "number", "1a", nil); ok {
		t.Fatal("expected rejection: trailing input after the greedy digit run")
	}
}

func TestRecognize_OrderedAlternativeCommitsToFirstMatch(t *testing.T) {
	// "ab" | "a" would reject "a" alone if the first branch were tried and
	// failed to fully consume, then not retried against the second; here
	// we check the opposite order commits to the leftmost success.
	g := compile(t, `a = 'a' | 'ab';`)
	tree, ok := Recognize(g, "a", "a", nil)
	if !ok {
		t.Fatal("expected acceptance")
	}
	leaf := tree.(NonterminalNode).Children[0].(TerminalNode)
	if leaf.Literal != "a" {
		t.Fatalf("expected the first matching branch to win, got: %q", leaf.Literal)
	}
}

func TestRecognize_Optional(t *testing.T) {
	g := compile(t, `a = ['x'], 'y';`)
	if _, ok := Recognize(g, "a", "y", nil); !ok {
		t.Fatal("expected acceptance without the optional part")
	}
	if _, ok := Recognize(g, "a", "xy", nil); !ok {
		t.Fatal("expected acceptance with the optional part present")
	}
}

func TestRecognize_Factor(t *testing.T) {
	g := compile(t, `a = 3 * 'x';`)
	if _, ok := Recognize(g, "a", "xxx", nil); !ok {
		t.Fatal("expected acceptance of exactly 3 repetitions")
	}
	if _, ok := Recognize(g, "a", "xx", nil); ok {
		t.Fatal("expected rejection: too few repetitions")
	}
	if _, ok := Recognize(g, "a", "xxxx", nil); ok {
		t.Fatal("expected rejection: trailing input after exactly 3 repetitions")
	}
}

func TestRecognize_Exception(t *testing.T) {
	// subject matches any single digit, restriction excludes '0'.
	g := compile(t, `
		a    = digit - zero;
		digit = '0' | '1' | '2';
		zero  = '0';
	`)
	if _, ok := Recognize(g, "a", "1", nil); !ok {
		t.Fatal("expected acceptance: digit not excluded by the restriction")
	}
	if _, ok := Recognize(g, "a", "0", nil); ok {
		t.Fatal("expected rejection: the restriction fully matches the excluded digit")
	}
}

func TestRecognize_ExceptionPartialRestrictionMatchDoesNotTrigger(t *testing.T) {
	// restriction "0" only partially consumes the two-character subject
	// match "01", so per spec.md §9 the exception does not trigger.
	g := compile(t, `
		a    = pair - zero;
		pair = '0', '1';
		zero = '0';
	`)
	if _, ok := Recognize(g, "a", "01", nil); !ok {
		t.Fatal("expected acceptance: partial restriction match must not trigger the exception")
	}
}

func TestRecognize_Special_AlwaysFails(t *testing.T) {
	g := compile(t, `a = ?anything?;`)
	if _, ok := Recognize(g, "a", "", nil); ok {
		t.Fatal("expected rejection: Special is always opaque and fails")
	}
}

func TestRecognize_UndefinedStartRule(t *testing.T) {
	g := compile(t, `a = 'x';`)
	if _, ok := Recognize(g, "nope", "x", nil); ok {
		t.Fatal("expected rejection for an undefined start rule")
	}
}

func TestRecognize_Tracer(t *testing.T) {
	g := compile(t, `a = b; b = 'x';`)

	var entered, left []string
	tracer := recordingTracer{
		enter: func(name, _ string) { entered = append(entered, name) },
		leave: func(name, _ string, _ bool) { left = append(left, name) },
	}

	if _, ok := Recognize(g, "a", "x", tracer); !ok {
		t.Fatal("expected acceptance")
	}
	if len(entered) != 2 || entered[0] != "a" || entered[1] != "b" {
		t.Fatalf("unexpected enter trace: %v", entered)
	}
	if len(left) != 2 || left[0] != "b" || left[1] != "a" {
		t.Fatalf("unexpected leave trace: %v", left)
	}
}

type recordingTracer struct {
	enter func(name, remaining string)
	leave func(name, remaining string, ok bool)
}

func (r recordingTracer) OnEnter(name, remaining string)          { r.enter(name, remaining) }
func (r recordingTracer) OnLeave(name, remaining string, ok bool) { r.leave(name, remaining, ok) }
