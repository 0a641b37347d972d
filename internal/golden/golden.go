// Package golden is a small tree-diff test harness used by this
// repository's end-to-end tests to assert the exact shape of a parse
// tree against a literal expectation, adapted from
// nihei9/vartan's spec/test/parser.go Tree/DiffTree pair and
// tester/tester.go's diff reporting. Unlike the teacher, test cases are
// plain Go literals built with NonTerminal/Terminal rather than parsed
// from a textual fixture format — there is no need to round-trip through
// a DSL for a fixed, small set of scenarios.
package golden

import (
	"fmt"

	"github.com/bellinitte/parser-parser/recognize"
)

// Tree is an expected (or, via FromNode, actual) parse tree shape. A
// nonterminal tree has a non-empty Kind and zero or more Children; a
// terminal leaf has an empty Kind and a Lexeme.
type Tree struct {
	Kind     string
	Lexeme   string
	Children []*Tree
}

// NonTerminal builds the expected shape of a recognize.NonterminalNode.
func NonTerminal(name string, children ...*Tree) *Tree {
	return &Tree{Kind: name, Children: children}
}

// Terminal builds the expected shape of a recognize.TerminalNode.
func Terminal(literal string) *Tree {
	return &Tree{Lexeme: literal}
}

// FromNode converts an actual recognizer result into the same shape, so
// it can be compared against a literal Tree with DiffTree.
func FromNode(n recognize.Node) *Tree {
	switch v := n.(type) {
	case recognize.NonterminalNode:
		children := make([]*Tree, len(v.Children))
		for i, c := range v.Children {
			children[i] = FromNode(c)
		}
		return &Tree{Kind: v.Name, Children: children}
	case recognize.TerminalNode:
		return &Tree{Lexeme: v.Literal}
	default:
		return nil
	}
}

// Diff is a single mismatch between an expected and an actual tree, path
// identifying where in the tree it occurred (teacher: TreeDiff's
// ExpectedPath/ActualPath, collapsed into one path since expected and
// actual are walked in lockstep here).
type Diff struct {
	Path    string
	Message string
}

// DiffTree reports every mismatch between expected and actual. An empty
// result means the trees are identical.
func DiffTree(expected, actual *Tree) []Diff {
	return diffAt("root", expected, actual)
}

func diffAt(path string, expected, actual *Tree) []Diff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected == nil || actual == nil {
		return []Diff{{Path: path, Message: fmt.Sprintf("expected %s but got %s", describe(expected), describe(actual))}}
	}
	if expected.Kind != actual.Kind {
		return []Diff{{Path: path, Message: fmt.Sprintf("unexpected kind: expected %q but got %q", expected.Kind, actual.Kind)}}
	}
	if expected.Lexeme != actual.Lexeme {
		return []Diff{{Path: path, Message: fmt.Sprintf("unexpected lexeme: expected %q but got %q", expected.Lexeme, actual.Lexeme)}}
	}
	if len(expected.Children) != len(actual.Children) {
		return []Diff{{Path: path, Message: fmt.Sprintf("unexpected child count: expected %d but got %d", len(expected.Children), len(actual.Children))}}
	}
	var diffs []Diff
	for i, exp := range expected.Children {
		childPath := fmt.Sprintf("%s.[%d]%s", path, i, exp.Kind)
		diffs = append(diffs, diffAt(childPath, exp, actual.Children[i])...)
	}
	return diffs
}

func describe(t *Tree) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == "" {
		return fmt.Sprintf("terminal %q", t.Lexeme)
	}
	return fmt.Sprintf("nonterminal %q", t.Kind)
}
