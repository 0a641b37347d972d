// Package ebnf is the library's front door (spec.md §6): Prepare turns
// EBNF source text into a validated, ready-to-use Grammar; Recognize
// drives that grammar's interpreter against an input string.
package ebnf

import (
	"github.com/bellinitte/parser-parser/ast"
	"github.com/bellinitte/parser-parser/canon"
	"github.com/bellinitte/parser-parser/lexer"
	"github.com/bellinitte/parser-parser/parser"
	"github.com/bellinitte/parser-parser/preprocess"
	"github.com/bellinitte/parser-parser/recognize"
	"github.com/bellinitte/parser-parser/scanner"
)

// Tree is the parse tree recognize produces: a NonterminalNode rooted at
// whatever start rule was recognized against, or a TerminalNode for a
// leaf. Renders per the embedding convention of spec.md §6: a
// NonterminalNode as {name, children}, a TerminalNode as {name: "\"" +
// literal + "\""}.
type Tree = recognize.Node

// Grammar is a fully scanned, lexed, parsed and validated EBNF grammar,
// ready to recognize input against any of its rules.
type Grammar struct {
	syntax   *ast.Grammar
	compiled canon.Grammar
	warnings []preprocess.Warning
}

// Prepare runs the full pipeline over source — scan, lex, parse, then
// validate — and compiles the result into a Grammar. The first error
// from any stage is returned; there is no partial Grammar on failure.
func Prepare(source string) (*Grammar, error) {
	graphemes := scanner.Scan(source)

	tokens, err := lexer.Lex(graphemes)
	if err != nil {
		return nil, err
	}

	syntax, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}

	warnings, err := preprocess.Validate(syntax)
	if err != nil {
		return nil, err
	}

	return &Grammar{
		syntax:   syntax,
		compiled: canon.Compile(syntax),
		warnings: warnings,
	}, nil
}

// ProductionNames returns the grammar's production names in source order,
// including duplicates if a name is defined more than once.
func (g *Grammar) ProductionNames() []string {
	return g.syntax.ProductionNames()
}

// Warnings returns the non-fatal findings Prepare collected, such as
// redefined rule names (spec.md §9).
func (g *Grammar) Warnings() []preprocess.Warning {
	return g.warnings
}

// Recognize attempts to match input against start's rule, consuming it
// entirely. tracer may be nil.
func (g *Grammar) Recognize(start, input string, tracer recognize.Tracer) (Tree, bool) {
	return recognize.Recognize(g.compiled, start, input, tracer)
}
