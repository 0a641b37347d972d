// Package parser implements the recursive-descent parser of spec.md §4.4:
// tokens in, a spanned ast.Grammar out. Ordered choice at every
// alternation point has a disjoint FIRST set (the lexer has already
// disambiguated every multi-character punctuation form), so no
// backtracking is ever needed — each choice is a plain switch on the next
// token's kind. "Commit points" are therefore simply every expect() call
// made once a construct has been entered: a mismatch panics with the
// relevant spanned error instead of returning a triable failure, exactly
// as spec/grammar/parser/parser.go's raiseSyntaxError does for vartan's
// own grammar language.
package parser

import (
	"github.com/bellinitte/parser-parser/ast"
	"github.com/bellinitte/parser-parser/ebnferr"
	"github.com/bellinitte/parser-parser/position"
	"github.com/bellinitte/parser-parser/token"
)

// Parse consumes a token stream (terminated by a token.EOF token, as
// lexer.Lex produces) and returns the grammar it denotes, or the first
// syntax error encountered.
func Parse(tokens []position.Spanned[token.Token]) (g *ast.Grammar, err error) {
	p := &parser{
		toks:     tokens,
		lastSpan: position.NewSpan(position.NewLocation(), position.NewLocation()),
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(*ebnferr.Error); ok {
			g, err = nil, e
			return
		}
		panic(r)
	}()
	g = p.parseSyntax()
	return g, nil
}

type parser struct {
	toks     []position.Spanned[token.Token]
	i        int
	lastSpan position.Span
}

func (p *parser) peekKind() token.Kind { return p.toks[p.i].Value.Kind }
func (p *parser) peekSpan() position.Span { return p.toks[p.i].Span }

func (p *parser) advance() position.Spanned[token.Token] {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	p.lastSpan = t.Span
	return t
}

// errorSpan attributes a failure to the current token, or, at end of
// input, to the last successfully consumed token's span (spec.md §4.4).
func (p *parser) errorSpan() position.Span {
	if p.peekKind() == token.EOF {
		return p.lastSpan
	}
	return p.peekSpan()
}

// expect is every commit point in this grammar: once we are past a
// construct's opener, every subsequent piece is mandatory.
func (p *parser) expect(kind token.Kind, err error) position.Spanned[token.Token] {
	if p.peekKind() == kind {
		return p.advance()
	}
	panic(ebnferr.New(err, p.errorSpan()))
}

// syntax := production+
func (p *parser) parseSyntax() *ast.Grammar {
	var prods []*ast.Production
	prods = append(prods, p.parseProduction())
	for p.peekKind() == token.Nonterminal {
		prods = append(prods, p.parseProduction())
	}
	if p.peekKind() != token.EOF {
		panic(ebnferr.New(ebnferr.ErrIdentifierExpected, p.errorSpan()))
	}
	return &ast.Grammar{Productions: prods}
}

// production := identifier '=' alternative terminator
func (p *parser) parseProduction() *ast.Production {
	nameTok := p.expect(token.Nonterminal, ebnferr.ErrIdentifierExpected)
	name := nameTok.Value.Text
	nameSpan := nameTok.Span

	p.expect(token.Definition, ebnferr.ErrDefinitionSymbolExpected)
	rhs := p.parseAlternative()
	termTok := p.expect(token.Terminator, ebnferr.ErrTerminatorSymbolExpected)

	return ast.NewProduction(name, nameSpan, rhs, position.Combine(nameSpan, termTok.Span))
}

// alternative := sequence ( separator sequence )*
func (p *parser) parseAlternative() ast.Expression {
	items := []ast.Expression{p.parseSequence()}
	for p.peekKind() == token.DefinitionSeparator {
		p.advance()
		items = append(items, p.parseSequence())
	}
	return buildAlternative(items)
}

// sequence := term ( ',' term )*
func (p *parser) parseSequence() ast.Expression {
	items := []ast.Expression{p.parseTerm()}
	for p.peekKind() == token.Concatenation {
		p.advance()
		items = append(items, p.parseTerm())
	}
	return buildSequence(items)
}

// term := factor ( '-' factor )?
func (p *parser) parseTerm() ast.Expression {
	first := p.parseFactor()
	if p.peekKind() != token.Exception {
		return first
	}
	p.advance()
	second := p.parseFactor()
	return ast.NewException(first, second, position.Combine(first.Span(), second.Span()))
}

// factor := ( integer '*' )? primary
//
// Canonicalizes 0*X to Empty and 1*X to X, so the recognizer never sees a
// Factor with count 0 or 1 (spec.md §3, §4.4).
func (p *parser) parseFactor() ast.Expression {
	if p.peekKind() != token.Integer {
		return p.parsePrimary()
	}
	countTok := p.advance()
	p.expect(token.Repetition, ebnferr.ErrRepetitionSymbolExpected)
	primary := p.parsePrimary()

	span := position.Combine(countTok.Span, primary.Span())
	switch countTok.Value.Value {
	case 0:
		return ast.NewEmpty(span)
	case 1:
		return primary
	default:
		return ast.NewFactor(countTok.Value.Value, primary, span)
	}
}

// primary := optional | repeated | grouped | nonterminal
//          | terminal | special | empty
//
// Each branch's leading token is disjoint, so this is a direct dispatch
// rather than a backtracking trial.
func (p *parser) parsePrimary() ast.Expression {
	switch p.peekKind() {
	case token.StartOption:
		return p.parseOptional()
	case token.StartRepeat:
		return p.parseRepeated()
	case token.StartGroup:
		return p.parseGrouped()
	case token.Nonterminal:
		t := p.advance()
		return ast.NewNonterminal(t.Value.Text, t.Span)
	case token.Terminal:
		t := p.advance()
		return ast.NewTerminal(t.Value.Text, t.Span)
	case token.Special:
		t := p.advance()
		return ast.NewSpecial(t.Value.Text, t.Span)
	default:
		return p.parseEmpty()
	}
}

// empty := ε, spanning the gap between the last consumed token and the
// next one (spec.md §4.4).
func (p *parser) parseEmpty() ast.Expression {
	return ast.NewEmpty(position.Between(p.lastSpan, p.peekSpan()))
}

// optional := '[' alternative ']' (close committed)
func (p *parser) parseOptional() ast.Expression {
	open := p.advance()
	inner := p.parseAlternative()
	close := p.expect(token.EndOption, ebnferr.ErrEndOptionSymbolExpected)
	return ast.NewOptional(inner, position.Combine(open.Span, close.Span))
}

// repeated := '{' alternative '}' (close committed)
func (p *parser) parseRepeated() ast.Expression {
	open := p.advance()
	inner := p.parseAlternative()
	close := p.expect(token.EndRepeat, ebnferr.ErrEndRepeatSymbolExpected)
	return ast.NewRepeated(inner, position.Combine(open.Span, close.Span))
}

// grouped := '(' alternative ')' (close committed)
//
// Grouping introduces no AST node of its own (spec.md §3 has no Group
// variant) — it is purely a precedence marker, so the inner alternative's
// own span is returned unchanged.
func (p *parser) parseGrouped() ast.Expression {
	p.advance()
	inner := p.parseAlternative()
	p.expect(token.EndGroup, ebnferr.ErrEndGroupSymbolExpected)
	return inner
}

// buildSequence and buildAlternative implement the flattening rule of
// spec.md §4.4: a one-element list collapses to its single element
// instead of constructing a one-operand Alternative/Sequence node.

func buildSequence(items []ast.Expression) ast.Expression {
	if len(items) == 1 {
		return items[0]
	}
	span := position.Combine(items[0].Span(), items[len(items)-1].Span())
	return ast.NewSequence(items[0], items[1], items[2:], span)
}

func buildAlternative(items []ast.Expression) ast.Expression {
	if len(items) == 1 {
		return items[0]
	}
	span := position.Combine(items[0].Span(), items[len(items)-1].Span())
	return ast.NewAlternative(items[0], items[1], items[2:], span)
}
