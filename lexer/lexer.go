// Package lexer folds a spanned grapheme stream into a token stream
// (spec.md §4.3): whitespace skipping, nested comments, the
// longest-match punctuation table, quoted terminal literals, opaque
// special sequences, and run-together integers/identifiers.
//
// The control-flow shape — a cursor over a slice with a peek/restore-style
// lookahead and a switch dispatching on the current input — follows
// grammar/lexical/parser/lexer.go in the teacher repo, adapted from
// single-rune reads to single-grapheme reads and from a stream Reader to
// random-access indexing into the scanner's already-materialized slice.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bellinitte/parser-parser/ebnferr"
	"github.com/bellinitte/parser-parser/position"
	"github.com/bellinitte/parser-parser/token"
)

// Lex consumes a spanned grapheme stream and returns the spanned token
// stream it denotes, terminated by a token.EOF token, or the first
// lexical error encountered.
func Lex(graphemes []position.Spanned[string]) ([]position.Spanned[token.Token], error) {
	l := &lexer{g: graphemes}
	return l.run()
}

type lexer struct {
	g []position.Spanned[string]
	i int
}

func (l *lexer) atEnd() bool { return l.i >= len(l.g) }

func (l *lexer) cur() position.Spanned[string] { return l.g[l.i] }

func (l *lexer) advance() position.Spanned[string] {
	g := l.g[l.i]
	l.i++
	return g
}

// endLocation is the Location just past the last grapheme in the stream —
// used for the EOF token's own (zero-width) span.
func (l *lexer) endLocation() position.Location {
	if len(l.g) == 0 {
		return position.NewLocation()
	}
	return l.g[len(l.g)-1].Span.To
}

// lastSpan is the full span of the last grapheme scanned — used for
// errors only discovered at end of input (UnterminatedComment,
// UnterminatedTerminal, UnterminatedSpecial), per spec.md §4.3's "span of
// the last grapheme scanned" rather than a collapsed end-of-input point.
func (l *lexer) lastSpan() position.Span {
	if len(l.g) == 0 {
		end := position.NewLocation()
		return position.NewSpan(end, end)
	}
	return l.g[len(l.g)-1].Span
}

func (l *lexer) run() ([]position.Spanned[token.Token], error) {
	var out []position.Spanned[token.Token]
	for {
		l.skipWhitespace()
		if l.atEnd() {
			end := l.endLocation()
			out = append(out, position.New(token.Token{Kind: token.EOF}, position.NewSpan(end, end)))
			return out, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			// A comment was consumed; no token produced.
			continue
		}
		out = append(out, *tok)
	}
}

func (l *lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.cur().Value) {
		l.advance()
	}
}

// next lexes exactly one token (or one comment, reported as a nil token)
// starting at the current grapheme, which is guaranteed not to be
// whitespace and not to be end of input.
func (l *lexer) next() (*position.Spanned[token.Token], error) {
	c := l.cur()

	switch c.Value {
	case "(":
		return l.lexParenLead()
	case "/":
		return l.lexSlashLead()
	case ":":
		return l.lexColonLead()
	case ")":
		l.advance()
		return single(token.EndGroup, c.Span), nil
	case "[":
		l.advance()
		return single(token.StartOption, c.Span), nil
	case "]":
		l.advance()
		return single(token.EndOption, c.Span), nil
	case "{":
		l.advance()
		return single(token.StartRepeat, c.Span), nil
	case "}":
		l.advance()
		return single(token.EndRepeat, c.Span), nil
	case ",":
		l.advance()
		return single(token.Concatenation, c.Span), nil
	case "=":
		l.advance()
		return single(token.Definition, c.Span), nil
	case "|", "!":
		l.advance()
		return single(token.DefinitionSeparator, c.Span), nil
	case "-":
		l.advance()
		return single(token.Exception, c.Span), nil
	case "*":
		l.advance()
		return single(token.Repetition, c.Span), nil
	case ";", ".":
		l.advance()
		return single(token.Terminator, c.Span), nil
	case "'", "\"":
		return l.lexTerminal(c.Value)
	case "?":
		return l.lexSpecial()
	}

	if isDigit(c.Value) {
		return l.lexInteger()
	}
	if isLeadingIdentChar(c.Value) {
		return l.lexIdentifier()
	}

	l.advance()
	return nil, ebnferr.New(&ebnferr.InvalidSymbolError{Text: c.Value}, c.Span)
}

func single(kind token.Kind, span position.Span) *position.Spanned[token.Token] {
	sp := position.New(token.Token{Kind: kind}, span)
	return &sp
}

// lexParenLead disambiguates '(', longest match first: "(*" (comment, or
// the degenerate "(*)"), "(/" (StartOption, or the degenerate "(/)"), "(:"
// (StartRepeat, or the degenerate "(:)"), else a bare StartGroup.
func (l *lexer) lexParenLead() (*position.Spanned[token.Token], error) {
	open := l.advance() // '('
	if l.atEnd() {
		return single(token.StartGroup, open.Span), nil
	}
	second := l.cur()
	switch second.Value {
	case "*":
		l.advance()
		if !l.atEnd() && l.cur().Value == ")" {
			close := l.advance()
			span := position.Combine(open.Span, close.Span)
			return nil, ebnferr.New(&ebnferr.InvalidSymbolError{Text: "(*)"}, span)
		}
		if err := l.skipComment(); err != nil {
			return nil, err
		}
		return nil, nil
	case "/":
		l.advance()
		if !l.atEnd() && l.cur().Value == ")" {
			close := l.advance()
			span := position.Combine(open.Span, close.Span)
			return nil, ebnferr.New(&ebnferr.InvalidSymbolError{Text: "(/)"}, span)
		}
		return single(token.StartOption, position.Combine(open.Span, second.Span)), nil
	case ":":
		l.advance()
		if !l.atEnd() && l.cur().Value == ")" {
			close := l.advance()
			span := position.Combine(open.Span, close.Span)
			return nil, ebnferr.New(&ebnferr.InvalidSymbolError{Text: "(:)"}, span)
		}
		return single(token.StartRepeat, position.Combine(open.Span, second.Span)), nil
	default:
		return single(token.StartGroup, open.Span), nil
	}
}

// lexSlashLead handles "/)" (EndOption) vs. a bare "/" (DefinitionSeparator).
func (l *lexer) lexSlashLead() (*position.Spanned[token.Token], error) {
	open := l.advance() // '/'
	if !l.atEnd() && l.cur().Value == ")" {
		close := l.advance()
		return single(token.EndOption, position.Combine(open.Span, close.Span)), nil
	}
	return single(token.DefinitionSeparator, open.Span), nil
}

// lexColonLead handles ":)" (EndRepeat) vs. a bare ":" (InvalidSymbol).
func (l *lexer) lexColonLead() (*position.Spanned[token.Token], error) {
	open := l.advance() // ':'
	if !l.atEnd() && l.cur().Value == ")" {
		close := l.advance()
		return single(token.EndRepeat, position.Combine(open.Span, close.Span)), nil
	}
	return nil, ebnferr.New(&ebnferr.InvalidSymbolError{Text: ":"}, open.Span)
}

// skipComment consumes a nested (* ... *) comment whose opener has
// already been consumed by the caller. Comments nest to unbounded depth;
// the bodies are discarded entirely.
func (l *lexer) skipComment() error {
	depth := 1
	for depth > 0 {
		if l.atEnd() {
			return ebnferr.New(ebnferr.ErrUnterminatedComment, l.lastSpan())
		}
		c := l.advance()
		switch c.Value {
		case "(":
			if !l.atEnd() && l.cur().Value == "*" {
				l.advance()
				depth++
			}
		case "*":
			if !l.atEnd() && l.cur().Value == ")" {
				l.advance()
				depth--
			}
		}
	}
	return nil
}

// lexTerminal reads a quoted terminal literal. quote is the opening
// grapheme ("'" or "\""); the matching close is the same grapheme. The
// opposite quote character is permitted inside the body unescaped.
func (l *lexer) lexTerminal(quote string) (*position.Spanned[token.Token], error) {
	open := l.advance()
	var body strings.Builder
	for {
		if l.atEnd() {
			return nil, ebnferr.New(ebnferr.ErrUnterminatedTerminal, l.lastSpan())
		}
		g := l.advance()
		if g.Value == quote {
			span := position.Combine(open.Span, g.Span)
			if body.Len() == 0 {
				return nil, ebnferr.New(ebnferr.ErrEmptyTerminal, span)
			}
			tok := position.New(token.Token{Kind: token.Terminal, Text: body.String()}, span)
			return &tok, nil
		}
		body.WriteString(g.Value)
	}
}

// lexSpecial reads a ?...? special sequence. The body is every grapheme up
// to the next "?", which always closes it — a "?" inside the body is not
// re-escaped or re-interpreted.
func (l *lexer) lexSpecial() (*position.Spanned[token.Token], error) {
	open := l.advance()
	var body strings.Builder
	for {
		if l.atEnd() {
			return nil, ebnferr.New(ebnferr.ErrUnterminatedSpecial, l.lastSpan())
		}
		g := l.advance()
		if g.Value == "?" {
			span := position.Combine(open.Span, g.Span)
			tok := position.New(token.Token{Kind: token.Special, Text: body.String()}, span)
			return &tok, nil
		}
		body.WriteString(g.Value)
	}
}

// lexInteger reads a run of decimal digits. Whitespace embedded inside the
// run is skipped and the run continues through further digits, so "1 2 3"
// lexes as the single integer 123 with a span covering the whole run
// (spec.md §4.3).
func (l *lexer) lexInteger() (*position.Spanned[token.Token], error) {
	first := l.advance()
	var value uint64
	value = uint64(digitValue(first.Value))
	lastSpan := first.Span

	for {
		j, ok := l.peekSignificant()
		if !ok || !isDigit(l.g[j].Value) {
			break
		}
		value = value*10 + uint64(digitValue(l.g[j].Value))
		lastSpan = l.g[j].Span
		l.i = j + 1
	}

	span := position.Combine(first.Span, lastSpan)
	tok := position.New(token.Token{Kind: token.Integer, Value: value}, span)
	return &tok, nil
}

// lexIdentifier reads a Unicode-alphabetic leading character followed by
// alphanumerics, with the same embedded-whitespace continuation rule as
// lexInteger. The emitted span covers from the first letter to the last
// alphanumeric grapheme; trailing whitespace is not included.
func (l *lexer) lexIdentifier() (*position.Spanned[token.Token], error) {
	first := l.advance()
	var name strings.Builder
	name.WriteString(first.Value)
	lastSpan := first.Span

	for {
		j, ok := l.peekSignificant()
		if !ok || !isIdentContinue(l.g[j].Value) {
			break
		}
		name.WriteString(l.g[j].Value)
		lastSpan = l.g[j].Span
		l.i = j + 1
	}

	span := position.Combine(first.Span, lastSpan)
	tok := position.New(token.Token{Kind: token.Nonterminal, Text: name.String()}, span)
	return &tok, nil
}

// peekSignificant returns the index of the next non-whitespace grapheme
// from the current position, without consuming anything. If none remains,
// ok is false. Whitespace graphemes skipped this way are only actually
// consumed by the caller if it decides the run continues; otherwise they
// are left for the normal top-level whitespace skip.
func (l *lexer) peekSignificant() (int, bool) {
	j := l.i
	for j < len(l.g) && isWhitespace(l.g[j].Value) {
		j++
	}
	if j >= len(l.g) {
		return 0, false
	}
	return j, true
}

func firstRune(g string) rune {
	r, _ := utf8.DecodeRuneInString(g)
	return r
}

func isWhitespace(g string) bool {
	return unicode.IsSpace(firstRune(g))
}

func isDigit(g string) bool {
	r := firstRune(g)
	return r >= '0' && r <= '9' && utf8.RuneLen(r) == len(g)
}

func digitValue(g string) int {
	return int(firstRune(g) - '0')
}

func isLeadingIdentChar(g string) bool {
	return unicode.IsLetter(firstRune(g))
}

func isIdentContinue(g string) bool {
	r := firstRune(g)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
