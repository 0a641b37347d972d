// Package scanner implements the first stage of the pipeline (spec.md
// §4.2): splitting source text into Unicode extended grapheme clusters,
// each stamped with the Span it occupies.
package scanner

import (
	"bufio"
	"strings"

	"github.com/bellinitte/parser-parser/position"
	"github.com/clipperhouse/uax29/v2/graphemes"
)

// Scan splits input into an ordered sequence of spanned grapheme clusters
// covering the input exactly. It never fails: any grapheme, including bare
// control characters, is accepted and left for the lexer to classify
// (spec.md §4.2).
func Scan(input string) []position.Spanned[string] {
	var out []position.Spanned[string]

	loc := position.NewLocation()
	s := bufio.NewScanner(strings.NewReader(input))
	s.Split(graphemes.SplitFunc)
	// The default bufio.Scanner buffer is 64KiB per token; a grapheme
	// cluster never approaches that, but grow the buffer generously so a
	// pathological run of combining marks never truncates silently.
	s.Buffer(make([]byte, 0, 4096), 1<<20)

	for s.Scan() {
		g := s.Text()
		from := loc
		advance, isBreak := lineBreakWidth(g)
		if isBreak {
			loc.Line++
			loc.Column = 0
		} else {
			loc.Column += advance
		}
		out = append(out, position.New(g, position.NewSpan(from, loc)))
	}

	return out
}

// lineBreakWidth reports whether g is one of the three recognized line
// terminator graphemes (spec.md §4.2: "\n", "\r", or "\r\n" as a single
// grapheme) and, if not, how many code points g spans.
func lineBreakWidth(g string) (codePoints int, isLineBreak bool) {
	switch g {
	case "\n", "\r", "\r\n":
		return 0, true
	}
	n := 0
	for range g {
		n++
	}
	return n, false
}
