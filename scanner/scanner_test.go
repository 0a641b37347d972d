package scanner

import (
	"strings"
	"testing"

	"github.com/bellinitte/parser-parser/position"
)

func TestScan(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    []string
	}{
		{
			caption: "empty input produces no graphemes",
			src:     "",
			want:    nil,
		},
		{
			caption: "plain ASCII, one grapheme per rune",
			src:     "ab",
			want:    []string{"a", "b"},
		},
		{
			caption: "a combining acute accent is one grapheme with its base letter",
			src:     "éf",
			want:    []string{"é", "f"},
		},
		{
			caption: "\\r\\n is a single grapheme",
			src:     "a\r\nb",
			want:    []string{"a", "\r\n", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			got := Scan(tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("unexpected grapheme count; want: %v, got: %v", tt.want, got)
			}
			for i, g := range got {
				if g.Value != tt.want[i] {
					t.Fatalf("unexpected grapheme %d; want: %q, got: %q", i, tt.want[i], g.Value)
				}
			}
		})
	}
}

func TestScan_CoversInputExactly(t *testing.T) {
	src := "hello, wörld\r\n"
	got := Scan(src)
	var rebuilt strings.Builder
	for _, g := range got {
		rebuilt.WriteString(g.Value)
	}
	if rebuilt.String() != src {
		t.Fatalf("graphemes do not reconstruct input; want: %q, got: %q", src, rebuilt.String())
	}
}

func TestScan_ColumnAdvancesByCodePointCount(t *testing.T) {
	// "aéf" where é is e + U+0301 (combining acute): a multi-code-point
	// grapheme advances the column by its code point count, not by one
	// (spec.md §8's worked example).
	got := Scan("a" + "é" + "f")
	want := []position.Location{
		{Line: 0, Column: 0},
		{Line: 0, Column: 1},
		{Line: 0, Column: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected grapheme count: %d", len(got))
	}
	for i, g := range got {
		if g.Span.From != want[i] {
			t.Fatalf("unexpected start location for grapheme %d; want: %v, got: %v", i, want[i], g.Span.From)
		}
	}
}

func TestScan_LineBreakResetsColumn(t *testing.T) {
	got := Scan("ab\ncd")
	if len(got) != 5 {
		t.Fatalf("unexpected grapheme count: %d", len(got))
	}
	last := got[4]
	if last.Span.From.Line != 1 || last.Span.From.Column != 1 {
		t.Fatalf("unexpected location after line break: %v", last.Span.From)
	}
}
