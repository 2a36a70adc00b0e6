package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/chroma/v2"
)

func newTestHighlighter(t *testing.T, contents string) *LineHighlighter {
	t.Helper()
	style, err := chroma.NewStyle("test", chroma.StyleEntries{})
	require.NoError(t, err)
	hl, err := NewLineHighlighter(LexerFor("Go"), style, NoColor, contents)
	require.NoError(t, err)
	return hl
}

func TestLineHighlighterSplitsLines(t *testing.T) {
	hl := newTestHighlighter(t, "package a\n\nvar x = 1\n")
	require.Equal(t, 4, hl.NumLines(), "trailing newline opens a final empty line")
}

func TestLineHighlighterLineTextRoundTrips(t *testing.T) {
	src := "package a\nvar x = 1\n"
	hl := newTestHighlighter(t, src)

	line1 := ""
	for _, tok := range hl.Highlight() {
		line1 += tok.Text
	}
	require.Equal(t, "package a", line1, "tokens carry line content without the newline")

	line2 := ""
	for _, tok := range hl.Highlight() {
		line2 += tok.Text
	}
	require.Equal(t, "var x = 1", line2)
}

func TestLineHighlighterSkipAdvancesCursor(t *testing.T) {
	hl := newTestHighlighter(t, "package a\nvar x = 1\n")
	hl.SkipLine()

	line2 := ""
	for _, tok := range hl.Highlight() {
		line2 += tok.Text
	}
	require.Equal(t, "var x = 1", line2)
}

func TestLineHighlighterPanicsPastEnd(t *testing.T) {
	hl := newTestHighlighter(t, "x\n")
	hl.SkipLine()
	hl.SkipLine()
	require.Panics(t, func() { hl.SkipLine() })
}
