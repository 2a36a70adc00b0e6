package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetColorEncodings(t *testing.T) {
	tests := []struct {
		name      string
		slot      int
		color     Color
		trueColor bool
		want      string
	}{
		{"ansi16 fg", slotFg, Ansi16Color(3), true, "\x1b[33m"},
		{"ansi16 bg", slotBg, Ansi16Color(1), true, "\x1b[41m"},
		{"ansi256 fg", slotFg, Color{R: 100, A: 0}, true, "\x1b[38;5;100m"},
		{"ansi256 bg", slotBg, Color{R: 200, A: 0}, true, "\x1b[48;5;200m"},
		{"passthrough resets", slotFg, NoColor, true, "\x1b[0m"},
		{"truecolor fg", slotFg, Opaque(1, 2, 3), true, "\x1b[38;2;1;2;3m"},
		{"truecolor bg", slotBg, Opaque(10, 20, 30), true, "\x1b[48;2;10;20;30m"},
		{"quantized fg without truecolor", slotFg, Opaque(255, 0, 0), false, "\x1b[38;5;196m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewCanvas(&buf, tt.trueColor, false)
			require.NoError(t, c.SetColor(tt.slot, tt.color))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSetColorElidesRedundantSequences(t *testing.T) {
	var buf bytes.Buffer
	c := NewCanvas(&buf, true, false)

	col := Opaque(1, 2, 3)
	require.NoError(t, c.SetColor(slotFg, col))
	require.NoError(t, c.SetColor(slotFg, col))
	require.Equal(t, "\x1b[38;2;1;2;3m", buf.String(), "identical successive fg colors emit one escape")

	require.NoError(t, c.SetColor(slotBg, col))
	require.Equal(t, "\x1b[38;2;1;2;3m\x1b[48;2;1;2;3m", buf.String(), "fg cache doesn't satisfy bg")
}

func TestDrawNewlineResetsAndInvalidates(t *testing.T) {
	var buf bytes.Buffer
	c := NewCanvas(&buf, true, false)

	col := Opaque(9, 9, 9)
	require.NoError(t, c.SetColor(slotFg, col))
	require.NoError(t, c.DrawNewline())
	require.NoError(t, c.SetColor(slotFg, col))

	require.Equal(t, "\x1b[38;2;9;9;9m\x1b[0m\n\x1b[38;2;9;9;9m", buf.String())
}

func TestPassthroughInvalidatesBothSlots(t *testing.T) {
	var buf bytes.Buffer
	c := NewCanvas(&buf, true, false)

	fg := Opaque(1, 1, 1)
	require.NoError(t, c.SetColor(slotFg, fg))
	// The full reset emitted for a pass-through bg clears the fg too, so
	// re-setting the same fg must emit again.
	require.NoError(t, c.SetColor(slotBg, NoColor))
	require.NoError(t, c.SetColor(slotFg, fg))

	require.Equal(t, "\x1b[38;2;1;1;1m\x1b[0m\x1b[38;2;1;1;1m", buf.String())
}

func TestFillSpaces(t *testing.T) {
	var buf bytes.Buffer
	c := NewCanvas(&buf, true, false)

	require.NoError(t, c.FillSpaces(2, 5))
	require.Equal(t, "   ", buf.String())

	buf.Reset()
	require.NoError(t, c.FillSpaces(5, 5))
	require.Empty(t, buf.String(), "no-op when already at max width")

	require.NoError(t, c.FillSpaces(9, 5))
	require.Empty(t, buf.String(), "no-op when past max width")
}

func TestFontStyleEscapes(t *testing.T) {
	var buf bytes.Buffer
	c := NewCanvas(&buf, true, false)
	require.NoError(t, c.SetBold())
	require.NoError(t, c.UnsetBold())
	require.NoError(t, c.SetUnderline())
	require.NoError(t, c.UnsetUnderline())
	require.Equal(t, "\x1b[1m\x1b[22m\x1b[4m\x1b[24m", buf.String())
}

func TestVisualWidthTreatsCJKAndAmbiguousAsWide(t *testing.T) {
	require.Equal(t, 1, visualWidth('a'))
	require.Equal(t, 2, visualWidth('漢'))
	require.Equal(t, 2, visualWidth('§'), "ambiguous-width characters count as wide")
}
