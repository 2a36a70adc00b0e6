// canvas.go is the thin stateful ANSI emitter: SGR-escape emission over
// an io.Writer with redundant-color elision and explicit error
// propagation on every write.
package render

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

const (
	slotFg = 30
	slotBg = 40
)

// Canvas is a stateful ANSI emitter over one writer, tracking the last
// color set on each slot so identical successive SGR sequences are
// elided.
type Canvas struct {
	w          io.Writer
	trueColor  bool
	lastFg     *Color
	lastBg     *Color
	background bool // has_background: palette isn't ANSI16 and background painting is enabled
}

// NewCanvas constructs a Canvas. trueColor selects 24-bit SGR forms;
// hasBackground gates all background-paint operations.
func NewCanvas(w io.Writer, trueColor, hasBackground bool) *Canvas {
	return &Canvas{w: w, trueColor: trueColor, background: hasBackground}
}

// HasBackground reports whether background-paint operations are active.
func (c *Canvas) HasBackground() bool { return c.background }

// SetColor emits the SGR escape for c on the given slot (slotFg or
// slotBg), unless it is already the last color set on that slot.
func (c *Canvas) SetColor(slot int, col Color) error {
	last := c.lastFg
	if slot == slotBg {
		last = c.lastBg
	}
	if last != nil && *last == col {
		return nil
	}

	seq := encodeColorSGR(slot, col, c.trueColor)
	if _, err := io.WriteString(c.w, seq); err != nil {
		return err
	}

	if col.A == 1 {
		// Pass-through emits a full SGR reset, which clears both slots; the
		// other slot's cache is stale after it.
		c.lastFg = nil
		c.lastBg = nil
	}
	if slot == slotBg {
		c.lastBg = &col
	} else {
		c.lastFg = &col
	}
	return nil
}

func encodeColorSGR(slot int, c Color, trueColor bool) string {
	switch {
	case c.A == 0 && c.R <= 7:
		return fmt.Sprintf("\x1b[%dm", slot+int(c.R))
	case c.A == 0:
		return fmt.Sprintf("\x1b[%d;5;%dm", slot+8, c.R)
	case c.A == 1:
		return "\x1b[0m"
	case trueColor:
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", slot+8, c.R, c.G, c.B)
	default:
		idx := quantizeTo256(c)
		return fmt.Sprintf("\x1b[%d;5;%dm", slot+8, idx)
	}
}

// SetBold emits the bold SGR.
func (c *Canvas) SetBold() error { return c.write("\x1b[1m") }

// UnsetBold emits the not-bold SGR.
func (c *Canvas) UnsetBold() error { return c.write("\x1b[22m") }

// SetUnderline emits the underline SGR.
func (c *Canvas) SetUnderline() error { return c.write("\x1b[4m") }

// UnsetUnderline emits the not-underline SGR.
func (c *Canvas) UnsetUnderline() error { return c.write("\x1b[24m") }

// DrawNewline emits a full reset followed by a newline, and invalidates
// the cached fg/bg since the terminal's own line-start style is undefined
// after a reset.
func (c *Canvas) DrawNewline() error {
	if err := c.write("\x1b[0m\n"); err != nil {
		return err
	}
	c.lastFg = nil
	c.lastBg = nil
	return nil
}

// FillSpaces pads with spaces from writtenWidth up to maxWidth; a no-op
// if writtenWidth already reaches or exceeds maxWidth.
func (c *Canvas) FillSpaces(writtenWidth, maxWidth int) error {
	if writtenWidth >= maxWidth {
		return nil
	}
	return c.write(spaces(maxWidth - writtenWidth))
}

func (c *Canvas) write(s string) error {
	_, err := io.WriteString(c.w, s)
	return err
}

// WriteString writes raw, unstyled text (line content, gutter glyphs,
// border fill) straight to the underlying writer.
func (c *Canvas) WriteString(s string) error { return c.write(s) }

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// visualWidth computes the CJK-aware display width of a rune, treating
// ambiguous-width characters as wide.
func visualWidth(r rune) int {
	condition := runewidth.NewCondition()
	condition.EastAsianWidth = true
	return condition.RuneWidth(r)
}
