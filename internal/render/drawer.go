// drawer.go is the central rendering state machine: it owns header/
// gutter/separator/footer construction and drives the fused draw-event
// stream (events.go) through Canvas writes for one File's visible
// chunks.
package render

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/jpl-au/hgrep/internal/chunk"
	"github.com/jpl-au/hgrep/internal/source"
)

// DrawOptions configures one Drawer's layout. Color is already baked
// into the Palette and Canvas; DrawOptions carries everything else the
// printer options contribute to rendering.
type DrawOptions struct {
	TermWidth  int
	TabWidth   int
	Grid       bool
	AsciiLines bool
	WrapChar   bool // wrap at body width; false renders lines whole
	FirstOnly  bool
}

type lineGlyphs struct {
	horizontal, vertical, teeRight, teeDown, teeUp, stub string
}

var unicodeGlyphs = lineGlyphs{horizontal: "─", vertical: "│", teeRight: "├", teeDown: "┬", teeUp: "┴", stub: "╶"}
var asciiGlyphs = lineGlyphs{horizontal: "-", vertical: "|", teeRight: "|", teeDown: "-", teeUp: "-", stub: "-"}

// Drawer is the central rendering state machine for one File.
type Drawer struct {
	canvas  *Canvas
	palette Palette
	opts    DrawOptions
	glyphs  lineGlyphs
}

// NewDrawer constructs a Drawer writing through canvas, styled by
// palette, laid out per opts.
func NewDrawer(canvas *Canvas, palette Palette, opts DrawOptions) *Drawer {
	glyphs := unicodeGlyphs
	if opts.AsciiLines {
		glyphs = asciiGlyphs
	}
	return &Drawer{canvas: canvas, palette: palette, opts: opts, glyphs: glyphs}
}

// Draw renders the whole File: header, each visible chunk's body
// (separated by "..." separator lines), footer. hl must already be
// positioned at line 1 (freshly constructed).
func (d *Drawer) Draw(f *chunk.File, hl *LineHighlighter) error {
	if err := d.header(f.Path); err != nil {
		return err
	}

	lnumWidth, gutterWidth := d.gutterWidths(f)

	matchByLine := make(map[int][]Range, len(f.LineMatches))
	for _, lm := range f.LineMatches {
		matchByLine[lm.LineNumber] = convertRanges(lm.Ranges)
	}

	total := hl.NumLines()
	chunkIdx := 0
	for lnum := 1; lnum <= total && chunkIdx < len(f.Chunks); lnum++ {
		cur := f.Chunks[chunkIdx]

		if lnum < cur.Start {
			hl.SkipLine()
			continue
		}

		if lnum == cur.Start && chunkIdx > 0 {
			if err := d.separator(lnumWidth); err != nil {
				return err
			}
		}

		toks := hl.Highlight()
		ranges, matched := matchByLine[lnum]

		if err := d.lineNumber(lnum, lnumWidth, matched); err != nil {
			return err
		}
		if err := d.body(toks, ranges, matched, lnumWidth, gutterWidth); err != nil {
			return err
		}

		if lnum == cur.End {
			chunkIdx++
			if d.opts.FirstOnly {
				break
			}
		}
	}

	return d.footer()
}

// gutterWidths computes the line-number column width and the full
// gutter width.
func (d *Drawer) gutterWidths(f *chunk.File) (lnumWidth, gutterWidth int) {
	last := 0
	for _, c := range f.Chunks {
		if c.End > last {
			last = c.End
		}
	}
	lnumWidth = digits(last)
	if len(f.Chunks) > 1 && lnumWidth < 3 {
		lnumWidth = 3
	}
	if d.opts.Grid {
		gutterWidth = lnumWidth + 4
	} else {
		gutterWidth = lnumWidth + 2
	}
	return lnumWidth, gutterWidth
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

func convertRanges(in []source.Range) []Range {
	if len(in) == 0 {
		return nil
	}
	out := make([]Range, len(in))
	for i, r := range in {
		out[i] = Range{Start: r.Start, End: r.End}
	}
	return out
}

// stringWidth measures border/header text grapheme-cluster-aware, so a
// path containing a ZWJ emoji sequence still lines up with the fill.
func stringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// header draws the bordered (grid) or plain header line containing the
// bolded file path, background-painted to term width when backgrounds
// are enabled.
func (d *Drawer) header(path string) error {
	c := d.canvas

	if !d.opts.Grid {
		if c.HasBackground() {
			if err := c.SetColor(slotBg, d.palette.Background); err != nil {
				return err
			}
		}
		if err := c.SetColor(slotFg, d.palette.Foreground); err != nil {
			return err
		}
		if err := c.SetBold(); err != nil {
			return err
		}
		if err := c.WriteString(path); err != nil {
			return err
		}
		if err := c.UnsetBold(); err != nil {
			return err
		}
		return c.DrawNewline()
	}

	if c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, d.palette.GutterFg); err != nil {
		return err
	}
	prefix := d.glyphs.horizontal + d.glyphs.horizontal + d.glyphs.stub
	if err := c.WriteString(prefix); err != nil {
		return err
	}
	written := stringWidth(prefix)

	if err := c.SetBold(); err != nil {
		return err
	}
	if err := c.SetColor(slotFg, d.palette.Foreground); err != nil {
		return err
	}
	label := " " + path + " "
	if err := c.WriteString(label); err != nil {
		return err
	}
	written += stringWidth(label)
	if err := c.UnsetBold(); err != nil {
		return err
	}

	if err := c.SetColor(slotFg, d.palette.GutterFg); err != nil {
		return err
	}
	if written < d.opts.TermWidth {
		if err := c.WriteString(strings.Repeat(d.glyphs.horizontal, d.opts.TermWidth-written)); err != nil {
			return err
		}
	}
	return c.DrawNewline()
}

// footer draws the terminating tee-up horizontal line, grid mode only.
func (d *Drawer) footer() error {
	if !d.opts.Grid {
		return nil
	}
	c := d.canvas
	if c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, d.palette.GutterFg); err != nil {
		return err
	}
	if err := c.WriteString(d.glyphs.teeUp); err != nil {
		return err
	}
	if d.opts.TermWidth > 1 {
		if err := c.WriteString(strings.Repeat(d.glyphs.horizontal, d.opts.TermWidth-1)); err != nil {
			return err
		}
	}
	return c.DrawNewline()
}

// separator draws the "..." chunk-boundary line: right-aligned dots in
// the gutter, the grid junction glyph, then a dashed fill to term width.
func (d *Drawer) separator(lnumWidth int) error {
	c := d.canvas
	if c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, d.palette.GutterFg); err != nil {
		return err
	}

	dots := "..."
	pad := lnumWidth - len(dots)
	if pad < 0 {
		pad = 0
	}
	if err := c.WriteString(strings.Repeat(" ", pad) + dots); err != nil {
		return err
	}
	written := lnumWidth

	if d.opts.Grid {
		if err := c.WriteString(" " + d.glyphs.teeRight); err != nil {
			return err
		}
		written += 2
	} else {
		if err := c.WriteString(" "); err != nil {
			return err
		}
		written++
	}

	if written < d.opts.TermWidth {
		if err := c.WriteString(strings.Repeat(d.glyphs.horizontal, d.opts.TermWidth-written)); err != nil {
			return err
		}
	}
	return c.DrawNewline()
}

// lineNumber draws one line's gutter: right-aligned number (matched
// lines in match_lnum_fg, others in gutter_fg), then in grid mode the
// vertical bar, resetting to the default background before body content.
func (d *Drawer) lineNumber(lnum, lnumWidth int, matched bool) error {
	c := d.canvas
	if c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}

	color := d.palette.GutterFg
	if matched {
		color = d.palette.MatchLnumFg
	}

	if d.opts.Grid {
		if err := c.WriteString(" "); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, color); err != nil {
		return err
	}
	if err := c.WriteString(fmt.Sprintf("%*d", lnumWidth, lnum)); err != nil {
		return err
	}

	if d.opts.Grid {
		if err := c.WriteString(" "); err != nil {
			return err
		}
		if err := c.SetColor(slotFg, d.palette.GutterFg); err != nil {
			return err
		}
		if err := c.WriteString(d.glyphs.vertical); err != nil {
			return err
		}
		if c.HasBackground() {
			if err := c.SetColor(slotBg, NoColor); err != nil {
				return err
			}
		}
		return c.WriteString(" ")
	}
	return c.WriteString("  ")
}

// continuationGutter draws the wrap-break gutter: spaces the width of a
// line-number gutter, then in grid mode the vertical bar.
func (d *Drawer) continuationGutter(lnumWidth int) error {
	c := d.canvas
	if err := c.WriteString(strings.Repeat(" ", lnumWidth+2)); err != nil {
		return err
	}
	if !d.opts.Grid {
		return nil
	}
	if c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, d.palette.GutterFg); err != nil {
		return err
	}
	return c.WriteString(d.glyphs.vertical + " ")
}
