// bat.go implements the reduced-feature alternate printer. It reuses
// the same chunker/highlighter/palette pipeline as SyntectPrinter, but
// renders through lipgloss styled strings rather than Canvas/Drawer, so
// it never paints backgrounds and never draws the grid border or
// ascii-lines glyphs. The feature matrix between the two printers is
// kept explicit in the CLI help text.
package printer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpl-au/hgrep/internal/chunk"
	"github.com/jpl-au/hgrep/internal/hgconfig"
	"github.com/jpl-au/hgrep/internal/hgerr"
	"github.com/jpl-au/hgrep/internal/render"
	"github.com/jpl-au/hgrep/internal/source"
)

// BatPrinter is the reduced-feature printer backend.
type BatPrinter struct {
	opts     Options
	fallback *render.ThemeSet
	env      hgconfig.Env
}

// NewBatPrinter constructs a BatPrinter. env carries the BAT_THEME/
// BAT_STYLE environment defaults.
func NewBatPrinter(opts Options, fallback *render.ThemeSet, env hgconfig.Env) *BatPrinter {
	return &BatPrinter{opts: opts, fallback: fallback, env: env}
}

// Print renders f through the reduced bat-style pipeline.
func (p *BatPrinter) Print(f *chunk.File) ([]byte, error) {
	theme := p.opts.Theme
	if theme == "" {
		theme = p.env.Theme
	}
	style, err := render.SelectTheme(theme, p.opts.ColorSupport, p.fallback)
	if err != nil {
		return nil, err
	}
	palette := render.BuildPalette(style, p.opts.ColorSupport)

	lexer := render.LexerFor(render.SelectSyntax(f.Path, firstLineOf(f.Contents)))
	hl, err := render.NewLineHighlighter(lexer, style, palette.Background, string(f.Contents))
	if err != nil {
		return nil, hgerr.PrintFailure(f.Path, err)
	}

	trueColor := p.opts.ColorSupport == render.TrueColor
	showGrid := p.opts.Grid && !p.env.GridDisabledByStyle()

	var buf bytes.Buffer
	p.header(&buf, f.Path, showGrid)

	lnumWidth, _ := gutterDigits(f)
	matchByLine := make(map[int][]render.Range, len(f.LineMatches))
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
			fmt.Fprintln(&buf, "...")
		}

		toks := hl.Highlight()
		ranges, matched := matchByLine[lnum]

		lnumStyle := lipgloss.NewStyle().Foreground(lipglossColor(palette.GutterFg, trueColor))
		if matched {
			lnumStyle = lipgloss.NewStyle().Foreground(lipglossColor(palette.MatchLnumFg, trueColor)).Bold(true)
		}
		fmt.Fprintf(&buf, "%s ", lnumStyle.Render(fmt.Sprintf("%*d", lnumWidth, lnum)))

		renderBatLine(&buf, toks, ranges, palette, trueColor)
		fmt.Fprintln(&buf)

		if lnum == cur.End {
			chunkIdx++
			if p.opts.FirstOnly {
				break
			}
		}
	}

	return buf.Bytes(), nil
}

func (p *BatPrinter) header(buf *bytes.Buffer, path string, showGrid bool) {
	switch {
	case showGrid, p.env.Style == "header":
		fmt.Fprintln(buf, lipgloss.NewStyle().Bold(true).Render(path))
	case p.env.Style == "plain", p.env.Style == "numbers":
		// no header under these styles
	default:
		fmt.Fprintln(buf, path)
	}
}

func renderBatLine(buf *bytes.Buffer, toks []render.Token, ranges []render.Range, pal render.Palette, trueColor bool) {
	for _, span := range render.Flatten(toks, ranges) {
		style := lipgloss.NewStyle()
		if span.InRegion {
			style = style.
				Foreground(lipglossColor(pal.RegionFg, trueColor)).
				Background(lipglossColor(pal.RegionBg, trueColor))
		} else {
			style = style.
				Foreground(lipglossColor(span.Style.Fg, trueColor)).
				Bold(span.Style.Bold).
				Italic(span.Style.Italic)
		}
		buf.WriteString(style.Render(span.Text))
	}
}

// lipglossColor maps a render.Color onto lipgloss's TerminalColor,
// respecting the same sentinel encoding Canvas uses.
func lipglossColor(c render.Color, trueColor bool) lipgloss.TerminalColor {
	switch {
	case c.A == 1:
		return lipgloss.NoColor{}
	case c.A == 0:
		return lipgloss.Color(fmt.Sprintf("%d", c.R))
	default:
		return lipgloss.Color(strings.ToLower(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)))
	}
}

func gutterDigits(f *chunk.File) (lnumWidth int, multi bool) {
	last := 0
	for _, c := range f.Chunks {
		if c.End > last {
			last = c.End
		}
	}
	multi = len(f.Chunks) > 1
	lnumWidth = digitsOf(last)
	if multi && lnumWidth < 3 {
		lnumWidth = 3
	}
	return lnumWidth, multi
}

func digitsOf(n int) int {
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

func convertRanges(in []source.Range) []render.Range {
	if len(in) == 0 {
		return nil
	}
	out := make([]render.Range, len(in))
	for i, r := range in {
		out[i] = render.Range{Start: r.Start, End: r.End}
	}
	return out
}
