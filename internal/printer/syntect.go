// syntect.go implements the full-fidelity Drawer pipeline: grid,
// background painting, and ascii-lines all apply. The "syntect" name is
// the conventional one for this printer style, though the highlighting
// itself is done by chroma (render.LineHighlighter).
package printer

import (
	"bytes"

	"github.com/jpl-au/hgrep/internal/chunk"
	"github.com/jpl-au/hgrep/internal/hgerr"
	"github.com/jpl-au/hgrep/internal/render"
)

// SyntectPrinter is the full-featured printer backend.
type SyntectPrinter struct {
	opts     Options
	fallback *render.ThemeSet
}

// NewSyntectPrinter constructs a SyntectPrinter. fallback is the
// additional theme set consulted when opts.Theme is neither a built-in
// chroma style nor a default alias; it may be nil.
func NewSyntectPrinter(opts Options, fallback *render.ThemeSet) *SyntectPrinter {
	return &SyntectPrinter{opts: opts, fallback: fallback}
}

// Print renders f through the full Drawer pipeline.
func (p *SyntectPrinter) Print(f *chunk.File) ([]byte, error) {
	style, err := render.SelectTheme(p.opts.Theme, p.opts.ColorSupport, p.fallback)
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
	hasBackground := p.opts.BackgroundColor && !render.IsFallbackPalette(palette)

	var buf bytes.Buffer
	canvas := render.NewCanvas(&buf, trueColor, hasBackground)
	drawer := render.NewDrawer(canvas, palette, render.DrawOptions{
		TermWidth:  p.opts.TermWidth,
		TabWidth:   p.opts.TabWidth,
		Grid:       p.opts.Grid,
		AsciiLines: p.opts.AsciiLines,
		WrapChar:   p.opts.TextWrap == WrapChar,
		FirstOnly:  p.opts.FirstOnly,
	})

	if err := drawer.Draw(f, hl); err != nil {
		if hgerr.IsBrokenPipe(err) {
			return buf.Bytes(), nil
		}
		return nil, hgerr.PrintFailure(f.Path, err)
	}
	return buf.Bytes(), nil
}

func firstLineOf(contents []byte) string {
	if idx := bytes.IndexByte(contents, '\n'); idx >= 0 {
		return string(contents[:idx])
	}
	return string(contents)
}
