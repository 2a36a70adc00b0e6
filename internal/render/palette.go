// palette.go resolves a chroma style into the handful of colors the
// drawer paints with, including the blend and weak-blend derivations for
// gutter and match colors.
package render

import (
	"github.com/alecthomas/chroma/v2"
)

// ColorSupport enumerates the terminal color depths hgrep can target.
type ColorSupport int

const (
	Ansi16 ColorSupport = iota
	Ansi256
	TrueColor
)

// Palette holds the resolved, render-ready colors for one theme.
type Palette struct {
	Foreground  Color
	Background  Color
	MatchBg     Color
	MatchLnumFg Color
	RegionFg    Color
	RegionBg    Color
	GutterFg    Color
}

// ansi16Palette is the fixed fallback used whenever the theme carries no
// real background/foreground, or the terminal only supports 16 colors.
var ansi16Palette = Palette{
	Foreground:  NoColor,
	Background:  NoColor,
	MatchBg:     NoColor,
	MatchLnumFg: Ansi16Color(3), // yellow
	RegionFg:    Ansi16Color(0), // black
	RegionBg:    Ansi16Color(3), // yellow
	GutterFg:    NoColor,
}

// BuildPalette resolves a Palette from a chroma style and the requested
// color support.
func BuildPalette(style *chroma.Style, support ColorSupport) Palette {
	if support == Ansi16 {
		return ansi16Palette
	}

	entry := style.Get(chroma.Background)
	bg := chromaColorToColor(entry.Background)
	fgRaw := chromaColorToColor(entry.Colour)
	fg := blendFg(fgRaw, bg)

	if bg.isPassthru() && fg.isPassthru() {
		return ansi16Palette
	}

	gutterFg := weakBlend(fg, bg)
	matchLnumFg := blendFg(fg, bg)

	// chroma's Get merges the global background into every entry, so an
	// entry only counts as a real line-highlight when it is explicitly
	// present and differs from the plain background.
	matchBg := weakBlend(fg, bg)
	if style.Has(chroma.LineHighlight) {
		if c := chromaColorToColor(style.Get(chroma.LineHighlight).Background); c != bg && !c.isPassthru() {
			matchBg = c
		}
	}

	regionFg, regionBg := resolveRegionColors(style, fg, bg)

	return Palette{
		Foreground:  fg,
		Background:  bg,
		MatchBg:     matchBg,
		MatchLnumFg: matchLnumFg,
		RegionFg:    regionFg,
		RegionBg:    regionBg,
		GutterFg:    gutterFg,
	}
}

// IsFallbackPalette reports whether p is the fixed ANSI16 fallback
// palette. Background painting is only meaningful on a non-fallback
// palette, so this gates Canvas's hasBackground.
func IsFallbackPalette(p Palette) bool {
	return p == ansi16Palette
}

// resolveRegionColors derives the match-region pair from GenericEmph, the
// closest chroma analog to a find-highlight entry. Inherited colors (the
// merged-in global bg/fg) don't count as explicit find-highlight choices,
// so anything matching them falls through to the next rule.
func resolveRegionColors(style *chroma.Style, fg, bg Color) (Color, Color) {
	if !style.Has(chroma.GenericEmph) {
		return bg, fg
	}
	find := style.Get(chroma.GenericEmph)
	regionBg := chromaColorToColor(find.Background)
	if regionBg == bg || regionBg.isPassthru() {
		return bg, fg
	}

	var regionFg Color
	if explicit := chromaColorToColor(find.Colour); !explicit.isPassthru() && explicit != fg {
		regionFg = explicit
	} else if lumaDistance(fg, regionBg) >= lumaDistance(bg, regionBg) {
		regionFg = fg
	} else {
		regionFg = bg
	}
	return blendFg(regionFg, regionBg), regionBg
}

func chromaColorToColor(c chroma.Colour) Color {
	if !c.IsSet() {
		return NoColor
	}
	return Opaque(c.Red(), c.Green(), c.Blue())
}
