// color.go implements the overloaded Color encoding and the blending
// math behind palette construction, using go-colorful for the Lab
// distance calculations in 256-color quantization.
package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an overloaded RGBA tuple. Alpha carries out-of-band meaning
// rather than plain translucency:
//
//	a == 0, r <= 7: 16-color ANSI index, value in r
//	a == 0, r >  7: 256-color index, value in r
//	a == 1:         pass-through / reset to terminal default
//	a == 255:       opaque RGB
//	otherwise:      RGB to alpha-blend over a background
type Color struct {
	R, G, B, A uint8
}

// NoColor is the pass-through sentinel: "use the terminal's default".
var NoColor = Color{A: 1}

// Ansi16Color constructs a 16-color index encoding (index must be 0..15,
// but only 0..7 is representable per the bit layout above; 8..15 are
// emitted by canvas.go in the 256-color form, whose indices 8..15 are
// the bright variants).
func Ansi16Color(index uint8) Color {
	return Color{R: index, A: 0}
}

// Ansi256Color constructs a 256-color palette index encoding.
func Ansi256Color(index uint8) Color {
	r := index
	if r <= 7 {
		// Indices 0..7 collide with the 16-color encoding; bump into the
		// unambiguous range by routing through the opaque RGB form instead.
		return fromPalette256(index)
	}
	return Color{R: r, A: 0}
}

// Opaque constructs a fully opaque truecolor value.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Translucent constructs a blend-over-background color with the given
// alpha (must not be 0, 1, or 255; those are reserved sentinels).
func Translucent(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) isIndexed() bool  { return c.A == 0 }
func (c Color) isPassthru() bool { return c.A == 1 }
func (c Color) isOpaque() bool   { return c.A == 255 }

// blendFg resolves a foreground against its background: sentinel alphas
// (0, 1, 255) pass through unchanged; any other alpha blends fg's RGB
// over bg's RGB per-channel, becoming fully opaque.
func blendFg(fg, bg Color) Color {
	if fg.A == 0 || fg.A == 1 || fg.A == 255 {
		return fg
	}
	return blendOver(fg, bg)
}

// blendOver alpha-composites fg over bg, treating bg as opaque (its own
// sentinel forms are resolved to concrete RGB by the caller beforehand
// via resolveRGB).
func blendOver(fg, bg Color) Color {
	fgRGB := resolveRGB(fg)
	bgRGB := resolveRGB(bg)
	a := int(fg.A)
	r := uint8((int(fgRGB.R)*a + int(bgRGB.R)*(255-a)) / 255)
	g := uint8((int(fgRGB.G)*a + int(bgRGB.G)*(255-a)) / 255)
	b := uint8((int(fgRGB.B)*a + int(bgRGB.B)*(255-a)) / 255)
	return Color{R: r, G: g, B: b, A: 255}
}

// resolveRGB gives a best-effort concrete RGB triple for any Color form,
// used internally by blending math that needs real channel values even
// when the input is an indexed or pass-through sentinel.
func resolveRGB(c Color) Color {
	switch {
	case c.isOpaque(), !c.isIndexed() && !c.isPassthru():
		return c
	case c.isPassthru():
		return Color{R: 0, G: 0, B: 0, A: 255}
	default: // indexed
		return ansiIndexToRGB(c.R)
	}
}

// ansi16RGB is the conventional xterm RGB approximation for the 16 base
// colors, used only to give indexed colors a concrete value for blending
// math that operates on real channels (e.g. weakBlend, luma comparisons).
var ansi16RGB = [16]Color{
	{R: 0, G: 0, B: 0, A: 255},       // 0 black
	{R: 205, G: 0, B: 0, A: 255},     // 1 red
	{R: 0, G: 205, B: 0, A: 255},     // 2 green
	{R: 205, G: 205, B: 0, A: 255},   // 3 yellow
	{R: 0, G: 0, B: 238, A: 255},     // 4 blue
	{R: 205, G: 0, B: 205, A: 255},   // 5 magenta
	{R: 0, G: 205, B: 205, A: 255},   // 6 cyan
	{R: 229, G: 229, B: 229, A: 255}, // 7 white
	{R: 127, G: 127, B: 127, A: 255}, // 8 bright black
	{R: 255, G: 0, B: 0, A: 255},     // 9 bright red
	{R: 0, G: 255, B: 0, A: 255},     // 10 bright green
	{R: 255, G: 255, B: 0, A: 255},   // 11 bright yellow
	{R: 92, G: 92, B: 255, A: 255},   // 12 bright blue
	{R: 255, G: 0, B: 255, A: 255},   // 13 bright magenta
	{R: 0, G: 255, B: 255, A: 255},   // 14 bright cyan
	{R: 255, G: 255, B: 255, A: 255}, // 15 bright white
}

// ansiIndexToRGB gives a concrete RGB approximation for an indexed color
// (16- or 256-color form), for use in blending math only.
func ansiIndexToRGB(index uint8) Color {
	if index < 16 {
		return ansi16RGB[index]
	}
	return fromPalette256(index)
}

// fromPalette256 reconstructs an approximate RGB value for a 256-color
// palette index, inverting the 6x6x6 cube / grayscale layout quantizeTo256
// produces.
func fromPalette256(index uint8) Color {
	if index < 16 {
		return ansi16RGB[index]
	}
	if index >= 232 {
		level := uint8(8 + (int(index)-232)*10)
		return Color{R: level, G: level, B: level, A: 255}
	}
	i := int(index) - 16
	cubeSteps := [6]uint8{0, 95, 135, 175, 215, 255}
	r := cubeSteps[i/36]
	g := cubeSteps[(i/6)%6]
	b := cubeSteps[i%6]
	return Color{R: r, G: g, B: b, A: 255}
}

// weakBlend divides fg's effective alpha by a heuristic ratio before
// blending over bg, producing the dimmed gutter foreground: ratio 4 when
// fg is much brighter than bg (luma gap >= 200), 3 when fg is merely
// brighter, else 2.
func weakBlend(fg, bg Color) Color {
	fgLuma := luma(resolveRGB(fg))
	bgLuma := luma(resolveRGB(bg))

	ratio := 2.0
	switch {
	case fgLuma-bgLuma >= 200:
		ratio = 4.0
	case fgLuma > bgLuma:
		ratio = 3.0
	}

	alpha := fg.A
	if alpha == 0 || alpha == 1 || alpha == 255 {
		alpha = 128 // sentinel forms have no alpha to divide; use a mid default
	}
	weak := Color{R: fg.R, G: fg.G, B: fg.B, A: uint8(float64(alpha) / ratio)}
	return blendOver(weak, bg)
}

// luma returns the 0..255 perceptual luma of an opaque color, used for
// the brightness comparisons in palette construction.
func luma(c Color) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// lumaDistance returns the absolute luma gap between two opaque colors.
func lumaDistance(a, b Color) float64 {
	return math.Abs(luma(a) - luma(b))
}

// quantizeTo256 maps a truecolor RGB triple to the nearest xterm 256-color
// palette index, for terminals that advertise Ansi256 support only. It
// uses the standard 6x6x6 color cube (indices 16..231) plus the 24-step
// grayscale ramp (232..255), picking whichever is closer in CIE76 Lab
// distance via go-colorful.
func quantizeTo256(c Color) uint8 {
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}

	bestIdx := uint8(16)
	bestDist := math.MaxFloat64

	cubeSteps := [6]uint8{0, 95, 135, 175, 215, 255}
	for ri, r := range cubeSteps {
		for gi, g := range cubeSteps {
			for bi, b := range cubeSteps {
				cand := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
				if d := target.DistanceLab(cand); d < bestDist {
					bestDist = d
					bestIdx = uint8(16 + 36*ri + 6*gi + bi)
				}
			}
		}
	}
	for i := 0; i < 24; i++ {
		level := uint8(8 + i*10)
		cand := colorful.Color{R: float64(level) / 255, G: float64(level) / 255, B: float64(level) / 255}
		if d := target.DistanceLab(cand); d < bestDist {
			bestDist = d
			bestIdx = uint8(232 + i)
		}
	}
	return bestIdx
}
