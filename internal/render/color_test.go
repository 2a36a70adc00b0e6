package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlendFgSentinelsPassThrough(t *testing.T) {
	bg := Opaque(10, 10, 10)
	for _, c := range []Color{NoColor, Ansi16Color(3), Opaque(1, 2, 3)} {
		require.Equal(t, c, blendFg(c, bg))
	}
}

func TestBlendFgMixesChannels(t *testing.T) {
	fg := Translucent(255, 0, 0, 128)
	bg := Opaque(0, 0, 0)
	got := blendFg(fg, bg)

	require.Equal(t, uint8(255), got.A, "blend result is opaque")
	require.Equal(t, uint8(128), got.R) // 255*128/255
	require.Equal(t, uint8(0), got.G)
	require.Equal(t, uint8(0), got.B)
}

func TestWeakBlendRatioSelection(t *testing.T) {
	black := Opaque(0, 0, 0)
	white := Opaque(255, 255, 255)

	// Bright fg on dark bg (luma gap >= 200) divides alpha by 4; the result
	// sits much closer to the background than a plain mid blend would.
	dim := weakBlend(white, black)
	require.Equal(t, uint8(255), dim.A)
	require.Less(t, dim.R, uint8(64))

	// Dark fg on bright bg uses ratio 2 (fg not brighter than bg).
	softer := weakBlend(black, white)
	require.Greater(t, softer.R, uint8(128))
}

func TestQuantizeTo256Grayscale(t *testing.T) {
	idx := quantizeTo256(Opaque(8, 8, 8))
	require.GreaterOrEqual(t, idx, uint8(232), "near-black gray maps onto the grayscale ramp")

	rt := fromPalette256(idx)
	require.Equal(t, rt.R, rt.G)
	require.Equal(t, rt.G, rt.B)
}

func TestQuantizeTo256CubeCorners(t *testing.T) {
	require.Equal(t, uint8(196), quantizeTo256(Opaque(255, 0, 0)))  // pure red corner
	require.Equal(t, uint8(46), quantizeTo256(Opaque(0, 255, 0)))   // pure green corner
	require.Equal(t, uint8(21), quantizeTo256(Opaque(0, 0, 255)))   // pure blue corner
	require.Equal(t, uint8(231), quantizeTo256(Opaque(255, 255, 255)))
}

func TestFromPalette256InvertsCube(t *testing.T) {
	// Index 196 = cube (5,0,0) = RGB(255,0,0).
	require.Equal(t, Opaque(255, 0, 0), fromPalette256(196))
	// Index 232 = first grayscale step, level 8.
	require.Equal(t, Opaque(8, 8, 8), fromPalette256(232))
}

func TestAnsi256AvoidsSentinelCollision(t *testing.T) {
	// Indices 0..7 collide with the 16-color encoding, so they resolve to
	// an opaque RGB form instead of an ambiguous indexed one.
	c := Ansi256Color(3)
	require.True(t, c.isOpaque())

	c = Ansi256Color(100)
	require.True(t, c.isIndexed())
	require.Equal(t, uint8(100), c.R)
}
