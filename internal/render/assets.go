// assets.go implements the --custom-assets / BAT_CACHE_PATH surface:
// hgrep's built-in syntaxes and themes come from chroma's registry, but a
// user can extend the theme set from a compressed cache blob, a
// zlib-wrapped binary serialization of the extra themes.
package render

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/klauspost/compress/zlib"
)

// PortableTheme is a small, gob-friendly description of the handful of
// chroma.Style entries the palette builder actually reads (background,
// line-highlight, find-highlight), used for the custom-asset cache
// format. It is not a full chroma.Style serialization, only what
// BuildPalette needs.
type PortableTheme struct {
	Name          string
	Background    string // chroma style description, e.g. "bg:#272822 #f8f8f2"
	LineHighlight string
	FindHighlight string
}

// LoadCustomThemes decompresses and deserializes a themes cache at path,
// returning a ThemeSet keyed by theme name. A missing file is not an
// error (custom assets are optional); any other failure should be
// wrapped by the caller as an AssetLoad-class error.
func LoadCustomThemes(path string) (ThemeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ThemeSet{}, nil
		}
		return nil, err
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompressing custom theme cache: %w", err)
	}
	defer zr.Close()

	var portables []PortableTheme
	if err := gob.NewDecoder(zr).Decode(&portables); err != nil {
		return nil, fmt.Errorf("deserialising custom theme cache: %w", err)
	}

	set := make(ThemeSet, len(portables))
	for _, pt := range portables {
		style, err := buildChromaStyle(pt)
		if err != nil {
			continue // skip a malformed entry rather than fail the whole cache
		}
		set[pt.Name] = style
	}
	return set, nil
}

func buildChromaStyle(pt PortableTheme) (*chroma.Style, error) {
	entries := chroma.StyleEntries{}
	if pt.Background != "" {
		entries[chroma.Background] = pt.Background
	}
	if pt.LineHighlight != "" {
		entries[chroma.LineHighlight] = pt.LineHighlight
	}
	if pt.FindHighlight != "" {
		entries[chroma.GenericEmph] = pt.FindHighlight
	}
	return chroma.NewStyle(pt.Name, entries)
}
