// theme.go resolves theme names onto chroma styles.
package render

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/jpl-au/hgrep/internal/hgerr"
)

const defaultColorTheme = "Monokai Extended"
const defaultAnsiTheme = "ansi"

// ThemeSet is an additional name->style set checked after the built-in
// registry and the default aliases. Only custom themes loaded with
// --custom-assets populate it; no theme set is bundled with the binary.
type ThemeSet map[string]*chroma.Style

// themeAliases resolves the two default theme names onto real styles:
// chroma's registry carries monokai under its own name rather than the
// "Monokai Extended" name the color-mode default uses, and ships no
// terminal-default style at all for the 16-color "ansi" default.
var themeAliases = map[string]func() *chroma.Style{
	defaultColorTheme: func() *chroma.Style { return styles.Get("monokai") },
	defaultAnsiTheme:  func() *chroma.Style { return ansiStyle },
}

// ansiStyle carries no colors of its own, so BuildPalette resolves it to
// the fixed ANSI16 palette and every SGR the drawer emits passes through
// to the terminal's defaults.
var ansiStyle = chroma.MustNewStyle("ansi", chroma.StyleEntries{})

// SelectTheme resolves the chroma style for the requested theme name
// (empty meaning "use the default for this color support"), checking the
// built-in style set and falling back to fallbackThemes (the custom
// theme extension set, possibly nil) before failing.
func SelectTheme(name string, support ColorSupport, fallbackThemes *ThemeSet) (*chroma.Style, error) {
	if name == "" {
		if support == Ansi16 {
			name = defaultAnsiTheme
		} else {
			name = defaultColorTheme
		}
	}

	if style, ok := styles.Registry[name]; ok {
		return style, nil
	}
	if alias, ok := themeAliases[name]; ok {
		return alias(), nil
	}
	if fallbackThemes != nil {
		if style, ok := (*fallbackThemes)[name]; ok {
			return style, nil
		}
	}
	return nil, hgerr.ThemeUnknown(name)
}

// ListThemeNames returns every theme name known to the built-in registry
// plus the default aliases and fallbackThemes, for --list-themes.
func ListThemeNames(fallbackThemes *ThemeSet) []string {
	names := styles.Names()
	for name := range themeAliases {
		names = append(names, name)
	}
	if fallbackThemes == nil {
		return names
	}
	for name := range *fallbackThemes {
		names = append(names, name)
	}
	return names
}
