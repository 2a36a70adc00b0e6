package hgconfig

import "os"

// Env holds the environment-derived settings hgrep honors.
type Env struct {
	// Theme is BAT_THEME: the bat-printer's default theme when --theme isn't given.
	Theme string
	// Style is BAT_STYLE: "plain", "header", or "numbers". "plain" and
	// "numbers" disable the grid for the bat printer; an explicit --grid
	// does not override them.
	Style string
	// CachePath is BAT_CACHE_PATH, falling back to $XDG_CACHE_HOME, used to
	// locate custom syntax/theme asset caches for --custom-assets.
	CachePath string
}

// LoadEnv reads the hgrep-relevant environment variables.
func LoadEnv() Env {
	e := Env{
		Theme: os.Getenv("BAT_THEME"),
		Style: os.Getenv("BAT_STYLE"),
	}
	if p := os.Getenv("BAT_CACHE_PATH"); p != "" {
		e.CachePath = p
	} else {
		e.CachePath = os.Getenv("XDG_CACHE_HOME")
	}
	return e
}

// GridDisabledByStyle reports whether BAT_STYLE disables the grid for the
// bat printer: "plain" and "numbers" have no border; only "header" does.
func (e Env) GridDisabledByStyle() bool {
	switch e.Style {
	case "plain", "numbers":
		return true
	default:
		return false
	}
}
