// Package printer selects between the two rendering backends
// (-p {bat|syntect}) and drives the parallel per-file pipeline: each
// worker renders one chunk.File into a private scratch buffer, then
// writes it to the shared output under a single process-wide lock.
package printer

import (
	"github.com/jpl-au/hgrep/internal/chunk"
	"github.com/jpl-au/hgrep/internal/render"
)

// WrapMode selects how overlong lines are handled.
type WrapMode int

const (
	WrapChar WrapMode = iota
	WrapNever
)

// Options is the resolved printer configuration.
type Options struct {
	Theme           string
	TabWidth        int
	Grid            bool
	FirstOnly       bool
	TermWidth       int
	TextWrap        WrapMode
	ColorSupport    render.ColorSupport
	BackgroundColor bool
	AsciiLines      bool
	CustomAssets    bool

	// Printer selects the backend: "syntect" (the full Drawer pipeline)
	// or "bat" (the reduced-feature lipgloss pipeline).
	Printer string
}

// Printer renders one File into its own scratch buffer, ready to be
// written to the shared output under the Run orchestrator's lock.
type Printer interface {
	Print(f *chunk.File) ([]byte, error)
}
