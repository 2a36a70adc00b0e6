// flags.go defines the CLI flag set and the accessors that translate
// it, plus hgconfig's file defaults and the detected terminal
// capabilities, into the internal/source, internal/chunk, and
// internal/printer option structs.
//
// Separated from root.go to isolate flag definitions from command
// wiring.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/hgrep/internal/hgconfig"
	"github.com/jpl-au/hgrep/internal/printer"
	"github.com/jpl-au/hgrep/internal/render"
	"github.com/jpl-au/hgrep/internal/source"
)

var validPrinters = []string{"bat", "syntect"}
var validWrapModes = []string{"char", "never"}

var (
	minContext   int
	maxContext   int
	grid         bool
	noGrid       bool
	tabWidth     int
	theme        string
	listThemes   bool
	printerName  string
	termWidth    int
	wrapMode     string
	firstOnly    bool
	background   bool
	asciiLines   bool
	customAssets bool
	typeList     bool

	noIgnore            bool
	ignoreCase          bool
	smartCase           bool
	hidden              bool
	globs               []string
	globCaseInsensitive bool
	fixedStrings        bool
	wordBoundary        bool
	lineAnchored        bool
	followSymlinks      bool
	multiline           bool
	dotMatchesNewline   bool
	crlf                bool
	mmap                bool
	maxCount            int
	maxDepth            int
	maxFileSize         string
	regexSizeLimit      string
	dfaSizeLimit        string
	invert              bool
	oneFileSystem       bool
	noUnicode           bool
	pcre2               bool
	typeNames           []string
	typeExcludeNames    []string
)

func init() {
	rootCmd.Flags().IntVarP(&minContext, "min-context", "c", hgconfig.DefaultMinContext, "Minimum lines of context around a match")
	rootCmd.Flags().IntVarP(&maxContext, "max-context", "C", hgconfig.DefaultMaxContext, "Maximum lines of context before chunks merge")
	rootCmd.Flags().BoolVar(&grid, "grid", true, "Draw the bordered gutter grid")
	rootCmd.Flags().BoolVarP(&noGrid, "no-grid", "G", false, "Disable the gutter grid")
	rootCmd.Flags().IntVar(&tabWidth, "tab", hgconfig.DefaultTabWidth, "Tab width in spaces (0 passes tabs through)")
	rootCmd.Flags().StringVar(&theme, "theme", "", "Syntax highlighting theme name")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "List available theme names and exit")
	rootCmd.Flags().StringVarP(&printerName, "printer", "p", "syntect", "Rendering backend: bat or syntect")
	rootCmd.Flags().IntVar(&termWidth, "term-width", 0, "Terminal width override (>= 10; default: detected)")
	rootCmd.Flags().StringVar(&wrapMode, "wrap", hgconfig.DefaultWrap, "Line wrap mode: char or never")
	rootCmd.Flags().BoolVarP(&firstOnly, "first-only", "f", false, "Render only the first chunk of each file")
	rootCmd.Flags().BoolVar(&background, "background", false, "Paint the theme's background color (syntect only)")
	rootCmd.Flags().BoolVar(&asciiLines, "ascii-lines", false, "Use ASCII instead of Unicode box-drawing glyphs (syntect only)")
	rootCmd.Flags().BoolVar(&customAssets, "custom-assets", false, "Load custom syntax/theme assets from the bat cache directory (bat only)")

	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't honor .gitignore/.ignore/.rgignore files")
	rootCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Case-insensitive search")
	rootCmd.Flags().BoolVarP(&smartCase, "smart-case", "S", false, "Case-insensitive unless the pattern has uppercase")
	rootCmd.Flags().BoolVarP(&hidden, "hidden", ".", false, "Include hidden files and directories")
	rootCmd.Flags().StringArrayVarP(&globs, "glob", "g", nil, "Include/exclude glob override (repeatable, prefix ! to exclude)")
	rootCmd.Flags().BoolVar(&globCaseInsensitive, "glob-case-insensitive", false, "Case-insensitive glob matching")
	rootCmd.Flags().BoolVarP(&fixedStrings, "fixed-strings", "F", false, "Treat the pattern as a literal string")
	rootCmd.Flags().BoolVarP(&wordBoundary, "word-regexp", "w", false, "Only match whole words")
	rootCmd.Flags().BoolVarP(&lineAnchored, "line-regexp", "x", false, "Only match whole lines")
	rootCmd.Flags().BoolVarP(&followSymlinks, "follow", "L", false, "Follow symbolic links")
	rootCmd.Flags().BoolVarP(&multiline, "multiline", "U", false, "Allow matches to span multiple lines")
	rootCmd.Flags().BoolVar(&dotMatchesNewline, "multiline-dotall", false, "In multiline mode, '.' also matches newline")
	rootCmd.Flags().BoolVar(&crlf, "crlf", false, "Treat CRLF as the line terminator")
	rootCmd.Flags().BoolVar(&mmap, "mmap", false, "Accepted for compatibility; files are always read without memory mapping")
	rootCmd.Flags().IntVarP(&maxCount, "max-count", "m", 0, "Stop after this many matches (0: unlimited)")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum directory recursion depth (0: unlimited)")
	rootCmd.Flags().StringVar(&maxFileSize, "max-filesize", "", "Skip files larger than this size (e.g. 10M)")
	rootCmd.Flags().BoolVarP(&invert, "invert-match", "v", false, "Select non-matching lines")
	rootCmd.Flags().BoolVar(&oneFileSystem, "one-file-system", false, "Accepted for compatibility; the walk is not limited to one filesystem")
	rootCmd.Flags().BoolVar(&noUnicode, "no-unicode", false, "Accepted for compatibility; matching stays Unicode-aware")
	rootCmd.Flags().StringVar(&regexSizeLimit, "regex-size-limit", "", "Accepted for compatibility (e.g. 10M); no compiled regex size limit is applied")
	rootCmd.Flags().StringVar(&dfaSizeLimit, "dfa-size-limit", "", "Accepted for compatibility (e.g. 10M); no DFA cache size limit is applied")
	rootCmd.Flags().BoolVarP(&pcre2, "pcre2", "P", false, "Use the PCRE2-compatible regex engine instead of RE2")
	rootCmd.Flags().StringArrayVarP(&typeNames, "type", "t", nil, "Only search files of this type (repeatable)")
	rootCmd.Flags().StringArrayVarP(&typeExcludeNames, "type-not", "T", nil, "Exclude files of this type (repeatable)")
	rootCmd.Flags().BoolVar(&typeList, "type-list", false, "List known file types and the globs they expand to")

	_ = rootCmd.RegisterFlagCompletionFunc("printer", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validPrinters, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("wrap", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validWrapModes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return source.KnownTypeNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// detectColorSupport maps the terminal's advertised color profile onto
// render.ColorSupport, respecting NO_COLOR/CLICOLOR_FORCE via termenv.
func detectColorSupport() render.ColorSupport {
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return render.TrueColor
	case termenv.ANSI256:
		return render.Ansi256
	default:
		return render.Ansi16
	}
}

// detectTermWidth returns the controlling terminal's column width, or 80
// when stdout isn't a terminal or the ioctl fails.
func detectTermWidth() int {
	fd := int(os.Stdout.Fd())
	if !isatty.IsTerminal(uintptr(fd)) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// resolvePrinterOptions merges flags over the loaded config file over
// detected terminal defaults into a printer.Options.
func resolvePrinterOptions(cfg *hgconfig.Config) (printer.Options, error) {
	opts := printer.Options{
		Theme:           firstNonEmpty(theme, cfg.Theme),
		TabWidth:        tabWidth,
		Grid:            resolveGrid(cfg),
		FirstOnly:       firstOnly,
		TermWidth:       termWidth,
		ColorSupport:    detectColorSupport(),
		BackgroundColor: background,
		AsciiLines:      asciiLines,
		CustomAssets:    customAssets,
		Printer:         printerName,
	}

	flags := rootCmd.Flags()
	if !flags.Changed("tab") {
		opts.TabWidth = cfg.TabWidthOr(tabWidth)
	}
	if !flags.Changed("background") {
		opts.BackgroundColor = cfg.BackgroundOr(background)
	}
	if !flags.Changed("ascii-lines") {
		opts.AsciiLines = cfg.AsciiLinesOr(asciiLines)
	}
	if !flags.Changed("printer") && cfg.Printer != "" {
		opts.Printer = cfg.Printer
	}

	if opts.TermWidth <= 0 {
		if cfg.TermWidth != nil {
			opts.TermWidth = *cfg.TermWidth
		} else {
			opts.TermWidth = detectTermWidth()
		}
	}
	if opts.TermWidth < 10 {
		return opts, configInvalid(fmt.Sprintf("term-width must be >= 10, got %d", opts.TermWidth))
	}

	wrap := wrapMode
	if !rootCmd.Flags().Changed("wrap") && cfg.Wrap != "" {
		wrap = cfg.Wrap
	}
	switch wrap {
	case "never":
		opts.TextWrap = printer.WrapNever
	case "char", "":
		opts.TextWrap = printer.WrapChar
	default:
		return opts, configInvalid(fmt.Sprintf("wrap must be 'char' or 'never', got %q", wrap))
	}

	if opts.Printer != "bat" && opts.Printer != "syntect" {
		return opts, configInvalid(fmt.Sprintf("printer must be 'bat' or 'syntect', got %q", opts.Printer))
	}
	return opts, nil
}

func resolveGrid(cfg *hgconfig.Config) bool {
	if noGrid {
		return false
	}
	if rootCmd.Flags().Changed("grid") {
		return grid
	}
	return cfg.GridOr(true)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveWalkOptions builds source.WalkOptions from the embedded-walker
// flag group, expanding -t/-T type names into globs.go's override set.
func resolveWalkOptions(pattern string, paths []string) (source.WalkOptions, error) {
	for _, name := range append(append([]string{}, typeNames...), typeExcludeNames...) {
		if !knownType(name) {
			return source.WalkOptions{}, configInvalid(fmt.Sprintf("unknown file type %q (see --type-list)", name))
		}
	}

	allGlobs := append([]string{}, globs...)
	allGlobs = append(allGlobs, source.TypeGlobs(typeNames)...)
	for _, g := range source.TypeGlobs(typeExcludeNames) {
		allGlobs = append(allGlobs, "!"+g)
	}

	maxSize, err := parseSize(maxFileSize)
	if err != nil {
		return source.WalkOptions{}, configInvalid(err.Error())
	}
	regexLimit, err := parseSize(regexSizeLimit)
	if err != nil {
		return source.WalkOptions{}, configInvalid(err.Error())
	}
	dfaLimit, err := parseSize(dfaSizeLimit)
	if err != nil {
		return source.WalkOptions{}, configInvalid(err.Error())
	}

	return source.WalkOptions{
		Paths:               paths,
		Pattern:             pattern,
		NoIgnore:            noIgnore,
		IgnoreCase:          ignoreCase,
		SmartCase:           smartCase,
		Hidden:              hidden,
		Globs:               allGlobs,
		GlobCaseInsensitive: globCaseInsensitive,
		FixedStrings:        fixedStrings,
		WordBoundary:        wordBoundary,
		LineAnchored:        lineAnchored,
		FollowSymlinks:      followSymlinks,
		Multiline:           multiline,
		DotMatchesNewline:   dotMatchesNewline,
		CRLF:                crlf,
		Unicode:             !noUnicode,
		MaxCount:            maxCount,
		MaxDepth:            maxDepth,
		MaxFileSize:         maxSize,
		RegexSizeLimit:      regexLimit,
		DFASizeLimit:        dfaLimit,
		PCRE2:               pcre2,
		OneFileSystem:       oneFileSystem,
		Invert:              invert,
		MMap:                mmap,
	}, nil
}

func knownType(name string) bool {
	for _, t := range source.KnownTypeNames() {
		if t == name {
			return true
		}
	}
	return false
}

// parseSize parses a size with an optional K/M/G suffix. An empty
// string yields 0; for --max-filesize the walker then applies its
// 100MB default cap.
func parseSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	mult := int64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		mult = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		mult = 1024 * 1024
		s = s[:len(s)-1]
	case 'G', 'g':
		mult = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * mult, nil
}
