/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from flags.go to isolate cobra setup from flag definitions.
//
// Design: the root command auto-detects grep-text mode (stdin piped, no
// positional PATTERN) versus embedded-walker mode (a PATTERN argument is
// given), then drives the shared chunk -> printer pipeline either way.
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jpl-au/hgrep/internal/auditlog"
	"github.com/jpl-au/hgrep/internal/chunk"
	"github.com/jpl-au/hgrep/internal/hgconfig"
	"github.com/jpl-au/hgrep/internal/hgerr"
	"github.com/jpl-au/hgrep/internal/printer"
	"github.com/jpl-au/hgrep/internal/render"
	"github.com/jpl-au/hgrep/internal/source"
)

var rootCmd = &cobra.Command{
	Use:   "hgrep [PATTERN] [PATH...]",
	Short: "Render grep matches as human-friendly, syntax-highlighted context",
	Long: `hgrep turns grep-style matches into syntax-highlighted file excerpts
with a gutter, match highlighting, and merged context windows.

Given a PATTERN, hgrep walks PATH (default: the current directory) itself.
With no PATTERN and stdin piped in, it instead reads "path:line:text"
records (one match per line) from stdin and renders those.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
}

func init() {
	rootCmd.RunE = runRoot
}

func configInvalid(msg string) error {
	return hgerr.ConfigInvalid("%s", msg)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if generateCompletionShell != "" {
		return generateCompletionScript(generateCompletionShell)
	}
	if listThemes {
		return runListThemes(cmd.OutOrStdout())
	}
	if typeList {
		return runTypeList(cmd.OutOrStdout())
	}

	cfg, err := hgconfig.Load()
	if err != nil {
		return err
	}

	popts, err := resolvePrinterOptions(cfg)
	if err != nil {
		return err
	}

	minCtx := minContext
	maxCtx := maxContext
	if !cmd.Flags().Changed("max-context") && cfg.MaxContext != nil {
		maxCtx = *cfg.MaxContext
	}
	if !cmd.Flags().Changed("min-context") && cfg.MinContext != nil {
		minCtx = *cfg.MinContext
	}
	if minCtx < 0 {
		return configInvalid(fmt.Sprintf("min-context must be >= 0, got %d", minCtx))
	}
	if maxCtx < minCtx {
		maxCtx = minCtx
	}

	env := hgconfig.LoadEnv()

	var fallback *render.ThemeSet
	if popts.CustomAssets && popts.Printer == "bat" && env.CachePath != "" {
		set, err := render.LoadCustomThemes(env.CachePath)
		if err != nil {
			return hgerr.AssetLoad(err)
		}
		fallback = &set
	}

	var p printer.Printer
	switch popts.Printer {
	case "bat":
		p = printer.NewBatPrinter(popts, fallback, env)
	default:
		p = printer.NewSyntectPrinter(popts, fallback)
	}

	files, err := collectFiles(chunk.Options{MinContext: minCtx, MaxContext: maxCtx}, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errNoMatch
	}

	if err := auditlog.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer auditlog.Close()

	runErr := printer.Run(cmd.Context(), cmd.OutOrStdout(), p, popts.Printer, files, printer.RunOptions{FirstErrorAborts: true})
	if runErr != nil {
		if hgerr.IsBrokenPipe(runErr) {
			return nil
		}
		return runErr
	}
	return nil
}

// errNoMatch signals the "no match found" case, mapped to exit code 1
// rather than 2 by Execute.
var errNoMatch = fmt.Errorf("no matches found")

// collectFiles runs either the stdin grep-text source or the embedded
// walker (depending on args/stdin) through the chunker and returns the
// resulting Files: in input order for stdin, in path order for the walker.
func collectFiles(copts chunk.Options, args []string) ([]*chunk.File, error) {
	if len(args) == 0 && stdinIsPipe() {
		return collectFromStdin(copts)
	}
	if len(args) == 0 {
		return nil, configInvalid("a PATTERN is required when stdin isn't piped")
	}
	pattern := args[0]
	paths := args[1:]
	return collectFromWalk(copts, pattern, paths)
}

func stdinIsPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

func collectFromStdin(copts chunk.Options) ([]*chunk.File, error) {
	ck, err := chunk.New(copts)
	if err != nil {
		return nil, err
	}
	var files []*chunk.File
	scanErr := source.ScanStdin(bufio.NewReader(os.Stdin), func(m source.GrepMatch) error {
		f, err := ck.Add(m)
		if err != nil {
			return err
		}
		if f != nil {
			files = append(files, f)
		}
		return nil
	})
	if scanErr != nil {
		return nil, scanErr
	}
	f, err := ck.Flush()
	if err != nil {
		return nil, err
	}
	if f != nil {
		files = append(files, f)
	}
	return files, nil
}

// collectFromWalk drives the embedded walker, which dispatches per-file
// work concurrently, then replays the collected matches through the
// chunker in path order (the chunker requires single-path, ascending
// sequential input; the walker's own concurrency is for search, not
// rendering order).
func collectFromWalk(copts chunk.Options, pattern string, paths []string) ([]*chunk.File, error) {
	wopts, err := resolveWalkOptions(pattern, paths)
	if err != nil {
		return nil, err
	}

	type fileMatches struct {
		path    string
		matches []source.GrepMatch
	}
	var mu sync.Mutex
	var collected []fileMatches

	walkErr := source.Walk(wopts, func(path string, matches []source.GrepMatch) error {
		mu.Lock()
		collected = append(collected, fileMatches{path: path, matches: matches})
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].path < collected[j].path })

	ck, err := chunk.New(copts)
	if err != nil {
		return nil, err
	}
	var files []*chunk.File
	for _, fm := range collected {
		for _, m := range fm.matches {
			f, err := ck.Add(m)
			if err != nil {
				return nil, err
			}
			if f != nil {
				files = append(files, f)
			}
		}
	}
	f, err := ck.Flush()
	if err != nil {
		return nil, err
	}
	if f != nil {
		files = append(files, f)
	}
	return files, nil
}

func runListThemes(w io.Writer) error {
	names := render.ListThemeNames(nil)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func runTypeList(w io.Writer) error {
	for _, name := range source.KnownTypeNames() {
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(source.TypeGlobs([]string{name}), ", "))
	}
	return nil
}

// Execute runs the root command and maps the result onto hgrep's exit
// codes: 0 on at least one rendered match, 1 on no match, 2 on error.
// Errors are printed as a red "error:" line followed by each chained
// "Caused by:" line.
func Execute() {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		os.Exit(0)
	case err == errNoMatch:
		os.Exit(1)
	default:
		printError(err)
		os.Exit(2)
	}
}

func printError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err.Error())
	for _, cause := range hgerr.Causes(err) {
		fmt.Fprintf(os.Stderr, "  Caused by: %s\n", cause)
	}
}

// RootCmd returns the root command for testing and completion wiring.
func RootCmd() *cobra.Command {
	return rootCmd
}
