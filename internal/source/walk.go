// walk.go implements the embedded walker match source: it drives a
// directory walk honoring ignore files, compiles the search pattern under
// one of two regex engines, and emits GrepMatch values in parallel across
// files while respecting a process-wide max-match budget. Per-file search
// concurrency is bounded by an errgroup rather than an unbounded
// goroutine-per-file fan-out.
package source

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// WalkOptions configures the embedded walker, covering the embedded-mode
// CLI flag group.
type WalkOptions struct {
	Paths   []string // one or more starting paths; empty means "."
	Pattern string

	NoIgnore            bool // --no-ignore: don't honor .gitignore/.ignore/.rgignore
	IgnoreCase          bool // -i
	SmartCase           bool // -S: case-insensitive only when pattern is all lowercase
	Hidden              bool // -.: include hidden files
	Globs               []string
	GlobCaseInsensitive bool
	FixedStrings        bool // -F
	WordBoundary        bool // -w
	LineAnchored        bool // -x
	FollowSymlinks      bool // -L
	Multiline           bool // -U
	DotMatchesNewline   bool // --multiline-dotall
	CRLF                bool
	Unicode             bool // default true; --no-unicode disables
	MaxCount            int  // -m, 0 means unlimited
	MaxDepth            int  // 0 means unlimited
	MaxFileSize         int64
	RegexSizeLimit      int64
	DFASizeLimit        int64
	PCRE2               bool // -P: use the regexp2 engine instead of RE2
	OneFileSystem       bool
	Invert              bool // -v
	MMap                bool // advisory only; files are always read with os.ReadFile
	Concurrency         int  // 0 means a runtime.NumCPU()-sized default
}

const defaultMaxFileSize = 100 * 1024 * 1024 // 100MB, matches ripgrep's sane default

// Walk drives the directory walk and calls fn once per matching file with
// its GrepMatch list. Files are processed concurrently, so fn may be called
// from multiple goroutines and the caller must synchronize if needed;
// within one file's match list, matches are in ascending line order. Walk
// stops dispatching new work once the global max-count budget (if any) is
// exhausted, though in-flight files still complete.
func Walk(opts WalkOptions, fn func(path string, matches []GrepMatch) error) error {
	matcher, err := compilePattern(opts)
	if err != nil {
		return err
	}

	ignores, err := loadIgnoreChain(opts)
	if err != nil {
		return err
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	limiter := newMaxCountLimiter(opts.MaxCount)

	var files []string
	for _, root := range paths {
		if err := walkCollect(root, opts, ignores, &files); err != nil {
			return err
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = max(1, runtime.NumCPU())
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, path := range files {
		path := path
		g.Go(func() error {
			if limiter.exhausted() {
				return nil
			}
			matches, err := matcher.matchFile(path, opts, limiter)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return nil
			}
			return fn(path, matches)
		})
	}
	return g.Wait()
}

// walkCollect appends every file under root that passes the ignore chain,
// hidden-file policy, depth cap, symlink policy, and size cap.
func walkCollect(root string, opts WalkOptions, ignores *ignoreChain, out *[]string) error {
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != root && !opts.Hidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && opts.MaxDepth > 0 {
				depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
				if depth > opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			if !opts.NoIgnore && ignores.dirIgnored(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 && !opts.FollowSymlinks {
			return nil
		}

		if !opts.NoIgnore && ignores.fileIgnored(path) {
			return nil
		}

		if len(opts.Globs) > 0 && !matchesGlobOverrides(path, opts) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // vanished between walk and stat; skip rather than fail the whole run
		}
		maxSize := opts.MaxFileSize
		if maxSize <= 0 {
			maxSize = defaultMaxFileSize
		}
		if info.Size() > maxSize {
			return nil
		}

		*out = append(*out, path)
		return nil
	})
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
