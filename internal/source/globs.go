// globs.go applies the -g/--glob override set, using doublestar for **
// support beyond what path/filepath.Match offers.
package source

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
)

// matchesGlobOverrides reports whether path should be included given the
// configured glob override set. Following ripgrep's convention, negated
// globs (prefixed with "!") exclude a file that an earlier positive glob
// included, the last matching glob wins, and a set containing only
// negations includes everything the negations don't hit.
func matchesGlobOverrides(path string, opts WalkOptions) bool {
	slashPath := toSlash(path)
	fold := cases.Fold()
	if opts.GlobCaseInsensitive {
		slashPath = fold.String(slashPath)
	}

	hasPositive := false
	for _, g := range opts.Globs {
		if !strings.HasPrefix(g, "!") {
			hasPositive = true
			break
		}
	}

	matched := !hasPositive
	for _, g := range opts.Globs {
		pattern := g
		negate := strings.HasPrefix(pattern, "!")
		if negate {
			pattern = pattern[1:]
		}
		if opts.GlobCaseInsensitive {
			pattern = fold.String(pattern)
		}
		ok, err := doublestar.Match(pattern, slashPath)
		if err != nil {
			continue
		}
		if !ok {
			// Also allow bare basename globs like "*.go" to match anywhere.
			ok, _ = doublestar.Match(pattern, baseName(slashPath))
		}
		if ok {
			matched = !negate
		}
	}
	return matched
}

func toSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

func baseName(slashPath string) string {
	if idx := strings.LastIndexByte(slashPath, '/'); idx >= 0 {
		return slashPath[idx+1:]
	}
	return slashPath
}
