// ignore.go implements the walker's ignore-file chain: .gitignore
// (including parent directories' and the global gitignore), .ignore,
// and .rgignore.
package source

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreChain holds the compiled ignore matchers collected while walking,
// keyed by "dir\x00filename" so each ignore file on disk is parsed once
// even though many paths walk past it.
type ignoreChain struct {
	global *gitignore.GitIgnore // ~/.config/git/ignore or core.excludesFile
	perDir map[string]*gitignore.GitIgnore
	seen   map[string]bool
}

func loadIgnoreChain(opts WalkOptions) (*ignoreChain, error) {
	chain := &ignoreChain{perDir: make(map[string]*gitignore.GitIgnore), seen: make(map[string]bool)}
	if opts.NoIgnore {
		return chain, nil
	}
	chain.global = loadGlobalGitignore()
	return chain, nil
}

// dirIgnored reports whether dir itself should be skipped (and its
// subtree never walked) because some ancestor's ignore file excludes it.
func (c *ignoreChain) dirIgnored(dir string) bool {
	return c.matched(dir, true)
}

// fileIgnored reports whether path should be excluded from the result set.
func (c *ignoreChain) fileIgnored(path string) bool {
	return c.matched(path, false)
}

func (c *ignoreChain) matched(path string, isDir bool) bool {
	if c.global != nil && c.global.MatchesPath(path) {
		return true
	}
	dir := filepath.Dir(path)
	for {
		for _, name := range []string{".gitignore", ".ignore", ".rgignore"} {
			ig := c.loadDirFile(dir, name)
			if ig == nil {
				continue
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = path
			}
			if ig.MatchesPath(filepath.ToSlash(rel)) {
				return true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return false
}

// loadDirFile lazily loads and caches name within dir, returning nil if it
// doesn't exist or failed to parse.
func (c *ignoreChain) loadDirFile(dir, name string) *gitignore.GitIgnore {
	key := dir + "\x00" + name
	if c.seen[key] {
		return c.perDir[key]
	}
	c.seen[key] = true
	ig, err := gitignore.CompileIgnoreFile(filepath.Join(dir, name))
	if err != nil {
		return nil
	}
	c.perDir[key] = ig
	return ig
}

// loadGlobalGitignore resolves git's core.excludesFile, falling back to
// ~/.config/git/ignore, matching git's own resolution order.
func loadGlobalGitignore() *gitignore.GitIgnore {
	if path := globalExcludesFileFromGitConfig(); path != "" {
		if ig, err := gitignore.CompileIgnoreFile(path); err == nil {
			return ig
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	ig, err := gitignore.CompileIgnoreFile(filepath.Join(home, ".config", "git", "ignore"))
	if err != nil {
		return nil
	}
	return ig
}

func globalExcludesFileFromGitConfig() string {
	out, err := exec.Command("git", "config", "--global", "core.excludesFile").Output()
	if err != nil {
		return ""
	}
	path := strings.TrimSpace(string(out))
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}
