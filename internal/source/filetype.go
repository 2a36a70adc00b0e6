// filetype.go implements the -t/-T/--type-list file-type filters,
// translating ripgrep-style type names into the glob override set
// globs.go already knows how to apply.
package source

import "sort"

// fileTypes is a small, fixed registry mapping a type name to the globs
// it expands to. Not exhaustive (ripgrep ships hundreds); covers the
// common languages hgrep is likely to be pointed at.
var fileTypes = map[string][]string{
	"go":         {"*.go"},
	"py":         {"*.py", "*.pyi"},
	"js":         {"*.js", "*.jsx", "*.mjs", "*.cjs"},
	"ts":         {"*.ts", "*.tsx"},
	"rust":       {"*.rs"},
	"c":          {"*.c", "*.h"},
	"cpp":        {"*.cpp", "*.cc", "*.cxx", "*.hpp", "*.hh"},
	"java":       {"*.java"},
	"rb":         {"*.rb"},
	"php":        {"*.php"},
	"sh":         {"*.sh", "*.bash", "*.zsh"},
	"md":         {"*.md", "*.markdown"},
	"yaml":       {"*.yaml", "*.yml"},
	"json":       {"*.json"},
	"toml":       {"*.toml"},
	"html":       {"*.html", "*.htm"},
	"css":        {"*.css", "*.scss", "*.sass"},
	"sql":        {"*.sql"},
	"proto":      {"*.proto"},
	"dockerfile": {"Dockerfile", "*.dockerfile"},
}

// KnownTypeNames returns the registered type names in sorted order, for
// --type-list and shell completion.
func KnownTypeNames() []string {
	names := make([]string, 0, len(fileTypes))
	for name := range fileTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeGlobs expands a list of -t/-T type names into the glob patterns
// registered for them. Unknown names are skipped: the caller already
// validated against KnownTypeNames before reaching the walker.
func TypeGlobs(names []string) []string {
	var globs []string
	for _, name := range names {
		globs = append(globs, fileTypes[name]...)
	}
	return globs
}
