// syntax.go resolves which syntax a file is highlighted under.
package render

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// extensionOverrides wins over whatever the lexer registry would pick
// for these extensions.
var extensionOverrides = map[string]string{
	"fs":  "F#",
	"h":   "C++",
	"pac": "JavaScript (Babel)",
}

// filenameOverrides is the filename override table.
var filenameOverrides = map[string]string{
	".clang-format": "YAML",
}

// SelectSyntax resolves the lexer name for path, in priority order:
// extension override, filename override, first-line/extension match,
// plain text fallback.
func SelectSyntax(path string, firstLine string) string {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	if name, ok := extensionOverrides[ext]; ok {
		return name
	}
	if name, ok := filenameOverrides[base]; ok {
		return name
	}

	if lex := lexers.Match(path); lex != nil {
		return lex.Config().Name
	}
	if firstLine != "" {
		if lex := lexers.Analyse(firstLine); lex != nil {
			return lex.Config().Name
		}
	}
	return "plaintext"
}

// LexerFor resolves the chroma lexer for a syntax name selected above.
func LexerFor(name string) chroma.Lexer {
	if lex := lexers.Get(name); lex != nil {
		return chroma.Coalesce(lex)
	}
	return lexers.Fallback
}
