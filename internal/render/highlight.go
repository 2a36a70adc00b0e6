// highlight.go owns per-file highlight state.
//
// chroma (github.com/alecthomas/chroma/v2) tokenizes a whole source text
// in one pass rather than exposing an incremental per-line API.
// LineHighlighter reconciles this with line-at-a-time drawing by
// tokenizing the full file once up front and then exposing a monotonic,
// line-indexed read cursor over the result: SkipLine and Highlight both
// simply advance the cursor, so state still threads linearly and lines
// cannot be consumed out of order.
package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// TokenStyle is the resolved style of one Token. The foreground is
// already blended against the background, so color emission downstream
// never re-blends.
type TokenStyle struct {
	Fg     Color
	Bold   bool
	Italic bool
}

// Token is one styled run of text within a line.
type Token struct {
	Text  string
	Style TokenStyle
}

// LineHighlighter owns the tokenized form of one file and a cursor over
// its lines. It must be fed every line from 1 up to the last rendered
// chunk's last line, in order; SkipLine discards a line's tokens,
// Highlight returns them.
type LineHighlighter struct {
	lines     [][]Token
	nextLine  int // 1-based index of the next line this highlighter will serve
}

// NewLineHighlighter tokenizes contents against lexer and style, splitting
// the token stream back onto line boundaries.
func NewLineHighlighter(lexer chroma.Lexer, style *chroma.Style, bg Color, contents string) (*LineHighlighter, error) {
	iterator, err := lexer.Tokenise(nil, contents)
	if err != nil {
		return nil, err
	}

	lines := [][]Token{{}}
	for _, tok := range iterator.Tokens() {
		entry := style.Get(tok.Type)
		tstyle := TokenStyle{
			Fg:     blendFg(chromaColorToColor(entry.Colour), bg),
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		segments := strings.SplitAfter(tok.Value, "\n")
		for i, seg := range segments {
			if seg == "" {
				continue
			}
			// seg carries its own trailing "\n" from SplitAfter; strip it so
			// line token text never includes the newline character itself;
			// the drawer walks only the visible content of each line.
			text := strings.TrimSuffix(seg, "\n")
			if text != "" {
				cur := len(lines) - 1
				lines[cur] = append(lines[cur], Token{Text: text, Style: tstyle})
			}
			if i < len(segments)-1 {
				lines = append(lines, []Token{})
			}
		}
	}

	return &LineHighlighter{lines: lines, nextLine: 1}, nil
}

// NumLines reports the total number of lines the highlighter was
// tokenized over, i.e. the highest line number the cursor can be
// advanced to.
func (h *LineHighlighter) NumLines() int {
	return len(h.lines)
}

// SkipLine advances the cursor over one line without returning its
// tokens, used to fast-forward syntactic state over lines preceding the
// first visible chunk and between chunks.
func (h *LineHighlighter) SkipLine() {
	h.advance()
}

// Highlight advances the cursor and returns the tokens for that line.
func (h *LineHighlighter) Highlight() []Token {
	return h.advance()
}

func (h *LineHighlighter) advance() []Token {
	idx := h.nextLine - 1
	if idx < 0 || idx >= len(h.lines) {
		panic("render: LineHighlighter advanced past the end of file")
	}
	h.nextLine++
	return h.lines[idx]
}
