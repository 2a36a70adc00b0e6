// pattern.go compiles the embedded walker's search pattern under one of
// two regex engines and applies it to file contents, producing GrepMatch
// values.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// matcher finds matches within one file's contents.
type matcher interface {
	matchFile(path string, opts WalkOptions, limiter *maxCountLimiter) ([]GrepMatch, error)
}

// compilePattern builds the matcher implied by opts: the default RE2
// engine (stdlib regexp), or regexp2 when -P requests PCRE2-like behavior
// (backreferences, lookaround) that RE2 cannot express.
func compilePattern(opts WalkOptions) (matcher, error) {
	pattern := buildPatternText(opts)

	if opts.PCRE2 {
		reopts := regexp2.None
		if opts.IgnoreCase || (opts.SmartCase && isAllLower(opts.Pattern)) {
			reopts |= regexp2.IgnoreCase
		}
		if opts.Multiline {
			reopts |= regexp2.Multiline
		}
		if opts.DotMatchesNewline {
			reopts |= regexp2.Singleline
		}
		re, err := regexp2.Compile(pattern, reopts)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		return &regexp2Matcher{re: re, opts: opts}, nil
	}

	flags := ""
	if opts.IgnoreCase || (opts.SmartCase && isAllLower(opts.Pattern)) {
		flags += "i"
	}
	if opts.Multiline {
		flags += "m"
	}
	if opts.DotMatchesNewline {
		flags += "s"
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}
	return &re2Matcher{re: re, opts: opts}, nil
}

func buildPatternText(opts WalkOptions) string {
	p := opts.Pattern
	if opts.FixedStrings {
		p = regexp.QuoteMeta(p)
	}
	if opts.WordBoundary {
		p = `\b(?:` + p + `)\b`
	}
	if opts.LineAnchored {
		p = `^(?:` + p + `)$`
	}
	return p
}

func isAllLower(pattern string) bool {
	return pattern == strings.ToLower(pattern)
}

// re2Matcher applies a stdlib regexp line by line (or, in multiline mode,
// to the whole file).
type re2Matcher struct {
	re   *regexp.Regexp
	opts WalkOptions
}

func (m *re2Matcher) matchFile(path string, opts WalkOptions, limiter *maxCountLimiter) ([]GrepMatch, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if looksBinary(content) {
		return nil, nil
	}

	if opts.Multiline {
		return multilineMatches(content, limiter, func(b []byte) [][]int {
			return m.re.FindAllIndex(b, -1)
		})
	}
	return lineMatches(content, opts, limiter, func(line []byte) [][]int {
		return m.re.FindAllIndex(line, -1)
	})
}

// regexp2Matcher applies a regexp2.Regexp, which has a different find-all
// API shape than stdlib regexp (iterator-based rather than slice-based).
type regexp2Matcher struct {
	re   *regexp2.Regexp
	opts WalkOptions
}

func (m *regexp2Matcher) matchFile(path string, opts WalkOptions, limiter *maxCountLimiter) ([]GrepMatch, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if looksBinary(content) {
		return nil, nil
	}

	findAll := func(b []byte) [][]int {
		var spans [][]int
		s := string(b)
		m2, err := m.re.FindStringMatch(s)
		for err == nil && m2 != nil {
			spans = append(spans, []int{m2.Index, m2.Index + m2.Length})
			m2, err = m.re.FindNextMatch(m2)
		}
		return spans
	}

	if opts.Multiline {
		return multilineMatches(content, limiter, findAll)
	}
	return lineMatches(content, opts, limiter, findAll)
}

// looksBinary applies ripgrep's common heuristic: a NUL byte in the first
// chunk of the file means "treat as binary, skip".
func looksBinary(content []byte) bool {
	n := len(content)
	if n > 8192 {
		n = 8192
	}
	return bytes.IndexByte(content[:n], 0) >= 0
}

// lineMatches scans content line by line, applying findAll to each line
// and honoring Invert and the max-count limiter.
func lineMatches(content []byte, opts WalkOptions, limiter *maxCountLimiter, findAll func([]byte) [][]int) ([]GrepMatch, error) {
	var out []GrepMatch
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if limiter.exhausted() {
			break
		}
		line := scanner.Bytes()
		if opts.CRLF {
			line = bytes.TrimSuffix(line, []byte("\r"))
		}
		spans := findAll(line)

		if opts.Invert {
			if len(spans) == 0 {
				if limiter.take(1) == 1 {
					out = append(out, GrepMatch{LineNumber: lineNum})
				}
			}
			continue
		}
		if len(spans) == 0 {
			continue
		}
		if limiter.take(1) == 0 {
			break
		}
		ranges := make([]Range, len(spans))
		for i, s := range spans {
			ranges[i] = Range{Start: s[0], End: s[1]}
		}
		out = append(out, GrepMatch{LineNumber: lineNum, Ranges: ranges})
	}
	return out, scanner.Err()
}

// multilineMatches applies findAll across the whole file content, mapping
// each match's byte span onto the lines it covers and emitting a
// GrepMatch for every one of those lines: a match spanning N lines
// produces N successive line numbers.
func multilineMatches(content []byte, limiter *maxCountLimiter, findAll func([]byte) [][]int) ([]GrepMatch, error) {
	spans := findAll(content)
	if len(spans) == 0 {
		return nil, nil
	}

	lineStarts := lineStartOffsets(content)

	var out []GrepMatch
	for _, s := range spans {
		if limiter.take(1) == 0 {
			break
		}
		startLine := lineForOffset(lineStarts, s[0])
		endLine := lineForOffset(lineStarts, max0(s[1]-1, s[0]))
		for ln := startLine; ln <= endLine; ln++ {
			out = append(out, GrepMatch{LineNumber: ln})
		}
	}
	return out, nil
}

func lineStartOffsets(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineForOffset(lineStarts []int, offset int) int {
	// lineStarts is ascending; find the last start <= offset.
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1 // 1-based line number
}

func max0(a, b int) int {
	if a > b {
		return a
	}
	return b
}
