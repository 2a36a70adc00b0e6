// Package chunk implements the two-level grouping chunker: it turns a
// per-file-ordered stream of source.GrepMatch values into File values
// ready for rendering, merging nearby matches into shared context
// windows.
package chunk

import (
	"fmt"
	"os"
	"sort"

	"github.com/jpl-au/hgrep/internal/source"
)

// Chunk is a closed, 1-based line interval within one File.
type Chunk struct {
	Start int
	End   int
}

// LineMatch is the matched-line form carried through rendering.
type LineMatch struct {
	LineNumber int
	Ranges     []source.Range
}

// File groups every match found in one path together with the line-range
// chunks of context around them and the file's raw contents.
type File struct {
	Path        string
	LineMatches []LineMatch
	Chunks      []Chunk
	Contents    []byte
}

// Options are the chunker's two context radii.
type Options struct {
	MinContext int
	MaxContext int
}

// Chunker accumulates matches for one path at a time and emits a File once
// a later match's path differs from the pending one (or Flush is called).
// It assumes the input stream is grouped by path with ascending line
// numbers within each path.
type Chunker struct {
	opts        Options
	pendingPath string
	pending     []source.GrepMatch
	readFile    func(path string) ([]byte, error)
}

// New constructs a Chunker. MaxContext must be >= MinContext.
func New(opts Options) (*Chunker, error) {
	if opts.MinContext < 0 {
		return nil, fmt.Errorf("min context must be >= 0, got %d", opts.MinContext)
	}
	if opts.MaxContext < opts.MinContext {
		return nil, fmt.Errorf("max context (%d) must be >= min context (%d)", opts.MaxContext, opts.MinContext)
	}
	return &Chunker{opts: opts, readFile: func(path string) ([]byte, error) { return os.ReadFile(path) }}, nil
}

// Add feeds one match into the chunker. It returns a non-nil File when
// adding m closes out the previously pending path.
func (c *Chunker) Add(m source.GrepMatch) (*File, error) {
	if c.pendingPath != "" && m.Path != c.pendingPath {
		f, err := c.flush()
		if err != nil {
			return nil, err
		}
		c.pendingPath = m.Path
		c.pending = []source.GrepMatch{m}
		return f, nil
	}
	c.pendingPath = m.Path
	c.pending = append(c.pending, m)
	return nil, nil
}

// Flush emits the File for whatever path is currently pending, or nil if
// nothing is pending. Call it once after the last Add to drain the final
// File; a caller that stops early on an error simply never calls Flush.
func (c *Chunker) Flush() (*File, error) {
	return c.flush()
}

func (c *Chunker) flush() (*File, error) {
	if len(c.pending) == 0 {
		return nil, nil
	}
	matches := c.pending
	c.pending = nil
	path := c.pendingPath
	c.pendingPath = ""

	contents, err := c.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	lastLine := countLines(contents)

	lineNums := make([]int, len(matches))
	for i, m := range matches {
		lineNums[i] = m.LineNumber
	}

	groups := groupByHeadWindow(lineNums, c.opts.MinContext)
	chunks := expandGroups(groups, c.opts.MaxContext, lastLine)
	chunks = mergeOverlapping(chunks)
	chunks = clipToMaxContext(chunks, lineNums, c.opts.MaxContext)

	lineMatches := make([]LineMatch, len(matches))
	for i, m := range matches {
		lineMatches[i] = LineMatch{LineNumber: m.LineNumber, Ranges: m.Ranges}
	}

	return &File{Path: path, LineMatches: lineMatches, Chunks: chunks, Contents: contents}, nil
}

// groupByHeadWindow implements chunker step 1: the head match anchors a
// window of width 2*minContext; matches are accumulated into the current
// group while the next line number falls inside that window, measured
// from the head (not the most recently accumulated match).
func groupByHeadWindow(lines []int, minContext int) [][]int {
	if len(lines) == 0 {
		return nil
	}
	var groups [][]int
	head := lines[0]
	current := []int{lines[0]}
	for _, ln := range lines[1:] {
		if ln < head+2*minContext {
			current = append(current, ln)
			continue
		}
		groups = append(groups, current)
		head = ln
		current = []int{ln}
	}
	groups = append(groups, current)
	return groups
}

// expandGroups implements chunker step 2's initial expansion: each
// preliminary group becomes one chunk spanning maxContext beyond its
// extreme matches, clamped to the file's line range.
func expandGroups(groups [][]int, maxContext, lastLine int) []Chunk {
	chunks := make([]Chunk, 0, len(groups))
	for _, g := range groups {
		lo, hi := g[0], g[0]
		for _, ln := range g {
			if ln < lo {
				lo = ln
			}
			if ln > hi {
				hi = ln
			}
		}
		start := clamp(lo-maxContext, 1, lastLine)
		end := clamp(hi+maxContext, 1, lastLine)
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}

// mergeOverlapping coalesces chunks whose intervals touch or overlap,
// assuming chunks arrive in ascending order (guaranteed since groups are
// built from an ascending-line-number stream).
func mergeOverlapping(chunks []Chunk) []Chunk {
	if len(chunks) == 0 {
		return nil
	}
	merged := []Chunk{chunks[0]}
	for _, c := range chunks[1:] {
		last := &merged[len(merged)-1]
		if c.Start <= last.End+1 {
			if c.End > last.End {
				last.End = c.End
			}
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

// clipToMaxContext enforces the final invariant that no chunk boundary
// exceeds maxContext from its nearest contained match, in case merging
// distinct preliminary groups extended a chunk past that radius.
func clipToMaxContext(chunks []Chunk, lines []int, maxContext int) []Chunk {
	sorted := append([]int(nil), lines...)
	sort.Ints(sorted)

	out := make([]Chunk, len(chunks))
	for i, c := range chunks {
		nearestToStart := nearestLine(sorted, c.Start)
		nearestToEnd := nearestLine(sorted, c.End)
		start := c.Start
		if nearestToStart-maxContext > start {
			start = nearestToStart - maxContext
		}
		end := c.End
		if nearestToEnd+maxContext < end {
			end = nearestToEnd + maxContext
		}
		out[i] = Chunk{Start: start, End: end}
	}
	return out
}

func nearestLine(sorted []int, at int) int {
	best := sorted[0]
	bestDist := abs(best - at)
	for _, ln := range sorted[1:] {
		if d := abs(ln - at); d < bestDist {
			best, bestDist = ln, d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func countLines(contents []byte) int {
	if len(contents) == 0 {
		return 0
	}
	n := 0
	for _, b := range contents {
		if b == '\n' {
			n++
		}
	}
	if contents[len(contents)-1] != '\n' {
		n++
	}
	return n
}
