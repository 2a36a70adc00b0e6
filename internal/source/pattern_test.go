package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRE2MatcherFindsSimpleMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "hello\nworld\nhello again\n")

	m, err := compilePattern(WalkOptions{Pattern: "hello"})
	require.NoError(t, err)

	limiter := newMaxCountLimiter(0)
	matches, err := m.matchFile(path, WalkOptions{Pattern: "hello"}, limiter)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, 1, matches[0].LineNumber)
	require.Equal(t, 3, matches[1].LineNumber)
}

func TestRE2MatcherSmartCase(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "Hello\nhello\n")

	opts := WalkOptions{Pattern: "hello", SmartCase: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 2, "lowercase pattern under smart-case should match both cases")
}

func TestRE2MatcherSmartCaseWithUppercasePattern(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "Hello\nhello\n")

	opts := WalkOptions{Pattern: "Hello", SmartCase: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 1, "pattern with an uppercase letter forces case-sensitive matching")
}

func TestFixedStringsEscapesMetacharacters(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "a.b\naXb\n")

	opts := WalkOptions{Pattern: "a.b", FixedStrings: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 1, matches[0].LineNumber)
}

func TestWordBoundaryExcludesSubstringMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "cat\nconcatenate\n")

	opts := WalkOptions{Pattern: "cat", WordBoundary: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 1, matches[0].LineNumber)
}

func TestLineAnchoredRequiresFullLineMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "exact\nexact extra\n")

	opts := WalkOptions{Pattern: "exact", LineAnchored: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 1, matches[0].LineNumber)
}

func TestInvertReturnsNonMatchingLines(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "keep\nskip\nkeep\n")

	opts := WalkOptions{Pattern: "skip", Invert: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, 1, matches[0].LineNumber)
	require.Equal(t, 3, matches[1].LineNumber)
}

func TestMaxCountLimiterStopsEarly(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "x\nx\nx\nx\n")

	opts := WalkOptions{Pattern: "x"}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	limiter := newMaxCountLimiter(2)
	matches, err := m.matchFile(path, opts, limiter)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.True(t, limiter.exhausted())
}

func TestMultilineMatchSpansMultipleLines(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "begin\nmiddle\nend\n")

	opts := WalkOptions{Pattern: `begin\nmiddle\nend`, Multiline: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 3)
	require.Equal(t, []int{1, 2, 3}, []int{matches[0].LineNumber, matches[1].LineNumber, matches[2].LineNumber})
}

func TestBinaryFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.bin", "hello\x00world\n")

	opts := WalkOptions{Pattern: "hello"}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Nil(t, matches)
}

func TestPCRE2EngineFindsMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "foofoo\nbar\n")

	opts := WalkOptions{Pattern: `(\w+)\1`, PCRE2: true}
	m, err := compilePattern(opts)
	require.NoError(t, err)

	matches, err := m.matchFile(path, opts, newMaxCountLimiter(0))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 1, matches[0].LineNumber)
}

func TestInvalidPatternReturnsError(t *testing.T) {
	_, err := compilePattern(WalkOptions{Pattern: "("})
	require.Error(t, err)
}
