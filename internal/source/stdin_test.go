package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLineWellFormed(t *testing.T) {
	m, err := ParseLine([]byte("/a/b.txt:42: hello"))
	require.NoError(t, err)
	require.Equal(t, GrepMatch{Path: "/a/b.txt", LineNumber: 42}, m)
}

func TestParseLineEmptyPathAndLineNumber(t *testing.T) {
	_, err := ParseLine([]byte("::"))
	require.ErrorContains(t, err, "Path or line number is empty")
}

func TestParseLineNonNumericLineNumber(t *testing.T) {
	_, err := ParseLine([]byte("/a:x: y"))
	require.ErrorContains(t, err, "Could not parse line number as unsigned integer")
}

func TestParseLineMissingSecondColon(t *testing.T) {
	_, err := ParseLine([]byte("/a/b.txt"))
	require.ErrorContains(t, err, "Path or line number is missing")
}

func TestScanStdinStopsOnFirstError(t *testing.T) {
	input := "a.txt:1:ok\nbad-line\nb.txt:2:ok\n"
	var got []GrepMatch
	err := ScanStdin(strings.NewReader(input), func(m GrepMatch) error {
		got = append(got, m)
		return nil
	})
	require.Error(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a.txt", got[0].Path)
}

func TestScanStdinPropagatesCallbackError(t *testing.T) {
	input := "a.txt:1:ok\nb.txt:2:ok\n"
	boom := errFixture("boom")
	err := ScanStdin(strings.NewReader(input), func(m GrepMatch) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
