package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"123", 123},
		{"10K", 10 * 1024},
		{"10k", 10 * 1024},
		{"5M", 5 * 1024 * 1024},
		{"2G", 2 * 1024 * 1024 * 1024},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.in)
		require.NoError(t, err, "parseSize(%q)", tt.in)
		require.Equal(t, tt.want, got, "parseSize(%q)", tt.in)
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "12Q3", "K"} {
		_, err := parseSize(in)
		require.Error(t, err, "parseSize(%q)", in)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	require.Equal(t, "a", firstNonEmpty("a", "b"))
	require.Equal(t, "b", firstNonEmpty("", "b"))
	require.Empty(t, firstNonEmpty("", ""))
}

func TestKnownType(t *testing.T) {
	require.True(t, knownType("go"))
	require.False(t, knownType("cobol-2026"))
}

func TestGenerateCompletionScriptRejectsUnknownShell(t *testing.T) {
	err := generateCompletionScript("tcsh")
	require.ErrorContains(t, err, "unknown shell")
}
