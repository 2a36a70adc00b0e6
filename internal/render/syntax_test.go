package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectSyntaxExtensionOverrides(t *testing.T) {
	require.Equal(t, "F#", SelectSyntax("lib/query.fs", ""))
	require.Equal(t, "C++", SelectSyntax("src/header.h", ""))
	require.Equal(t, "JavaScript (Babel)", SelectSyntax("proxy.pac", ""))
}

func TestSelectSyntaxFilenameOverrides(t *testing.T) {
	require.Equal(t, "YAML", SelectSyntax("/repo/.clang-format", ""))
}

func TestSelectSyntaxByExtension(t *testing.T) {
	require.Equal(t, "Go", SelectSyntax("main.go", ""))
	require.Equal(t, "Python", SelectSyntax("tool.py", ""))
}

func TestSelectSyntaxFirstLineFallback(t *testing.T) {
	require.Equal(t, "Bash", SelectSyntax("run", "#!/bin/bash"))
}

func TestSelectSyntaxPlainTextFallback(t *testing.T) {
	require.Equal(t, "plaintext", SelectSyntax("notes.unknownext", ""))
}

func TestLexerForUnknownNameFallsBack(t *testing.T) {
	require.NotNil(t, LexerFor("no-such-syntax"))
}
