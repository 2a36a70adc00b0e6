package hgerr

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInputCarriesReasonAndLine(t *testing.T) {
	err := ParseInput("bad:line", "Path or line number is empty")
	require.ErrorIs(t, err, ErrParseInput)
	require.ErrorContains(t, err, "Path or line number is empty")
	require.ErrorContains(t, err, `"bad:line"`)
}

func TestPrintFailureWrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := PrintFailure("/a/b.txt", cause)
	require.ErrorIs(t, err, ErrPrintFailure)
	require.ErrorIs(t, err, cause)
	require.ErrorContains(t, err, "/a/b.txt")
}

func TestThemeUnknownMessageAndClassification(t *testing.T) {
	err := ThemeUnknown("Dracula 9000")
	require.ErrorIs(t, err, ErrThemeUnknown)
	require.EqualError(t, err, "Unknown theme 'Dracula 9000'. See --list-themes output")
}

func TestCausesUnwrapsChain(t *testing.T) {
	inner := errors.New("inner failure")
	mid := fmt.Errorf("mid layer: %w", inner)
	outer := fmt.Errorf("outer: %w", mid)

	causes := Causes(outer)
	require.Len(t, causes, 2)
	require.Contains(t, causes[1], "inner failure")
}

func TestCausesSingleErrorHasNone(t *testing.T) {
	require.Nil(t, Causes(errors.New("alone")))
}

func TestIsBrokenPipe(t *testing.T) {
	require.True(t, IsBrokenPipe(syscall.EPIPE))
	require.True(t, IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)))
	require.True(t, IsBrokenPipe(&fs.PathError{Op: "write", Path: "stdout", Err: syscall.EPIPE}))
	require.False(t, IsBrokenPipe(errors.New("other")))
	require.False(t, IsBrokenPipe(nil))
}
