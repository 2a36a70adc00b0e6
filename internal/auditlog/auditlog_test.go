package auditlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withTempDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string { return filepath.Join(dir, "hgrep-log.db") }
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func TestOpenAndLogRoundTrip(t *testing.T) {
	withTempDB(t)
	require.NoError(t, Open())
	require.NoError(t, Open()) // safe to call twice

	Run("syntect").Files(3).Chunks(5).Matches(9).Write(nil)

	entries, err := Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "syntect", entries[0].Printer)
	require.Equal(t, 3, entries[0].Files)
	require.True(t, entries[0].Success)
}

func TestLogWithoutOpenIsNoop(t *testing.T) {
	Close()
	Run("bat").Files(1).Write(nil)
	entries, err := Recent(10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWriteRecordsFailure(t *testing.T) {
	withTempDB(t)
	require.NoError(t, Open())

	Run("syntect").Write(assertErr{"boom"})

	entries, err := Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, entries[0].Success)
	require.Equal(t, "boom", entries[0].Error)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
