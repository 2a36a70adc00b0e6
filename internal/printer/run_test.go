package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jpl-au/hgrep/internal/chunk"
)

// stubPrinter renders each file's path repeated enough to make torn
// writes visible.
type stubPrinter struct {
	fail map[string]error
}

func (p *stubPrinter) Print(f *chunk.File) ([]byte, error) {
	if err := p.fail[f.Path]; err != nil {
		return nil, err
	}
	return []byte(strings.Repeat(f.Path+"\n", 20)), nil
}

func testFiles(n int) []*chunk.File {
	files := make([]*chunk.File, n)
	for i := range files {
		files[i] = &chunk.File{Path: fmt.Sprintf("file-%02d", i)}
	}
	return files
}

func TestRunWritesEachFileContiguously(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})

	files := testFiles(10)
	err := Run(context.Background(), w, &stubPrinter{}, "syntect", files, RunOptions{Concurrency: 4})
	require.NoError(t, err)

	out := buf.String()
	for _, f := range files {
		require.Contains(t, out, strings.Repeat(f.Path+"\n", 20), "file %s must appear as one contiguous block", f.Path)
	}
}

func TestRunBrokenPipeWriterIsSuccess(t *testing.T) {
	// A writer that fails with EPIPE on every write still yields success:
	// the reader went away, which is how terminal pipelines normally end.
	w := writerFunc(func(p []byte) (int, error) {
		return 0, syscall.EPIPE
	})
	err := Run(context.Background(), w, &stubPrinter{}, "syntect", testFiles(3), RunOptions{})
	require.NoError(t, err)
}

func TestRunPropagatesFirstRenderError(t *testing.T) {
	boom := errors.New("boom")
	p := &stubPrinter{fail: map[string]error{"file-01": boom}}
	err := Run(context.Background(), &bytes.Buffer{}, p, "syntect", testFiles(3), RunOptions{FirstErrorAborts: true})
	require.ErrorIs(t, err, boom)
}

func TestRunToleratesPerFileBrokenPipe(t *testing.T) {
	p := &stubPrinter{fail: map[string]error{"file-00": syscall.EPIPE}}
	var buf bytes.Buffer
	err := Run(context.Background(), &buf, p, "syntect", testFiles(2), RunOptions{})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "file-01")
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
