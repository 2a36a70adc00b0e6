// run.go implements the parallel per-file print pipeline: one worker per
// file renders into a private buffer, and writes are serialized onto the
// shared Output under its lock, so parsing and highlighting of different
// files overlap while their bytes never interleave.
package printer

import (
	"context"
	"io"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/hgrep/internal/auditlog"
	"github.com/jpl-au/hgrep/internal/chunk"
	"github.com/jpl-au/hgrep/internal/hgerr"
)

// RunOptions configures the Run orchestrator.
type RunOptions struct {
	Concurrency int // <= 0 means runtime.NumCPU()

	// FirstErrorAborts stops scheduling new files once one worker returns
	// a non-BrokenPipe error, matching grep-like tools that exit early on
	// the first unreadable file rather than printing a final summary of
	// every failure.
	FirstErrorAborts bool
}

// Run renders files through p and writes each one to w as soon as its
// render finishes, so files appear in no fixed order. Rendering is parallel; writes are serialized via an Output lock so two
// files' bytes are never interleaved. A BrokenPipe error from any one
// file's Print is tolerated (the reader went away) and does not abort
// the remaining files; any other error aborts once FirstErrorAborts is
// set, otherwise every file is still attempted and the first error is
// returned after all workers finish.
func Run(ctx context.Context, w io.Writer, p Printer, printerName string, files []*chunk.File, opts RunOptions) error {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = max(1, runtime.NumCPU())
	}

	out := NewOutput(w)
	var aborted atomic.Bool

	totalChunks, totalMatches := 0, 0
	for _, f := range files {
		totalChunks += len(f.Chunks)
		totalMatches += len(f.LineMatches)
	}
	audit := auditlog.Run(printerName).Files(len(files)).Chunks(totalChunks).Matches(totalMatches)

	g, gctx := errgroup.WithContext(ctx)
	if !opts.FirstErrorAborts {
		// One file's error must not cancel the others; only the caller's
		// ctx stops scheduling.
		g, gctx = new(errgroup.Group), ctx
	}
	g.SetLimit(concurrency)

	for _, f := range files {
		f := f
		g.Go(func() error {
			if opts.FirstErrorAborts && aborted.Load() {
				return nil
			}
			select {
			case <-gctx.Done():
				return nil
			default:
			}

			b, err := p.Print(f)
			if err != nil {
				if hgerr.IsBrokenPipe(err) {
					return nil
				}
				if opts.FirstErrorAborts {
					aborted.Store(true)
				}
				return err
			}
			if len(b) == 0 {
				return nil
			}

			guard := out.Lock()
			_, werr := guard.Write(b)
			guard.Unlock()
			if werr != nil {
				if hgerr.IsBrokenPipe(werr) {
					return nil
				}
				return werr
			}
			return nil
		})
	}

	err := g.Wait()
	audit.Write(err)
	return err
}
