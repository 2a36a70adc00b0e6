package hgerr

import (
	"errors"
	"io/fs"
	"syscall"
)

// IsBrokenPipe reports whether err is, or wraps, a broken-pipe I/O error.
// A broken pipe on the final flush is recovered as success: the reader
// (e.g. `head`, `less`) closed the pipe, which is a normal way for a
// terminal pipeline to end, not a rendering failure.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EPIPE) {
		return true
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr.Err, syscall.EPIPE)
	}
	return false
}
