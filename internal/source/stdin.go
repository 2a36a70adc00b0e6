// stdin.go parses the grep-text match source: lines of the form
// "path:lnum:rest" read from stdin, one match per line, the format grep
// and ripgrep emit with line numbers on. Column ranges are never present
// in this format, so the region engine falls back to match-line styling
// for these matches.
package source

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/hgrep/internal/hgerr"
)

// ScanStdin reads "path:lnum:rest" records from r, one per line, calling fn
// for each successfully parsed GrepMatch in order. It stops and returns the
// first parse error encountered or the first non-nil error fn returns; no
// further records are produced after either.
func ScanStdin(r io.Reader, fn func(GrepMatch) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		m, err := ParseLine(scanner.Bytes())
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ParseLine parses a single "path:lnum:rest" record.
//
// The path is the bytes before the first colon, lnum the bytes between the
// first and second colons parsed as an unsigned integer, and rest (the
// bytes after the second colon) is discarded. Path bytes are converted to a
// filesystem path using the host's native encoding (see
// pathdecode_unix.go and pathdecode_windows.go).
func ParseLine(line []byte) (GrepMatch, error) {
	s := string(line)

	firstColon := strings.IndexByte(s, ':')
	if firstColon < 0 {
		return GrepMatch{}, hgerr.ParseInput(s, "Path or line number is missing")
	}
	pathPart := s[:firstColon]
	rest := s[firstColon+1:]

	secondColon := strings.IndexByte(rest, ':')
	if secondColon < 0 {
		return GrepMatch{}, hgerr.ParseInput(s, "Path or line number is missing")
	}
	lnumPart := rest[:secondColon]

	if pathPart == "" || lnumPart == "" {
		return GrepMatch{}, hgerr.ParseInput(s, "Path or line number is empty")
	}

	lnum, err := strconv.ParseUint(lnumPart, 10, 64)
	if err != nil {
		return GrepMatch{}, hgerr.ParseInput(s, "Could not parse line number as unsigned integer")
	}

	return GrepMatch{
		Path:       DecodePath(pathPart),
		LineNumber: int(lnum),
	}, nil
}
