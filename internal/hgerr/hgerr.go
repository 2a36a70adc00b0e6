// Package hgerr defines the error kinds shared across hgrep's pipeline and
// the presentation layer that turns them into the CLI's
// "error: ...\n  Caused by: ..." output.
package hgerr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is against these to classify a failure;
// wrap with fmt.Errorf("...: %w", ErrX) or the constructors below to attach
// detail without losing the sentinel.
var (
	// ErrParseInput marks a malformed grep-text input line.
	ErrParseInput = errors.New("parse input")
	// ErrPrintFailure marks a failure rendering or writing a specific file.
	ErrPrintFailure = errors.New("print failure")
	// ErrAssetLoad marks a failure decompressing or deserialising embedded assets.
	ErrAssetLoad = errors.New("asset load")
	// ErrThemeUnknown marks a user-specified theme that could not be found.
	ErrThemeUnknown = errors.New("unknown theme")
	// ErrConfigInvalid marks an invalid CLI or config value.
	ErrConfigInvalid = errors.New("invalid configuration")
)

// ParseInput builds an ErrParseInput error carrying the offending line and reason.
func ParseInput(line, reason string) error {
	return fmt.Errorf("%w: %s: %q", ErrParseInput, reason, line)
}

// PrintFailure builds an ErrPrintFailure error carrying the file path and cause.
func PrintFailure(path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrPrintFailure, path)
	}
	return fmt.Errorf("%w: %s: %w", ErrPrintFailure, path, cause)
}

// AssetLoad builds an ErrAssetLoad error carrying the cause.
func AssetLoad(cause error) error {
	return fmt.Errorf("%w: %w", ErrAssetLoad, cause)
}

// ThemeUnknown builds an ErrThemeUnknown error naming the requested theme.
// The message text is fixed (it is part of the CLI contract), so this uses
// a dedicated type rather than wrapping the sentinel into the string.
func ThemeUnknown(name string) error {
	return themeUnknownError{name: name}
}

type themeUnknownError struct{ name string }

func (e themeUnknownError) Error() string {
	return fmt.Sprintf("Unknown theme '%s'. See --list-themes output", e.name)
}

func (e themeUnknownError) Is(target error) bool { return target == ErrThemeUnknown }

// ConfigInvalid builds an ErrConfigInvalid error with a formatted reason.
func ConfigInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfigInvalid, fmt.Sprintf(format, args...))
}

// Causes unwraps err into a chain of messages suitable for
// "  Caused by: <msg>" presentation, innermost last.
func Causes(err error) []string {
	var out []string
	for err != nil {
		out = append(out, topMessage(err))
		err = errors.Unwrap(err)
	}
	if len(out) <= 1 {
		return nil
	}
	return out[1:]
}

// topMessage returns just err's own message, without any wrapped causes,
// by stripping the text contributed by errors.Unwrap(err) if present.
func topMessage(err error) string {
	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		innerMsg := inner.Error()
		if idx := len(msg) - len(innerMsg); idx > 0 && msg[idx:] == innerMsg {
			return msg[:idx]
		}
	}
	return msg
}
