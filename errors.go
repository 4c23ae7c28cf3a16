package main

import (
	"errors"
	"fmt"
)

// ErrNoMatches is returned when no file survives expansion and filtering.
var ErrNoMatches = errors.New("no files matched")

// PatternSyntaxError reports a glob pattern that cannot be parsed.
type PatternSyntaxError struct {
	Pattern string
	Err     error
}

func (e *PatternSyntaxError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternSyntaxError) Unwrap() error { return e.Err }

// FileReadError reports a single candidate that could not be read.
// It is logged and skipped, never returned from a whole run.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// SinkUnavailableError reports that a delivery mechanism could not take the document.
type SinkUnavailableError struct {
	Sink string
	Err  error
}

func (e *SinkUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s unavailable", e.Sink)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Sink, e.Err)
}

func (e *SinkUnavailableError) Unwrap() error { return e.Err }
