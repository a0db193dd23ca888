package attendance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFileType is returned when a file is rejected before any read.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrRead is returned when a file's content cannot be read.
	ErrRead = errors.New("read failed")
	// ErrParse is returned when a file's content cannot be processed.
	ErrParse = errors.New("parse failed")
)

// InputError rejects a file by name before it is read.
type InputError struct {
	File    string
	Allowed []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s is not a supported punch log (expected %v)", e.File, e.Allowed)
}

func (e *InputError) Unwrap() error { return ErrInvalidFileType }

// ReadError wraps an I/O failure for one file of a batch.
type ReadError struct {
	File string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.File, e.Err)
}

func (e *ReadError) Unwrap() []error { return []error{ErrRead, e.Err} }

// ParseError reports a failure while processing a file's lines.
// Line is zero when the failure is not tied to a line.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("failed to parse %s line %d: %s", e.File, e.Line, e.Reason)
	case e.File != "":
		return fmt.Sprintf("failed to parse %s: %s", e.File, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("failed to parse line %d: %s", e.Line, e.Reason)
	default:
		return "failed to parse: " + e.Reason
	}
}

func (e *ParseError) Unwrap() error { return ErrParse }
