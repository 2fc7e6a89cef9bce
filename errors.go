// FILE: lixenwraith/taskrc/errors.go
package taskrc

import (
	"errors"
	"fmt"
)

// Errors returned by taskrc operations.
var (
	// ErrImmutable is returned by every mutation attempt on a sealed tree.
	ErrImmutable = errors.New("taskrc objects are immutable")

	// ErrMalformedLine marks a configuration line without a key/value separator.
	ErrMalformedLine = errors.New("malformed configuration line")

	// ErrConfigNotFound indicates the taskrc file does not exist. Not fatal for Build.
	ErrConfigNotFound = errors.New("taskrc file not found")

	// ErrUnknownFormat indicates an override file whose format could not be determined.
	ErrUnknownFormat = errors.New("unable to determine override file format")

	// ErrNotSubtree indicates a path that does not refer to a subtree.
	ErrNotSubtree = errors.New("path does not refer to a subtree")
)

// MalformedLineError describes a line that was skipped during parsing.
type MalformedLineError struct {
	// Path is the source file path, empty when unknown.
	Path string
	// Line is the 1-based line number in the source.
	Line int
	// Content is the sanitized line content.
	Content string
	// Reason is a short description of the defect.
	Reason string
}

// Error implements the error interface.
func (e *MalformedLineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at %s:%d: %s: %q", ErrMalformedLine, e.Path, e.Line, e.Reason, e.Content)
	}
	return fmt.Sprintf("%s at line %d: %s: %q", ErrMalformedLine, e.Line, e.Reason, e.Content)
}

// Unwrap allows errors.Is(err, ErrMalformedLine).
func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedLine
}
