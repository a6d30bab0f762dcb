package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when no registered codec matches a
	// filename extension or codec name.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUninitialized is returned when a required variable or parameter is
	// absent, e.g. an empty variable name or a container file with no
	// variable matching the indexed naming convention.
	ErrUninitialized = errors.New("uninitialized: expected variable or parameter is absent")
)

// FileNotReadableError indicates a path that is missing, unopenable or has
// the wrong permissions.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type FileNotReadableError struct {
	Path  string
	cause error
}

// NewFileNotReadable wraps cause into a FileNotReadableError for path.
func NewFileNotReadable(path string, cause error) *FileNotReadableError {
	return &FileNotReadableError{Path: path, cause: cause}
}

func (e *FileNotReadableError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("file not readable: %s: %v", e.Path, e.cause)
	}
	return fmt.Sprintf("file not readable: %s", e.Path)
}

func (e *FileNotReadableError) Unwrap() error { return e.cause }
