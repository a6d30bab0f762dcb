package buffer

import "fmt"

// SizeMismatchError indicates caller-supplied bytes whose length does not
// match the descriptor's byte size.
type SizeMismatchError struct {
	Want int
	Got  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("buffer size mismatch: descriptor needs %d bytes, got %d", e.Want, e.Got)
}
