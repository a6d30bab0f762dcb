// Package codec defines the capability contract a persisted array format
// must satisfy, and the registry that dispatches filenames to formats.
//
// Codec selection is a breaking-change boundary: files written by one codec
// can only be opened again by a codec registered under the same extension or
// name.
package codec

import (
	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/dtype"
)

// Codec translates between an in-memory Buffer and one persisted file
// format. Implementations are immutable once constructed and are shared by
// every array referencing files of their format.
type Codec interface {
	// Peek inspects a persisted array and returns its descriptor without
	// materializing any data.
	Peek(path string) (dtype.Typeinfo, error)

	// Load fully materializes the persisted array into a fresh buffer in
	// native (row-major) order.
	Load(path string) (*buffer.Buffer, error)

	// Save persists the buffer to path in the codec's format.
	Save(path string, b *buffer.Buffer) error

	// Name returns the codec's stable unique name.
	Name() string

	// Extensions returns the filename extensions this codec recognizes,
	// each including the leading dot. Matching is case-sensitive.
	Extensions() []string
}
