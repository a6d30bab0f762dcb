package arrio

import (
	"errors"

	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
)

// Error kinds surfaced by this package. The concrete types live next to the
// layers that raise them; the aliases let callers match everything from the
// root import.
type (
	// TypeError indicates an element kind that cannot be mapped or
	// converted in the requested direction.
	TypeError = dtype.TypeError

	// DimensionError indicates a rank outside the supported range.
	DimensionError = dtype.DimensionError

	// FileNotReadableError indicates a missing or unopenable path.
	FileNotReadableError = codec.FileNotReadableError
)

var (
	// ErrUnsupportedFormat is returned when no codec matches a filename
	// extension or codec name.
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat

	// ErrUninitialized is returned when an expected variable or parameter
	// is absent.
	ErrUninitialized = codec.ErrUninitialized

	// ErrNoData is returned when a data operation is attempted on an Array
	// in neither state (the zero value).
	ErrNoData = errors.New("array holds no data and references no file")
)
