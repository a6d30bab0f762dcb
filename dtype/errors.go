package dtype

import "fmt"

// DimensionError indicates a rank outside the supported range, either the
// platform limit (MaxRank) or a format's own maximum.
type DimensionError struct {
	Rank int
	Max  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("unsupported rank %d (maximum %d)", e.Rank, e.Max)
}

// TypeError indicates an element kind that cannot be used where requested,
// e.g. a kind a storage format has no representation for.
type TypeError struct {
	Got      ElementType
	Expected ElementType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unsupported element type %s (expected something like %s)", e.Got, e.Expected)
}
