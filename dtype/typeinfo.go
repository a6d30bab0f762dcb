package dtype

import (
	"fmt"
	"strings"
)

// Typeinfo fully describes the type and shape of an array: the element kind
// plus an ordered list of extents. The zero value describes "no data"
// (Unknown kind, rank 0) and is what a freshly constructed buffer owner
// carries before any assignment.
type Typeinfo struct {
	Dtype ElementType
	Shape []int
}

// New validates kind and shape and returns the resulting Typeinfo.
// The rank is len(shape) and must be in 1..MaxRank; every extent must be
// positive.
func New(kind ElementType, shape []int) (Typeinfo, error) {
	if len(shape) < 1 || len(shape) > MaxRank {
		return Typeinfo{}, &DimensionError{Rank: len(shape), Max: MaxRank}
	}
	for _, s := range shape {
		if s < 1 {
			return Typeinfo{}, fmt.Errorf("invalid extent %d: extents must be positive", s)
		}
	}
	return Typeinfo{Dtype: kind, Shape: append([]int(nil), shape...)}, nil
}

// MustNew is New but panics on error. Intended for tests and constants.
func MustNew(kind ElementType, shape ...int) Typeinfo {
	ti, err := New(kind, shape)
	if err != nil {
		panic(err)
	}
	return ti
}

// Rank returns the number of dimensions.
func (t Typeinfo) Rank() int { return len(t.Shape) }

// ElementCount returns the total number of elements (product of extents).
func (t Typeinfo) ElementCount() int {
	if len(t.Shape) == 0 {
		return 0
	}
	n := 1
	for _, s := range t.Shape {
		n *= s
	}
	return n
}

// ByteSize returns the total storage size in bytes. It fails with a
// TypeError when the element kind has no concrete size (Unknown).
func (t Typeinfo) ByteSize() (int, error) {
	sz := t.Dtype.Size()
	if sz == 0 {
		return 0, &TypeError{Got: t.Dtype, Expected: Float64}
	}
	return t.ElementCount() * sz, nil
}

// IsCompatible reports whether two descriptors match exactly in kind, rank
// and every extent. Buffer owners use this to decide between reusing storage
// in place and reallocating.
func (t Typeinfo) IsCompatible(other Typeinfo) bool {
	if t.Dtype != other.Dtype || len(t.Shape) != len(other.Shape) {
		return false
	}
	for i := range t.Shape {
		if t.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy (the shape slice is not shared).
func (t Typeinfo) Clone() Typeinfo {
	return Typeinfo{Dtype: t.Dtype, Shape: append([]int(nil), t.Shape...)}
}

// String renders like "float64[2x3]".
func (t Typeinfo) String() string {
	if len(t.Shape) == 0 {
		return t.Dtype.String() + "[]"
	}
	parts := make([]string, len(t.Shape))
	for i, s := range t.Shape {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("%s[%s]", t.Dtype, strings.Join(parts, "x"))
}
