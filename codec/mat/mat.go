// Package mat implements the MATLAB-compatible array codec on top of the
// matfile container engine.
//
// Buffers are stored as a single numeric matrix variable named "array",
// transposed to column-major order on the way out and back to row-major on
// the way in. Complex buffers are split into separate real and imaginary
// planes, as the container format requires.
package mat

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
	"github.com/arrio/arrio/layout"
	"github.com/arrio/arrio/matfile"
)

// DefaultVariable is the variable name a single-array save writes.
const DefaultVariable = "array"

func init() {
	codec.Register(New())
}

// Codec reads and writes arrays in MAT level-5 container files.
type Codec struct {
	compress bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithCompression makes saves write zlib-compressed variables. Loading is
// unaffected; compressed and plain variables are always both readable.
func WithCompression() Option {
	return func(c *Codec) { c.compress = true }
}

// New creates the MAT codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns "matlab.array.binary".
func (c *Codec) Name() string { return "matlab.array.binary" }

// Extensions returns the extensions this codec claims.
func (c *Codec) Extensions() []string { return []string{".mat"} }

// Peek returns the descriptor of the first variable in the file without
// materializing its data.
func (c *Codec) Peek(path string) (dtype.Typeinfo, error) {
	f, err := matfile.Open(path)
	if err != nil {
		return dtype.Typeinfo{}, codec.NewFileNotReadable(path, err)
	}
	defer f.Close()

	v, err := f.ReadNextInfo()
	if err == io.EOF {
		return dtype.Typeinfo{}, codec.ErrUninitialized
	}
	if err != nil {
		return dtype.Typeinfo{}, err
	}
	return describe(v)
}

// Load materializes the first variable into a fresh native-order buffer.
func (c *Codec) Load(path string) (*buffer.Buffer, error) {
	f, err := matfile.Open(path)
	if err != nil {
		return nil, codec.NewFileNotReadable(path, err)
	}
	defer f.Close()

	v, err := f.ReadNext()
	if err == io.EOF {
		return nil, codec.ErrUninitialized
	}
	if err != nil {
		return nil, err
	}
	return assemble(v)
}

// Save persists the buffer as a variable named "array", replacing path.
func (c *Codec) Save(path string, b *buffer.Buffer) error {
	v, err := buildVariable(DefaultVariable, b)
	if err != nil {
		return err
	}

	var opts []matfile.WriterOption
	if c.compress {
		opts = append(opts, matfile.WithCompression())
	}
	w, err := matfile.Create(path, opts...)
	if err != nil {
		return codec.NewFileNotReadable(path, err)
	}
	if err := w.Write(v); err != nil {
		w.Close()
		os.Remove(path)
		return err
	}
	return w.Close()
}

// describe derives a Typeinfo from a variable's stored class, complex flag
// and dimensions.
func describe(v *matfile.Variable) (dtype.Typeinfo, error) {
	kind := elementTypeFor(v.Class, v.IsComplex)
	if kind == dtype.Unknown {
		return dtype.Typeinfo{}, &dtype.TypeError{Got: dtype.Unknown, Expected: dtype.Float32}
	}
	return dtype.New(kind, v.Dims)
}

// assemble transposes a fully read variable into a fresh row-major buffer.
func assemble(v *matfile.Variable) (*buffer.Buffer, error) {
	info, err := describe(v)
	if err != nil {
		return nil, err
	}
	size, err := info.ByteSize()
	if err != nil {
		return nil, err
	}

	b, err := buffer.New(info)
	if err != nil {
		return nil, err
	}

	if info.Dtype.IsComplex() {
		if len(v.Real) != size/2 || len(v.Imag) != size/2 {
			return nil, fmt.Errorf("%w: plane size mismatch for %s", matfile.ErrCorrupt, info)
		}
		if err := layout.ToNativeMerge(v.Real, v.Imag, b.Bytes(), info); err != nil {
			return nil, err
		}
		return b, nil
	}

	if len(v.Real) != size {
		return nil, fmt.Errorf("%w: plane size mismatch for %s", matfile.ErrCorrupt, info)
	}
	if err := layout.ToNative(v.Real, b.Bytes(), info); err != nil {
		return nil, err
	}
	return b, nil
}

// buildVariable transposes a buffer into a container variable with the
// given name.
func buildVariable(name string, b *buffer.Buffer) (*matfile.Variable, error) {
	if name == "" {
		return nil, codec.ErrUninitialized
	}
	info := b.Type()
	class, err := classFor(info.Dtype)
	if err != nil {
		return nil, err
	}

	size, err := info.ByteSize()
	if err != nil {
		return nil, err
	}

	if info.Dtype.IsComplex() {
		re := make([]byte, size/2)
		im := make([]byte, size/2)
		if err := layout.ToForeignSplit(b.Bytes(), re, im, info); err != nil {
			return nil, err
		}
		return matfile.NewVariable(name, class, info.Shape, true, re, im), nil
	}

	dst := make([]byte, size)
	if err := layout.ToForeign(b.Bytes(), dst, info); err != nil {
		return nil, err
	}
	return matfile.NewVariable(name, class, info.Shape, false, dst, nil), nil
}

// LoadNamed materializes the variable with the given name.
func (c *Codec) LoadNamed(path, name string) (*buffer.Buffer, error) {
	if name == "" {
		return nil, codec.ErrUninitialized
	}
	f, err := matfile.Open(path)
	if err != nil {
		return nil, codec.NewFileNotReadable(path, err)
	}
	defer f.Close()

	v, err := f.ReadNamed(name)
	if errors.Is(err, io.EOF) {
		return nil, codec.ErrUninitialized
	}
	if err != nil {
		return nil, err
	}
	return assemble(v)
}
