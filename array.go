package arrio

import (
	"fmt"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
)

// Array is the user-facing handle over typed array data. It is always in
// exactly one of two states:
//
//   - Inline: the Array exclusively owns a Buffer holding the data.
//   - External: the Array references a file by name, together with the codec
//     responsible for that file's format and a cached descriptor obtained by
//     a prior metadata peek.
//
// The cached descriptor always reflects the current shape and element kind,
// whichever state is active. Arrays are not safe for concurrent use; confine
// each Array (and each file it references) to one goroutine or serialize
// access externally.
type Array struct {
	buf *buffer.Buffer // Inline state; nil when External

	filename string      // External state; empty when Inline
	codec    codec.Codec // External state; nil when Inline

	info dtype.Typeinfo

	registry *codec.Registry
	logger   *Logger
}

// reg and log default the zero value so Arrays populated through Set work
// like constructed ones.
func (a *Array) reg() *codec.Registry {
	if a.registry == nil {
		return codec.Default()
	}
	return a.registry
}

func (a *Array) log() *Logger {
	if a.logger == nil {
		return NoopLogger()
	}
	return a.logger
}

// FromData constructs an Inline Array, copying the caller's bytes into a
// fresh Buffer. len(data) must be exactly info.ByteSize().
func FromData(info dtype.Typeinfo, data []byte, optFns ...Option) (*Array, error) {
	opts := applyOptions(optFns)
	buf, err := buffer.FromBytes(info, data)
	if err != nil {
		return nil, err
	}
	return &Array{
		buf:      buf,
		info:     info.Clone(),
		registry: opts.registry,
		logger:   opts.logger,
	}, nil
}

// FromFile constructs an External Array referencing filename. The codec is
// resolved from the filename's extension and immediately peeks the file to
// populate the cached descriptor, so construction fails if the file is
// unreadable or the format is unsupported.
func FromFile(filename string, optFns ...Option) (*Array, error) {
	opts := applyOptions(optFns)
	c, err := opts.registry.ByExtension(filename)
	if err != nil {
		return nil, err
	}
	info, err := c.Peek(filename)
	if err != nil {
		return nil, err
	}
	opts.logger.WithFile(filename).WithCodec(c.Name()).WithType(info.String()).Debug("peeked array file")
	return &Array{
		filename: filename,
		codec:    c,
		info:     info,
		registry: opts.registry,
		logger:   opts.logger,
	}, nil
}

// IsLoaded reports whether the Array currently holds its data in memory.
func (a *Array) IsLoaded() bool { return a.buf != nil }

// Filename returns the referenced file when External, or "" when Inline.
func (a *Array) Filename() string { return a.filename }

// CodecName returns the name of the associated codec when External,
// or "" when Inline.
func (a *Array) CodecName() string {
	if a.codec == nil {
		return ""
	}
	return a.codec.Name()
}

// Type returns the array's descriptor. Valid in both states and never
// touches the filesystem.
func (a *Array) Type() dtype.Typeinfo { return a.info }

// Load forces the External→Inline transition: the codec reads the file into
// a fresh Buffer, the file association is dropped and the Array becomes
// Inline. A Load on an Inline Array is a no-op with no I/O. A failed Load
// leaves the Array unchanged.
func (a *Array) Load() error {
	if a.buf != nil {
		return nil
	}
	if a.filename == "" {
		return ErrNoData
	}
	buf, err := a.codec.Load(a.filename)
	if err != nil {
		return err
	}
	a.log().WithFile(a.filename).WithCodec(a.codec.Name()).Debug("loaded array")
	a.buf = buf
	a.info = buf.Type().Clone()
	a.filename = ""
	a.codec = nil
	return nil
}

// Get returns the Array's current data. If Inline it returns a view of the
// owned Buffer (the caller must not retain it across Set or Save); if
// External it performs an ephemeral load into a transient Buffer and the
// Array stays External. Unlike Load, Get never changes the Array's state.
func (a *Array) Get() (*buffer.Buffer, error) {
	if a.buf != nil {
		return a.buf, nil
	}
	if a.filename == "" {
		return nil, ErrNoData
	}
	buf, err := a.codec.Load(a.filename)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Set replaces the Array's data. An External Array releases its file
// association and becomes Inline; an Inline Array reallocates its Buffer
// only when the new descriptor differs from the current one.
func (a *Array) Set(info dtype.Typeinfo, data []byte) error {
	if a.buf == nil {
		buf, err := buffer.FromBytes(info, data)
		if err != nil {
			return err
		}
		a.buf = buf
		a.info = info.Clone()
		a.filename = ""
		a.codec = nil
		return nil
	}
	if err := a.buf.Set(info); err != nil {
		return err
	}
	if want := len(a.buf.Bytes()); len(data) != want {
		return &buffer.SizeMismatchError{Want: want, Got: len(data)}
	}
	copy(a.buf.Bytes(), data)
	a.info = info.Clone()
	return nil
}

// Save writes the Array's current data to filename through the codec
// selected by the filename's extension, then transitions the Array to
// External referencing the new file. An External source is read through
// memory first (copy-through), never file-to-file. The transition happens
// only after the codec's save returns successfully; on failure the Array
// keeps its prior state.
func (a *Array) Save(filename string) error {
	c, err := a.reg().ByExtension(filename)
	if err != nil {
		return err
	}
	buf, err := a.Get()
	if err != nil {
		return err
	}
	if err := c.Save(filename, buf); err != nil {
		return err
	}
	a.log().WithFile(filename).WithCodec(c.Name()).WithType(buf.Type().String()).Debug("saved array")
	a.buf = nil
	a.filename = filename
	a.codec = c
	a.info = buf.Type().Clone()
	return nil
}

// Cast returns an element-wise copy of the current data converted to the
// target element kind. Real→complex zero-fills the imaginary part;
// complex→real discards it. Cast never changes the Array's state.
func (a *Array) Cast(kind dtype.ElementType) (*buffer.Buffer, error) {
	buf, err := a.Get()
	if err != nil {
		return nil, err
	}
	return castBuffer(buf, kind)
}

// Clone copies the Array with value semantics: an Inline clone deep-copies
// the Buffer; an External clone shares the filename and codec reference.
func (a *Array) Clone() *Array {
	out := &Array{
		filename: a.filename,
		codec:    a.codec,
		info:     a.info.Clone(),
		registry: a.registry,
		logger:   a.logger,
	}
	if a.buf != nil {
		out.buf = a.buf.Clone()
	}
	return out
}

// String describes the Array's state and descriptor, for diagnostics.
func (a *Array) String() string {
	if a.buf != nil {
		return fmt.Sprintf("arrio.Array{inline, %s}", a.info)
	}
	return fmt.Sprintf("arrio.Array{external %q via %s, %s}", a.filename, a.CodecName(), a.info)
}
