// Package t3 implements the legacy flat-binary array codec.
//
// The format is a fixed 8-byte header — sample count and frame size, both
// little-endian uint32 — followed by the float payload, one frame after
// another in row-major order. The element width is not stored; it is
// inferred from the file size. Only float32 and float64 data of rank 1 or 2
// can be represented.
package t3

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
)

const headerSize = 8

func init() {
	codec.Register(New())
}

// Codec reads and writes legacy flat-binary array files.
type Codec struct{}

// New creates the flat-binary codec.
func New() *Codec { return &Codec{} }

// Name returns "torch3.binary".
func (c *Codec) Name() string { return "torch3.binary" }

// Extensions returns the extensions this codec claims.
func (c *Codec) Extensions() []string { return []string{".bindata"} }

// Peek derives the descriptor from the header and the file size. A single
// sample loads as a rank-1 array of its frame, multiple samples as a rank-2
// (samples, frame) array.
func (c *Codec) Peek(path string) (dtype.Typeinfo, error) {
	info, _, err := c.describe(path)
	return info, err
}

// Load materializes the whole file into a fresh buffer. The payload is
// already row-major, so no element-order transposition happens.
func (c *Codec) Load(path string) (*buffer.Buffer, error) {
	info, data, err := c.describe(path)
	if err != nil {
		return nil, err
	}
	return buffer.FromBytes(info, data[headerSize:])
}

// Save persists the buffer. Only float32 and float64 buffers of rank 1 or 2
// are representable.
func (c *Codec) Save(path string, b *buffer.Buffer) error {
	info := b.Type()
	if info.Dtype != dtype.Float32 && info.Dtype != dtype.Float64 {
		return &dtype.TypeError{Got: info.Dtype, Expected: dtype.Float64}
	}
	if info.Rank() > 2 {
		return &dtype.DimensionError{Rank: info.Rank(), Max: 2}
	}

	samples, frame := 1, info.Shape[0]
	if info.Rank() == 2 {
		samples, frame = info.Shape[0], info.Shape[1]
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(samples))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(frame))

	f, err := os.Create(path)
	if err != nil {
		return codec.NewFileNotReadable(path, err)
	}
	if _, err := f.Write(hdr[:]); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if _, err := f.Write(b.Bytes()); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (c *Codec) describe(path string) (dtype.Typeinfo, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dtype.Typeinfo{}, nil, codec.NewFileNotReadable(path, err)
	}
	if len(data) < headerSize {
		return dtype.Typeinfo{}, nil, fmt.Errorf("truncated flat-binary file %s", path)
	}

	samples := int64(binary.LittleEndian.Uint32(data[0:4]))
	frame := int64(binary.LittleEndian.Uint32(data[4:8]))
	if samples < 1 || frame < 1 {
		return dtype.Typeinfo{}, nil, codec.ErrUninitialized
	}

	// Bound the element count by the payload before multiplying, so a
	// corrupt header cannot overflow the size arithmetic below.
	payload := int64(len(data) - headerSize)
	if frame > payload || samples > payload/frame {
		return dtype.Typeinfo{}, nil, fmt.Errorf("flat-binary payload of %d bytes does not fit %dx%d floats", payload, samples, frame)
	}

	var kind dtype.ElementType
	switch elements := samples * frame; payload {
	case elements * 4:
		kind = dtype.Float32
	case elements * 8:
		kind = dtype.Float64
	default:
		return dtype.Typeinfo{}, nil, fmt.Errorf("flat-binary payload of %d bytes does not fit %dx%d floats", payload, samples, frame)
	}

	shape := []int{int(samples), int(frame)}
	if samples == 1 {
		shape = []int{int(frame)}
	}
	info, err := dtype.New(kind, shape)
	if err != nil {
		return dtype.Typeinfo{}, nil, err
	}
	return info, data, nil
}
