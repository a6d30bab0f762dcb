// Package buffer owns the contiguous byte storage behind a typed array.
//
// A Buffer is always exactly sized for its Typeinfo and is exclusively owned
// by one Array or one transient codec call; two Buffers never alias the same
// memory.
package buffer

import "github.com/arrio/arrio/dtype"

// Buffer is a typed, contiguous byte region in native (row-major) order.
type Buffer struct {
	info dtype.Typeinfo
	data []byte
}

// New allocates a zeroed buffer sized for info.
func New(info dtype.Typeinfo) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Set(info); err != nil {
		return nil, err
	}
	return b, nil
}

// FromBytes allocates a buffer sized for info and copies data into it.
// len(data) must be exactly info.ByteSize().
func FromBytes(info dtype.Typeinfo, data []byte) (*Buffer, error) {
	b, err := New(info)
	if err != nil {
		return nil, err
	}
	if len(data) != len(b.data) {
		return nil, &SizeMismatchError{Want: len(b.data), Got: len(data)}
	}
	copy(b.data, data)
	return b, nil
}

// Set reallocates the buffer for a new descriptor, invalidating prior
// contents. The new storage is zeroed; callers are expected to overwrite it
// before reading. Allocation is skipped when the descriptor is compatible
// with the current one.
func (b *Buffer) Set(info dtype.Typeinfo) error {
	if b.info.IsCompatible(info) {
		return nil
	}
	size, err := info.ByteSize()
	if err != nil {
		return err
	}
	b.info = info.Clone()
	b.data = make([]byte, size)
	return nil
}

// Type returns the descriptor the buffer is currently sized for.
func (b *Buffer) Type() dtype.Typeinfo { return b.info }

// Bytes exposes the raw storage. This is the escape hatch codecs use to
// fill or drain the buffer; callers outside this module must treat the
// returned slice as read-only.
func (b *Buffer) Bytes() []byte { return b.data }

// Clone returns a deep copy with its own storage.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		info: b.info.Clone(),
		data: append([]byte(nil), b.data...),
	}
}
