package matfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

// Writer appends variables to a MAT-file.
type Writer struct {
	f        *os.File
	compress bool
	closed   bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompression makes the writer wrap every variable in a zlib-compressed
// element.
func WithCompression() WriterOption {
	return func(w *Writer) { w.compress = true }
}

// Create creates (or truncates) a MAT-file at path and writes its header.
func Create(path string, opts ...WriterOption) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &Writer{f: f}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.writeHeader(); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	return w, nil
}

// Append opens an existing MAT-file for appending more variables, creating
// it when absent. The existing header is validated first.
func Append(path string, opts ...WriterOption) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if os.IsNotExist(err) {
		return Create(path, opts...)
	}
	if err != nil {
		return nil, err
	}
	var hdr [headerSize]byte
	if _, err := f.ReadAt(hdr[:], 0); err != nil {
		f.Close()
		return nil, ErrNotMAT
	}
	if string(hdr[126:128]) != "IM" {
		f.Close()
		return nil, ErrNotMAT
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, err
	}
	w := &Writer{f: f}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.f.Sync(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// Write appends one variable.
func (w *Writer) Write(v *Variable) error {
	if w.closed {
		return ErrClosed
	}
	if _, ok := classToType[v.Class]; !ok {
		return fmt.Errorf("%w: class %d", ErrNotNumeric, v.Class)
	}
	if v.Type == 0 {
		v.Type = classToType[v.Class]
	}
	elem := buildMatrixElement(v)
	if w.compress {
		var err error
		if elem, err = deflateElement(elem); err != nil {
			return err
		}
	}
	_, err := w.f.Write(elem)
	return err
}

func (w *Writer) writeHeader() error {
	var hdr [headerSize]byte
	text := "MATLAB 5.0 MAT-file, created by: arrio"
	copy(hdr[:116], text)
	for i := len(text); i < 116; i++ {
		hdr[i] = ' '
	}
	binary.LittleEndian.PutUint16(hdr[124:126], 0x0100)
	hdr[126] = 'I'
	hdr[127] = 'M'
	_, err := w.f.Write(hdr[:])
	return err
}

// writeTag appends a regular element tag plus payload, padded to 8 bytes.
func writeTag(buf *bytes.Buffer, typ uint32, payload []byte) {
	var tag [8]byte
	binary.LittleEndian.PutUint32(tag[0:4], typ)
	binary.LittleEndian.PutUint32(tag[4:8], uint32(len(payload)))
	buf.Write(tag[:])
	buf.Write(payload)
	if rem := len(payload) % 8; rem != 0 {
		buf.Write(make([]byte, 8-rem))
	}
}

func buildMatrixElement(v *Variable) []byte {
	var body bytes.Buffer

	// array flags
	var flagBytes [8]byte
	flags := v.Class & 0xFF
	if v.IsComplex {
		flags |= flagComplex
	}
	binary.LittleEndian.PutUint32(flagBytes[0:4], flags)
	writeTag(&body, TypeUint32, flagBytes[:])

	// dimensions
	dims := make([]byte, 4*len(v.Dims))
	for i, d := range v.Dims {
		binary.LittleEndian.PutUint32(dims[4*i:], uint32(int32(d)))
	}
	writeTag(&body, TypeInt32, dims)

	// name
	writeTag(&body, TypeInt8, []byte(v.Name))

	// planes
	writeTag(&body, v.Type, v.Real)
	if v.IsComplex {
		writeTag(&body, v.Type, v.Imag)
	}

	var elem bytes.Buffer
	writeTag(&elem, TypeMatrix, body.Bytes())
	return elem.Bytes()
}

// deflateElement wraps a complete element in a miCOMPRESSED envelope.
// Compressed payloads are not padded, matching the convention of other
// MAT-file writers.
func deflateElement(elem []byte) ([]byte, error) {
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(elem); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, 8, 8+z.Len())
	binary.LittleEndian.PutUint32(out[0:4], TypeCompressed)
	binary.LittleEndian.PutUint32(out[4:8], uint32(z.Len()))
	return append(out, z.Bytes()...), nil
}
