package matfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/arrio/arrio/internal/mmap"
)

const headerSize = 128

// File is a MAT-file opened for reading. Reads are sequential; Rewind and
// ReadNamed restart the scan from the first element.
type File struct {
	m      *mmap.File
	data   []byte
	cursor int
	closed bool
}

// Open memory-maps the MAT-file at path and validates its header.
func Open(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	data := m.Data
	if len(data) < headerSize {
		m.Close()
		return nil, ErrNotMAT
	}
	switch string(data[126:128]) {
	case "IM":
		// little-endian, the only byte order this reader speaks
	case "MI":
		m.Close()
		return nil, ErrBigEndian
	default:
		m.Close()
		return nil, ErrNotMAT
	}
	return &File{m: m, data: data, cursor: headerSize}, nil
}

// Close releases the mapping.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.m.Close()
}

// Rewind restarts the sequential scan at the first variable.
func (f *File) Rewind() { f.cursor = headerSize }

// ReadNext reads the next variable including its data planes. It returns
// io.EOF when the scan is exhausted.
func (f *File) ReadNext() (*Variable, error) {
	return f.readNext(true)
}

// ReadNextInfo reads the next variable's metadata only (name, class, dims,
// complex flag); Real and Imag stay nil. It is cheaper than ReadNext because
// data planes are never copied out of the mapping.
func (f *File) ReadNextInfo() (*Variable, error) {
	return f.readNext(false)
}

// ReadNamed scans the whole file for a variable with the given name and
// reads it fully. The sequential cursor is not disturbed.
func (f *File) ReadNamed(name string) (*Variable, error) {
	if f.closed {
		return nil, ErrClosed
	}
	off := headerSize
	for {
		v, next, err := readElementAt(f.data, off, true)
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		off = next
		if v != nil && v.Name == name {
			return v, nil
		}
	}
}

func (f *File) readNext(withData bool) (*Variable, error) {
	if f.closed {
		return nil, ErrClosed
	}
	for {
		v, next, err := readElementAt(f.data, f.cursor, withData)
		if err != nil {
			return nil, err
		}
		f.cursor = next
		if v != nil {
			return v, nil
		}
		// non-matrix top-level element: keep scanning
	}
}

// readElementAt parses the top-level element at off. It returns the parsed
// variable (nil for non-matrix elements), the offset of the following
// element and io.EOF past the last element.
func readElementAt(data []byte, off int, withData bool) (*Variable, int, error) {
	if off >= len(data) {
		return nil, off, io.EOF
	}
	typ, payload, consumed, err := parseTag(data[off:])
	if err != nil {
		return nil, off, err
	}
	next := off + consumed

	switch typ {
	case TypeCompressed:
		// A compressed element holds one complete inner element. matio does
		// not pad compressed payloads, so the cursor advance above must not
		// assume alignment; parseTag handles that distinction.
		inner, err := inflate(payload)
		if err != nil {
			return nil, next, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		ityp, ipayload, _, err := parseTag(inner)
		if err != nil {
			return nil, next, err
		}
		if ityp != TypeMatrix {
			return nil, next, nil
		}
		v, err := parseMatrix(ipayload, withData)
		return v, next, err
	case TypeMatrix:
		v, err := parseMatrix(payload, withData)
		return v, next, err
	default:
		return nil, next, nil
	}
}

// parseTag decodes one element tag (regular or small format) and returns
// the element type, its payload and the total padded size of the element.
func parseTag(data []byte) (typ uint32, payload []byte, consumed int, err error) {
	if len(data) < 8 {
		return 0, nil, 0, ErrCorrupt
	}
	first := binary.LittleEndian.Uint32(data[0:4])
	if small := first >> 16; small != 0 {
		// small data element: size in the upper half-word, payload inline
		size := int(small)
		if size > 4 {
			return 0, nil, 0, ErrCorrupt
		}
		return first & 0xFFFF, data[4 : 4+size], 8, nil
	}
	size := int(binary.LittleEndian.Uint32(data[4:8]))
	if size < 0 || 8+size > len(data) {
		return 0, nil, 0, ErrCorrupt
	}
	consumed = 8 + size
	if first != TypeCompressed {
		consumed = 8 + pad8(size)
		if consumed > len(data) {
			consumed = len(data)
		}
	}
	return first, data[8 : 8+size], consumed, nil
}

func parseMatrix(payload []byte, withData bool) (*Variable, error) {
	// array flags
	typ, flagBytes, n, err := parseTag(payload)
	if err != nil || typ != TypeUint32 || len(flagBytes) < 4 {
		return nil, ErrCorrupt
	}
	flags := binary.LittleEndian.Uint32(flagBytes[0:4])
	payload = payload[n:]

	v := &Variable{
		Class:     flags & 0xFF,
		IsComplex: flags&flagComplex != 0,
	}

	// dimensions
	typ, dimBytes, n, err := parseTag(payload)
	if err != nil || typ != TypeInt32 {
		return nil, ErrCorrupt
	}
	for i := 0; i+4 <= len(dimBytes); i += 4 {
		v.Dims = append(v.Dims, int(int32(binary.LittleEndian.Uint32(dimBytes[i:]))))
	}
	payload = payload[n:]

	// name
	typ, nameBytes, n, err := parseTag(payload)
	if err != nil || (typ != TypeInt8 && typ != TypeUTF8) {
		return nil, ErrCorrupt
	}
	v.Name = string(nameBytes)
	payload = payload[n:]

	if !withData || !v.isNumericClass() {
		return v, nil
	}

	// real plane
	typ, re, n, err := parseTag(payload)
	if err != nil {
		return nil, err
	}
	if _, ok := typeSizes[typ]; !ok {
		return nil, ErrCorrupt
	}
	v.Type = typ
	v.Real = bytes.Clone(re)
	payload = payload[n:]

	if v.IsComplex {
		typ, im, _, err := parseTag(payload)
		if err != nil {
			return nil, err
		}
		if typ != v.Type {
			return nil, ErrCorrupt
		}
		v.Imag = bytes.Clone(im)
	}
	return v, nil
}

// isNumericClass reports whether the variable's class stores flat numeric
// planes this reader can hand back.
func (v *Variable) isNumericClass() bool {
	return v.Class >= ClassDouble && v.Class <= ClassUint64
}

func inflate(payload []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
