// Package tsr implements the tensor-archive codec: a self-describing
// container for named n-dimensional arrays.
//
// An archive is a flat sequence of records, each carrying its own element
// kind, shape and payload; names may use slash-separated segments to form a
// hierarchy. Payloads are stored in native row-major order, optionally
// LZ4- or ZSTD-compressed per record. Unlike the MAT codec, every element
// kind with a concrete byte size can be represented, including complex256.
package tsr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
)

var magic = [4]byte{'T', 'S', 'R', '1'}

const (
	version    = 1
	headerSize = 8
)

// ErrNotArchive is returned for files without the tensor-archive header.
var ErrNotArchive = errors.New("not a tensor archive")

// DefaultVariable is the record name a single-array save writes.
const DefaultVariable = "array"

func init() {
	codec.Register(New())
}

// Codec reads and writes tensor archives.
type Codec struct {
	compression Compression
}

// Option configures a Codec.
type Option func(*Codec)

// WithCompression selects the payload compression used on save.
func WithCompression(kind Compression) Option {
	return func(c *Codec) { c.compression = kind }
}

// New creates the tensor-archive codec. The default saves uncompressed.
func New(opts ...Option) *Codec {
	c := &Codec{compression: CompressionNone}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns "tensor.archive".
func (c *Codec) Name() string { return "tensor.archive" }

// Extensions returns the extensions this codec claims.
func (c *Codec) Extensions() []string { return []string{".tsr"} }

// record is the parsed per-variable framing.
type record struct {
	name       string
	info       dtype.Typeinfo
	compressed bool
	payload    []byte // encoded bytes, not yet decompressed
	rawLen     int
}

// Peek returns the descriptor of the first record.
func (c *Codec) Peek(path string) (dtype.Typeinfo, error) {
	data, _, err := readArchive(path)
	if err != nil {
		return dtype.Typeinfo{}, err
	}
	rec, _, err := parseRecord(data)
	if err != nil {
		return dtype.Typeinfo{}, err
	}
	return rec.info, nil
}

// Load materializes the first record.
func (c *Codec) Load(path string) (*buffer.Buffer, error) {
	data, comp, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	rec, _, err := parseRecord(data)
	if err != nil {
		return nil, err
	}
	return materialize(rec, comp)
}

// Save writes path as a fresh single-record archive named "array".
func (c *Codec) Save(path string, b *buffer.Buffer) error {
	encoded, err := encodeRecord(DefaultVariable, b, c.compression)
	if err != nil {
		return err
	}

	var hdr [headerSize]byte
	copy(hdr[:4], magic[:])
	hdr[4] = version
	hdr[5] = byte(c.compression)

	f, err := os.Create(path)
	if err != nil {
		return codec.NewFileNotReadable(path, err)
	}
	if _, err := f.Write(hdr[:]); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if _, err := f.Write(encoded); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// WriteNamed appends a record to an existing archive (creating it when
// absent). Appended records use the archive's original compression.
func (c *Codec) WriteNamed(path, name string, b *buffer.Buffer) error {
	if name == "" {
		return codec.ErrUninitialized
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o644)
	comp := c.compression
	if os.IsNotExist(err) {
		var hdr [headerSize]byte
		copy(hdr[:4], magic[:])
		hdr[4] = version
		hdr[5] = byte(comp)
		f, err = os.Create(path)
		if err != nil {
			return codec.NewFileNotReadable(path, err)
		}
		if _, err := f.Write(hdr[:]); err != nil {
			f.Close()
			os.Remove(path)
			return err
		}
	} else if err != nil {
		return codec.NewFileNotReadable(path, err)
	} else {
		var hdr [headerSize]byte
		if _, err := f.ReadAt(hdr[:], 0); err != nil || [4]byte(hdr[:4]) != magic {
			f.Close()
			return ErrNotArchive
		}
		comp = Compression(hdr[5])
	}

	encoded, err := encodeRecord(name, b, comp)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(encoded); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadNamed materializes the record with the given name, failing with
// ErrUninitialized when no record matches.
func (c *Codec) ReadNamed(path, name string) (*buffer.Buffer, error) {
	if name == "" {
		return nil, codec.ErrUninitialized
	}
	data, comp, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	for len(data) > 0 {
		rec, rest, err := parseRecord(data)
		if err != nil {
			return nil, err
		}
		if rec.name == name {
			return materialize(rec, comp)
		}
		data = rest
	}
	return nil, codec.ErrUninitialized
}

// ListNames returns the record names in file order.
func (c *Codec) ListNames(path string) ([]string, error) {
	data, _, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for len(data) > 0 {
		rec, rest, err := parseRecord(data)
		if err != nil {
			return nil, err
		}
		names = append(names, rec.name)
		data = rest
	}
	return names, nil
}

// readArchive loads the file, validates the header and returns the record
// region plus the archive compression.
func readArchive(path string) ([]byte, Compression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, codec.NewFileNotReadable(path, err)
	}
	if len(data) < headerSize || [4]byte(data[:4]) != magic {
		return nil, 0, ErrNotArchive
	}
	if data[4] != version {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrNotArchive, data[4])
	}
	if len(data) == headerSize {
		return nil, 0, codec.ErrUninitialized
	}
	return data[headerSize:], Compression(data[5]), nil
}

// Record framing:
//
//	nameLen   uint16
//	name      nameLen bytes
//	kindLen   uint8
//	kind      canonical element-type name
//	rank      uint8
//	flags     uint8 (bit 0: payload compressed)
//	shape     rank × uint32
//	rawLen    uint32
//	encLen    uint32
//	payload   encLen bytes
func encodeRecord(name string, b *buffer.Buffer, comp Compression) ([]byte, error) {
	info := b.Type()
	if info.Dtype.Size() == 0 {
		return nil, &dtype.TypeError{Got: info.Dtype, Expected: dtype.Float64}
	}

	payload, compressed, err := compress(b.Bytes(), comp)
	if err != nil {
		return nil, err
	}

	kind := info.Dtype.String()
	out := make([]byte, 0, 2+len(name)+2+len(kind)+1+4*info.Rank()+8+len(payload))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(name)))
	out = append(out, name...)
	out = append(out, byte(len(kind)))
	out = append(out, kind...)
	out = append(out, byte(info.Rank()))
	var flags byte
	if compressed {
		flags |= 1
	}
	out = append(out, flags)
	for _, s := range info.Shape {
		out = binary.LittleEndian.AppendUint32(out, uint32(s))
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(b.Bytes())))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	return append(out, payload...), nil
}

func parseRecord(data []byte) (record, []byte, error) {
	var rec record
	if len(data) < 2 {
		return rec, nil, ErrNotArchive
	}
	nameLen := int(binary.LittleEndian.Uint16(data))
	data = data[2:]
	if len(data) < nameLen+2 {
		return rec, nil, ErrNotArchive
	}
	rec.name = string(data[:nameLen])
	data = data[nameLen:]

	kindLen := int(data[0])
	data = data[1:]
	if len(data) < kindLen+2 {
		return rec, nil, ErrNotArchive
	}
	kindName := string(data[:kindLen])
	data = data[kindLen:]

	kind, ok := dtype.ByName(kindName)
	if !ok || kind == dtype.Unknown {
		return rec, nil, &dtype.TypeError{Got: dtype.Unknown, Expected: dtype.Float64}
	}

	rank := int(data[0])
	rec.compressed = data[1]&1 != 0
	data = data[2:]
	if rank < 1 || rank > dtype.MaxRank {
		return rec, nil, &dtype.DimensionError{Rank: rank, Max: dtype.MaxRank}
	}
	if len(data) < 4*rank+8 {
		return rec, nil, ErrNotArchive
	}

	shape := make([]int, rank)
	for i := range shape {
		shape[i] = int(binary.LittleEndian.Uint32(data[4*i:]))
	}
	data = data[4*rank:]

	info, err := dtype.New(kind, shape)
	if err != nil {
		return rec, nil, err
	}
	rec.info = info

	rec.rawLen = int(binary.LittleEndian.Uint32(data))
	encLen := int(binary.LittleEndian.Uint32(data[4:]))
	data = data[8:]
	if len(data) < encLen {
		return rec, nil, ErrNotArchive
	}
	rec.payload = data[:encLen]
	return rec, data[encLen:], nil
}

func materialize(rec record, comp Compression) (*buffer.Buffer, error) {
	size, err := rec.info.ByteSize()
	if err != nil {
		return nil, err
	}
	if rec.rawLen != size {
		return nil, fmt.Errorf("%w: payload size %d does not match %s", ErrNotArchive, rec.rawLen, rec.info)
	}
	raw, err := decompress(rec.payload, comp, rec.rawLen, rec.compressed)
	if err != nil {
		return nil, err
	}
	return buffer.FromBytes(rec.info, raw)
}
