package tsr

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression of a tensor archive.
type Compression uint8

const (
	// CompressionNone stores payloads verbatim.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress encodes data with the given algorithm. A zero-length second
// return means the payload was stored raw (incompressible LZ4 input falls
// back to raw storage).
func compress(data []byte, kind Compression) ([]byte, bool, error) {
	switch kind {
	case CompressionNone:
		return data, false, nil
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, false, err
		}
		if n == 0 || n >= len(data) {
			return data, false, nil
		}
		return dst[:n], true, nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), true, nil
	default:
		return nil, false, fmt.Errorf("unknown compression %d", kind)
	}
}

// decompress reverses compress. rawLen is the expected decoded size.
func decompress(data []byte, kind Compression, rawLen int, wasCompressed bool) ([]byte, error) {
	if !wasCompressed {
		if len(data) != rawLen {
			return nil, fmt.Errorf("raw payload is %d bytes, expected %d", len(data), rawLen)
		}
		return data, nil
	}
	switch kind {
	case CompressionLZ4:
		dst := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, fmt.Errorf("lz4 payload decoded to %d bytes, expected %d", n, rawLen)
		}
		return dst, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, make([]byte, 0, rawLen))
		if err != nil {
			return nil, err
		}
		if len(out) != rawLen {
			return nil, fmt.Errorf("zstd payload decoded to %d bytes, expected %d", len(out), rawLen)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression %d", kind)
	}
}
