// Package compress provides block codecs for byte-encoded rows.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor encodes and decodes whole blocks.
// Implementations are safe for concurrent use.
type Compressor interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
	// Extension is a short suffix naming the codec ("" for None).
	Extension() string
}

// None returns a pass-through Compressor. It does not copy.
func None() Compressor { return none{} }

type none struct{}

func (none) Encode(data []byte) ([]byte, error) { return data, nil }
func (none) Decode(data []byte) ([]byte, error) { return data, nil }
func (none) Extension() string                  { return "" }

// S2 returns a Compressor using klauspost S2 blocks.
func S2() Compressor { return s2c{} }

type s2c struct{}

func (s2c) Encode(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2c) Decode(data []byte) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decode: %w", err)
	}
	return out, nil
}

func (s2c) Extension() string { return ".s" }

// Zstd returns a Compressor at the given zstd level (1 fastest, 4 best).
// It panics if the encoder cannot be created, which only happens for
// invalid options.
func Zstd(level int) Compressor {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic(fmt.Sprintf("zstd encoder: %v", err))
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic(fmt.Sprintf("zstd decoder: %v", err))
	}
	return &zstdc{enc: enc, dec: dec}
}

type zstdc struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func (z *zstdc) Encode(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, nil), nil
}

func (z *zstdc) Decode(data []byte) ([]byte, error) {
	out, err := z.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

func (*zstdc) Extension() string { return ".z" }

// LZ4 returns a Compressor using LZ4 blocks.
//
// LZ4 blocks do not record their decoded size, so each block is prefixed
// with a mode byte and the uvarint length of the original data.
// Incompressible input is stored raw.
func LZ4() Compressor { return lz4c{} }

type lz4c struct{}

const (
	lz4Raw   = 0
	lz4Block = 1
)

var errShortBlock = errors.New("lz4: short block")

func (lz4c) Encode(data []byte) ([]byte, error) {
	out := make([]byte, 1+binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	hdr := 1 + binary.PutUvarint(out[1:], uint64(len(data)))

	n, err := lz4.CompressBlock(data, out[hdr:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 encode: %w", err)
	}
	if n == 0 || n >= len(data) {
		out[0] = lz4Raw
		n = copy(out[hdr:], data)
	} else {
		out[0] = lz4Block
	}
	return out[:hdr+n], nil
}

func (lz4c) Decode(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, errShortBlock
	}
	size, k := binary.Uvarint(data[1:])
	if k <= 0 {
		return nil, errShortBlock
	}
	body := data[1+k:]

	switch data[0] {
	case lz4Raw:
		if uint64(len(body)) != size {
			return nil, errShortBlock
		}
		return append([]byte(nil), body...), nil
	case lz4Block:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decode: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("lz4 decode: unknown mode %d", data[0])
	}
}

func (lz4c) Extension() string { return ".l4" }
