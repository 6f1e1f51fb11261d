package copy

import (
	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/reflectbuf/wire"
)

// CompressedBlockBuilder wraps a Builder with optional zstd compression for
// large byte payloads, applied to vector<ubyte> blob fields rather than the
// reflection String type, so a compressed field still round-trips through
// the ordinary vector accessors once decompressed by the caller.
type CompressedBlockBuilder struct {
	Builder
	enabled bool
	encoder *zstd.Encoder
	minSize int
}

// WithStringCompression wraps b so that CreateCompressedBlob transparently
// zstd-compresses payloads at or above minSize bytes. It governs blob
// fields rather than the String base type itself, since String's wire
// layout has no room for a compression flag.
func WithStringCompression(b Builder, minSize int) (*CompressedBlockBuilder, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	return &CompressedBlockBuilder{Builder: b, enabled: true, encoder: enc, minSize: minSize}, nil
}

// CreateCompressedBlob writes data as a Vector<UByte>, zstd-compressing it
// first when compression is enabled and data is at least minSize bytes.
// wasCompressed tells the caller which convention was used, since a
// compressed blob must be paired with a sibling scalar recording the
// original length for the reader to allocate into.
func (c *CompressedBlockBuilder) CreateCompressedBlob(data []byte) (offset wire.UOffsetT, wasCompressed bool) {
	if !c.enabled || len(data) < c.minSize {
		return c.Builder.CreateRawVector(data, 1), false
	}
	compressed := c.encoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return c.Builder.CreateRawVector(data, 1), false
	}
	return c.Builder.CreateRawVector(compressed, 1), true
}
