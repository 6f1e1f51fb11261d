package copy_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/reflectbuf/copy"
	"github.com/rawbytedev/reflectbuf/wire"
)

func TestCompressedBlockBuilderCompressesLargePayloads(t *testing.T) {
	inner := copy.NewFlatBuilder(256)
	cb, err := copy.WithStringCompression(inner, 32)
	require.NoError(t, err)

	payload := []byte(strings.Repeat("reflectbuf ", 200))
	off, compressed := cb.CreateCompressedBlob(payload)
	assert.True(t, compressed)

	n := wire.GetUOffsetT(inner.Bytes()[off:])
	assert.Less(t, int(n), len(payload))
}

func TestCompressedBlockBuilderSkipsSmallPayloads(t *testing.T) {
	inner := copy.NewFlatBuilder(64)
	cb, err := copy.WithStringCompression(inner, 32)
	require.NoError(t, err)

	payload := []byte("short")
	off, compressed := cb.CreateCompressedBlob(payload)
	assert.False(t, compressed)

	n := wire.GetUOffsetT(inner.Bytes()[off:])
	require.Equal(t, len(payload), int(n))
	assert.True(t, bytes.Equal(inner.Bytes()[off+4:off+4+uint32(n)], payload))
}
