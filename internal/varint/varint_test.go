package varint

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<64 - 1} {
		data := Put(nil, v)
		got, n := Get(data)
		assert.Equal(t, v, got)
		assert.Equal(t, len(data), n)
	}
}

func TestGetTruncatedReturnsZero(t *testing.T) {
	data := Put(nil, 1<<20)
	got, n := Get(data[:len(data)-1])
	assert.Zero(t, got)
	assert.Zero(t, n)
}

func TestRoundTripQuick(t *testing.T) {
	f := func(v uint64) bool {
		got, n := Get(Put(nil, v))
		return got == v && n > 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
