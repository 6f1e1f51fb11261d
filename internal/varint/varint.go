// Package varint provides the LEB128-style varint helpers used by rbdump's
// on-disk schema cache. It is not used by the core reflection layer, which
// encodes offsets as fixed-width little-endian integers (see
// wire.PutUint32/GetUint32) since that width is fixed by the wire format
// itself, not a choice this project makes.
package varint

// Put appends a varint encoding of x to dst and returns the grown slice.
func Put(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// Get decodes a varint from the front of b, returning the value and the
// number of bytes consumed. It returns (0, 0) if b does not contain a
// complete varint.
func Get(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		x |= uint64(c&0x7f) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
