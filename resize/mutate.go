package resize

import (
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// SetString overwrites the string whose length header starts at
// strHeaderAddr with val, resizing the buffer first if the new value is a
// different length. Returns the (possibly reallocated) buffer; callers must
// keep using the returned slice, not the one they passed in.
func SetString(sch *schema.Schema, buf []byte, strHeaderAddr wire.UOffsetT, val string) []byte {
	oldLen := int(wire.GetUOffsetT(buf[strHeaderAddr:]))
	delta := len(val) - oldLen
	start := strHeaderAddr + 4
	if delta != 0 {
		buf = Resize(sch, buf, start, delta)
	}
	wire.PutUOffsetT(buf[strHeaderAddr:], uint32(len(val)))
	copy(buf[start:int(start)+len(val)], val)
	buf[int(start)+len(val)] = 0
	return buf
}

// ResizeVector grows or shrinks the vector whose length header starts at
// vecHeaderAddr to newLen elements of elemSize bytes each, filling any new
// elements with a copy of fill (which must be exactly elemSize bytes: a
// serialized scalar, or a zeroed struct for vector-of-struct).
func ResizeVector(sch *schema.Schema, buf []byte, vecHeaderAddr wire.UOffsetT, newLen, elemSize int, fill []byte) []byte {
	oldLen := int(wire.GetUOffsetT(buf[vecHeaderAddr:]))
	deltaElems := newLen - oldLen
	deltaBytes := deltaElems * elemSize
	start := vecHeaderAddr + 4 + wire.UOffsetT(oldLen*elemSize)

	if deltaBytes != 0 {
		buf = Resize(sch, buf, start, deltaBytes)
	}
	wire.PutUOffsetT(buf[vecHeaderAddr:], uint32(newLen))
	for i := 0; i < deltaElems; i++ {
		loc := int(start) + i*elemSize
		copy(buf[loc:loc+elemSize], fill)
	}
	return buf
}
