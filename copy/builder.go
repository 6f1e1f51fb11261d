// Package copy implements the schema-driven deep copy (C): flattening any
// object reachable from a record — however many tables it shares via
// forward offsets — into a fresh, append-only buffer where every object
// gets its own copy. Two records that pointed at the same shared child
// before the copy end up with two independent children after it: the
// walk has no visit set, unlike resize's.
package copy

import (
	"encoding/binary"

	"github.com/rawbytedev/reflectbuf/wire"
)

// Builder is the append-only destination a copy is written into. It
// mirrors the shape of a real flatbuffers builder (StartObject/EndObject,
// CreateString, PrependXSlot) but builds forward, matching this project's
// forward-addressed wire.Table rather than the classic backward-growing
// buffer convention.
type Builder interface {
	Reset()
	Bytes() []byte

	StartObject()
	EndObject() wire.UOffsetT

	PrependBoolSlot(voffset uint16, v bool)
	PrependInt8Slot(voffset uint16, v int8)
	PrependUint8Slot(voffset uint16, v uint8)
	PrependInt16Slot(voffset uint16, v int16)
	PrependUint16Slot(voffset uint16, v uint16)
	PrependInt32Slot(voffset uint16, v int32)
	PrependUint32Slot(voffset uint16, v uint32)
	PrependInt64Slot(voffset uint16, v int64)
	PrependUint64Slot(voffset uint16, v uint64)
	PrependFloat32Slot(voffset uint16, v float32)
	PrependFloat64Slot(voffset uint16, v float64)
	PrependOffsetSlot(voffset uint16, target wire.UOffsetT)
	PrependStructSlot(voffset uint16, raw []byte)

	CreateString(s string) wire.UOffsetT
	CreateRawVector(data []byte, elemSize int) wire.UOffsetT
	CreateOffsetVector(targets []wire.UOffsetT) wire.UOffsetT

	FinishedBytes(root wire.UOffsetT) []byte
}

type pendingSlot struct {
	voffset  uint16
	data     []byte
	isOffset bool
	target   wire.UOffsetT
}

// FlatBuilder is the concrete Builder. Its scratch buffer follows a
// Reset()-and-reuse convention: capacity is kept across Reset calls so
// repeated copies in a batch don't reallocate.
type FlatBuilder struct {
	buf     []byte
	pending []pendingSlot
}

// NewFlatBuilder allocates a builder with initialSize bytes of scratch
// capacity already reserved.
func NewFlatBuilder(initialSize int) *FlatBuilder {
	return &FlatBuilder{buf: make([]byte, 0, initialSize)}
}

func (b *FlatBuilder) Reset() {
	b.buf = b.buf[:0]
	b.pending = b.pending[:0]
}

func (b *FlatBuilder) Bytes() []byte { return b.buf }

func (b *FlatBuilder) StartObject() {
	b.pending = b.pending[:0]
}

func (b *FlatBuilder) addScalar(voffset uint16, data []byte) {
	b.pending = append(b.pending, pendingSlot{voffset: voffset, data: data})
}

func (b *FlatBuilder) PrependBoolSlot(voffset uint16, v bool) {
	d := make([]byte, 1)
	wire.PutBool(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependInt8Slot(voffset uint16, v int8) {
	d := make([]byte, 1)
	wire.PutInt8(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependUint8Slot(voffset uint16, v uint8) {
	d := make([]byte, 1)
	wire.PutUint8(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependInt16Slot(voffset uint16, v int16) {
	d := make([]byte, 2)
	wire.PutInt16(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependUint16Slot(voffset uint16, v uint16) {
	d := make([]byte, 2)
	wire.PutUint16(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependInt32Slot(voffset uint16, v int32) {
	d := make([]byte, 4)
	wire.PutInt32(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependUint32Slot(voffset uint16, v uint32) {
	d := make([]byte, 4)
	wire.PutUint32(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependInt64Slot(voffset uint16, v int64) {
	d := make([]byte, 8)
	wire.PutInt64(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependUint64Slot(voffset uint16, v uint64) {
	d := make([]byte, 8)
	wire.PutUint64(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependFloat32Slot(voffset uint16, v float32) {
	d := make([]byte, 4)
	wire.PutFloat32(d, v)
	b.addScalar(voffset, d)
}
func (b *FlatBuilder) PrependFloat64Slot(voffset uint16, v float64) {
	d := make([]byte, 8)
	wire.PutFloat64(d, v)
	b.addScalar(voffset, d)
}

// PrependOffsetSlot records a forward reference to target. The relative
// offset can't be computed yet — this table's own final address isn't
// known until EndObject places it — so the target is carried as an
// absolute address and resolved in the finalize pass.
func (b *FlatBuilder) PrependOffsetSlot(voffset uint16, target wire.UOffsetT) {
	b.pending = append(b.pending, pendingSlot{voffset: voffset, isOffset: true, target: target})
}

// PrependStructSlot inlines raw is a struct's fixed-size bytes directly
// into the table; structs have no vtable indirection of their own.
func (b *FlatBuilder) PrependStructSlot(voffset uint16, raw []byte) {
	cp := append([]byte(nil), raw...)
	b.addScalar(voffset, cp)
}

func (b *FlatBuilder) align(n int) {
	if n <= 1 {
		return
	}
	pad := (n - len(b.buf)%n) % n
	if pad > 0 {
		b.buf = append(b.buf, make([]byte, pad)...)
	}
}

// EndObject lays out the pending slots into a vtable and a table, in that
// order, and returns the table's address.
func (b *FlatBuilder) EndObject() wire.UOffsetT {
	var maxVoffset uint16
	for _, s := range b.pending {
		// Each slot's vtable entry is a single u16, regardless of the
		// field's own wire width.
		if end := s.voffset + 2; end > maxVoffset {
			maxVoffset = end
		}
	}
	if maxVoffset < 4 {
		maxVoffset = 4
	}

	content := make([]byte, 4) // reserved for the soffset back-link
	relOffset := make(map[uint16]uint16, len(b.pending))
	for _, s := range b.pending {
		width := len(s.data)
		if s.isOffset {
			width = 4
		}
		if width > 1 {
			pad := (width - len(content)%width) % width
			content = append(content, make([]byte, pad)...)
		}
		relOffset[s.voffset] = uint16(len(content))
		if s.isOffset {
			content = append(content, make([]byte, 4)...)
		} else {
			content = append(content, s.data...)
		}
	}

	b.align(2)
	vtableAddr := wire.UOffsetT(len(b.buf))
	vtable := make([]byte, maxVoffset)
	binary.LittleEndian.PutUint16(vtable[0:], maxVoffset)
	binary.LittleEndian.PutUint16(vtable[2:], uint16(len(content)))
	for _, s := range b.pending {
		binary.LittleEndian.PutUint16(vtable[s.voffset:], relOffset[s.voffset])
	}
	b.buf = append(b.buf, vtable...)

	tableAddr := wire.UOffsetT(len(b.buf))
	binary.LittleEndian.PutUint32(content[0:], tableAddr-vtableAddr)
	for _, s := range b.pending {
		if !s.isOffset {
			continue
		}
		slotAddr := tableAddr + wire.UOffsetT(relOffset[s.voffset])
		binary.LittleEndian.PutUint32(content[relOffset[s.voffset]:], s.target-slotAddr)
	}
	b.buf = append(b.buf, content...)

	b.pending = b.pending[:0]
	return tableAddr
}

func (b *FlatBuilder) CreateString(s string) wire.UOffsetT {
	b.align(4)
	addr := wire.UOffsetT(len(b.buf))
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(s)))
	b.buf = append(b.buf, hdr[:]...)
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return addr
}

// CreateRawVector writes a vector whose elements are inline scalars or
// structs: the raw bytes are copied verbatim after a length header.
func (b *FlatBuilder) CreateRawVector(data []byte, elemSize int) wire.UOffsetT {
	if elemSize > 1 {
		b.align(elemSize)
	}
	addr := wire.UOffsetT(len(b.buf))
	var hdr [4]byte
	n := 0
	if elemSize > 0 {
		n = len(data) / elemSize
	}
	binary.LittleEndian.PutUint32(hdr[:], uint32(n))
	b.buf = append(b.buf, hdr[:]...)
	b.buf = append(b.buf, data...)
	return addr
}

// CreateOffsetVector writes a vector of forward offsets to already-built
// targets (vector-of-string, vector-of-table).
func (b *FlatBuilder) CreateOffsetVector(targets []wire.UOffsetT) wire.UOffsetT {
	b.align(4)
	addr := wire.UOffsetT(len(b.buf))
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(targets)))
	b.buf = append(b.buf, hdr[:]...)
	dataStart := wire.UOffsetT(len(b.buf))
	b.buf = append(b.buf, make([]byte, len(targets)*4)...)
	for i, target := range targets {
		slotAddr := dataStart + wire.UOffsetT(i*4)
		binary.LittleEndian.PutUint32(b.buf[slotAddr:], target-slotAddr)
	}
	return addr
}

// FinishedBytes writes the root pointer at address 0 and returns the
// completed buffer. Callers must not reuse the builder for another record
// without a Reset in between.
func (b *FlatBuilder) FinishedBytes(root wire.UOffsetT) []byte {
	out := make([]byte, 4, 4+len(b.buf))
	binary.LittleEndian.PutUint32(out, root+4)
	out = append(out, b.buf...)
	return out
}
