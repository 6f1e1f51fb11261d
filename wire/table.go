package wire

// Table wraps a byte buffer and a position: the address of one record
// (table or struct) within it. Pos is always the address of the record's
// first byte, which for a table is the soffset slot pointing backward at
// its vtable.
type Table struct {
	Bytes []byte
	Pos   UOffsetT
}

// RootTable returns the Table at the buffer's root, per the format's
// convention that the first four bytes hold a UOffsetT to the root record.
func RootTable(buf []byte) Table {
	return Table{Bytes: buf, Pos: GetUOffsetT(buf[0:])}
}

// VTable returns the address of t's vtable: t.Pos - soffset, where soffset
// is the signed backward reference stored at t.Pos.
func (t Table) VTable() UOffsetT {
	return UOffsetT(SOffsetT(t.Pos) - GetSOffsetT(t.Bytes[t.Pos:]))
}

// Offset resolves a field's vtable slot to its byte offset within the
// record, or 0 if the field is absent (deprecated, or never written).
// vtableOffset is the field's byte position within the vtable
// (schema.Field.VTableOffset), not a field index.
func (t Table) Offset(vtableOffset VOffsetT) VOffsetT {
	vt := t.VTable()
	vtSize := GetVOffsetT(t.Bytes[vt:])
	if vtableOffset < vtSize {
		return GetVOffsetT(t.Bytes[vt+UOffsetT(vtableOffset):])
	}
	return 0
}

// FieldSlot returns the absolute address of the offset/scalar slot for the
// given vtable offset, and whether the field is present.
func (t Table) FieldSlot(vtableOffset VOffsetT) (UOffsetT, bool) {
	off := t.Offset(vtableOffset)
	if off == 0 {
		return 0, false
	}
	return t.Pos + UOffsetT(off), true
}

// Indirect follows the forward UOffsetT stored at addr, returning the
// address it points to.
func (t Table) Indirect(addr UOffsetT) UOffsetT {
	return addr + GetUOffsetT(t.Bytes[addr:])
}

// StringAt reads a length-prefixed string whose header starts at addr.
func (t Table) StringAt(addr UOffsetT) string {
	n := GetUOffsetT(t.Bytes[addr:])
	start := addr + 4
	return string(t.Bytes[start : start+n])
}

// VectorLenAt reads a vector's element count from its header at addr.
func (t Table) VectorLenAt(addr UOffsetT) int {
	return int(GetUOffsetT(t.Bytes[addr:]))
}

// VectorDataAt returns the address of a vector's first element, given the
// address of its length header.
func (t Table) VectorDataAt(addr UOffsetT) UOffsetT {
	return addr + 4
}

// ChildTable returns the Table for a non-struct Obj/Union field whose
// forward offset slot is at addr.
func (t Table) ChildTable(addr UOffsetT) Table {
	return Table{Bytes: t.Bytes, Pos: t.Indirect(addr)}
}
