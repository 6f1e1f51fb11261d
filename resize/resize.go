// Package resize implements the in-place variable-length resize engine (R):
// growing or shrinking a string or vector inside an existing buffer by
// walking every offset the schema says can reach past the resize point,
// patching each one exactly once, then splicing the raw bytes.
package resize

import (
	"fmt"

	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/union"
	"github.com/rawbytedev/reflectbuf/wire"
)

// largestAlignment is the widest scalar the format ever aligns to (int64,
// uint64, float64 are all 8 bytes); a resize delta is rounded up to a
// multiple of it so every aligned offset downstream stays aligned.
const largestAlignment = 8

// context carries the state of one resize pass: the buffer being walked,
// the splice point, the (already alignment-rounded) delta, and the visit
// bitset that guarantees each offset slot is read and patched at most once.
type context struct {
	sch     *schema.Schema
	buf     []byte
	start   wire.UOffsetT
	delta   int
	visited []bool
}

func newContext(sch *schema.Schema, buf []byte, start wire.UOffsetT, delta int) *context {
	return &context{
		sch:     sch,
		buf:     buf,
		start:   start,
		delta:   delta,
		visited: make([]bool, len(buf)/4+1),
	}
}

func (c *context) isVisited(addr wire.UOffsetT) bool { return c.visited[addr/4] }
func (c *context) markVisited(addr wire.UOffsetT)    { c.visited[addr/4] = true }

// straddle checks whether the splice point lies between first and second,
// inclusive at both ends; if it does, the offset stored at offsetloc must
// move by delta*sign to keep pointing at the same logical target once the
// splice happens. For the signed vtable reference the direction is baked
// into how each call site orders first and second. For an unsigned
// reference first is the slot and second its target; a target below its
// slot (FlatBuilder writes children before their parent, so the stored
// offset wraps modulo 2^32) is checked with the two swapped and sign negated.
func (c *context) straddle(first, second, offsetloc wire.UOffsetT, sign int, signedRef bool) {
	if !signedRef && second < first {
		first, second, sign = second, first, -sign
	}
	if first > c.start || second < c.start {
		return
	}
	if signedRef {
		old := wire.GetSOffsetT(c.buf[offsetloc:])
		wire.PutSOffsetT(c.buf[offsetloc:], old+int32(c.delta*sign))
	} else {
		old := wire.GetUOffsetT(c.buf[offsetloc:])
		wire.PutUOffsetT(c.buf[offsetloc:], uint32(int32(old)+int32(c.delta*sign)))
	}
	c.markVisited(offsetloc)
}

func (c *context) resizeTable(obj *schema.Object, tableAddr wire.UOffsetT) {
	if c.isVisited(tableAddr) {
		return
	}
	t := wire.Table{Bytes: c.buf, Pos: tableAddr}
	vtableAddr := t.VTable()
	// The first check covers a vtable placed after its table, the second a
	// vtable placed before it, which is where FlatBuilder puts it.
	c.straddle(tableAddr, vtableAddr, tableAddr, -1, true)
	c.straddle(vtableAddr, tableAddr, tableAddr, -1, true)

	// There is no early out for a table at or after the splice point: a
	// child FlatBuilder wrote before its parent sits at a lower address, so
	// such a table can still hold offsets that cross the splice.
	for _, f := range obj.Fields {
		if wire.IsScalar(f.Type.BaseType) {
			continue
		}
		offset := t.Offset(f.VTableOffset)
		if offset == 0 {
			continue // field not stored
		}

		var subobj *schema.Object
		if f.Type.BaseType == schema.Obj {
			subobj = c.sch.Objects[f.Type.Index]
			if subobj.IsStruct {
				continue // inline, no indirection to patch
			}
		}

		offsetloc := tableAddr + wire.UOffsetT(offset)
		if c.isVisited(offsetloc) {
			continue
		}
		ref := offsetloc + wire.GetUOffsetT(c.buf[offsetloc:])
		c.straddle(offsetloc, ref, offsetloc, 1, false)

		switch f.Type.BaseType {
		case schema.Obj:
			c.resizeTable(subobj, ref)
		case schema.Vector:
			c.resizeVectorElements(f, ref)
		case schema.Union:
			target := union.Resolve(c.sch, obj, f, t)
			if target != nil {
				c.resizeTable(target, ref)
			}
		case schema.String:
			// no substructure to walk
		default:
			panic(fmt.Sprintf("resize: field %q has unwalkable base type %s", f.Name, f.Type.BaseType))
		}
	}
}

// resizeVectorElements walks a vector's own element offsets. Only
// vector-of-Obj and vector-of-String need this: scalars are inline and
// vector-of-struct elements are inline too. Vector-of-String is not part of
// the upstream algorithm but is walked here per this project's resolution
// of the "should strings-in-vectors be descended into" open question:
// leaving them out would let a resize silently corrupt a straddling string
// offset inside the vector.
func (c *context) resizeVectorElements(f *schema.Field, vecAddr wire.UOffsetT) {
	elem := f.Type.Element
	if elem != schema.Obj && elem != schema.String {
		return
	}
	var elemObj *schema.Object
	if elem == schema.Obj {
		elemObj = c.sch.Objects[f.Type.Index]
		if elemObj.IsStruct {
			return
		}
	}

	n := wire.GetUOffsetT(c.buf[vecAddr:])
	data := vecAddr + 4
	for i := wire.UOffsetT(0); i < n; i++ {
		loc := data + i*4
		if c.isVisited(loc) {
			continue
		}
		dest := loc + wire.GetUOffsetT(c.buf[loc:])
		c.straddle(loc, dest, loc, 1, false)
		if elem == schema.Obj {
			c.resizeTable(elemObj, dest)
		}
	}
}

// Resize inserts (delta > 0) or removes (delta < 0) bytes at start,
// adjusting every offset in the buffer that would otherwise end up
// pointing across the splice. delta is rounded up to the widest alignment
// the format uses, so callers may end up moving slightly more than they
// asked for and should read the buffer's new length back rather than
// assume len(buf)+delta.
func Resize(sch *schema.Schema, buf []byte, start wire.UOffsetT, delta int) []byte {
	mask := largestAlignment - 1
	delta = (delta + mask) &^ mask
	if delta == 0 {
		return buf
	}

	c := newContext(sch, buf, start, delta)
	root := wire.RootTable(buf)
	c.straddle(0, root.Pos, 0, 1, false)
	c.resizeTable(sch.RootTable, root.Pos)

	return splice(c.buf, start, delta)
}

func splice(buf []byte, start wire.UOffsetT, delta int) []byte {
	if delta > 0 {
		buf = append(buf, make([]byte, delta)...)
		copy(buf[int(start)+delta:], buf[start:len(buf)-delta])
		clear(buf[start : int(start)+delta])
		return buf
	}
	n := -delta
	copy(buf[start:], buf[int(start)+n:])
	return buf[:len(buf)-n]
}
