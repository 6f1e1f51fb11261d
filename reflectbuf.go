// Package reflectbuf lets a program read, mutate and copy buffers built to
// a schema it only learns about at runtime, without generated accessor
// code. It ties together wire (layout), union (union resolution), field
// (typed/untyped accessors), resize (in-place variable-length mutation)
// and copy (schema-driven deep copy) behind a single Record handle.
package reflectbuf

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/reflectbuf/copy"
	"github.com/rawbytedev/reflectbuf/field"
	"github.com/rawbytedev/reflectbuf/resize"
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/union"
	"github.com/rawbytedev/reflectbuf/wire"
)

var (
	ErrTruncatedBuffer = errors.New("reflectbuf: buffer too short for its own offsets")
	ErrUnknownField    = errors.New("reflectbuf: no such field")
)

// Record is a schema-typed handle onto one table (or struct) inside a
// buffer: the object descriptor that gives its fields meaning, plus the
// wire.Table that locates it.
type Record struct {
	Schema *schema.Schema
	Object *schema.Object
	Table  wire.Table
}

// Root returns a Record for buf's root table, as declared by sch.RootTable.
func Root(sch *schema.Schema, buf []byte) *Record {
	return &Record{Schema: sch, Object: sch.RootTable, Table: wire.RootTable(buf)}
}

func (r *Record) mustField(name string) *schema.Field {
	f := r.Object.FieldByName(name)
	if f == nil {
		panic(fmt.Sprintf("reflectbuf: object %q has no field %q", r.Object.Name, name))
	}
	return f
}

// Int returns any scalar field's value coerced to int64. Panics if name
// does not exist on this record's object.
func (r *Record) Int(name string) int64 { return field.AnyInt(r.Table, r.mustField(name)) }

// Float returns any scalar field's value coerced to float64.
func (r *Record) Float(name string) float64 { return field.AnyFloat(r.Table, r.mustField(name)) }

// String formats any field's value: a table-typed Obj field recursively as
// "Name { f: v, ... }", a struct as "Name(struct)", and Vector and Union
// fields as fixed placeholders.
func (r *Record) String(name string) string {
	return field.AnyString(r.Schema, r.Object, r.Table, r.mustField(name))
}

// Child returns the nested Record a Obj or Union field points to.
func (r *Record) Child(name string) (*Record, bool) {
	f := r.mustField(name)
	t, ok := field.GetTable(r.Schema, r.Table, f)
	if !ok {
		return nil, false
	}
	var obj *schema.Object
	switch f.Type.BaseType {
	case schema.Obj:
		obj = r.Schema.Objects[f.Type.Index]
	case schema.Union:
		obj = union.Resolve(r.Schema, r.Object, f, r.Table)
		if obj == nil {
			return nil, false
		}
	default:
		panic(fmt.Sprintf("reflectbuf: field %q is not Obj or Union", name))
	}
	return &Record{Schema: r.Schema, Object: obj, Table: t}, true
}

// SetInt writes v into any scalar field, coercing to its wire width.
func (r *Record) SetInt(name string, v int64) bool { return field.SetAnyInt(r.Table, r.mustField(name), v) }

// SetFloat writes v into any scalar field, coercing to its wire width.
func (r *Record) SetFloat(name string, v float64) bool {
	return field.SetAnyFloat(r.Table, r.mustField(name), v)
}

// SetString overwrites a fixed-length string field in place; use Resize to
// change a string's length instead.
func (r *Record) SetString(name, v string) error {
	return field.SetAnyString(r.Table, r.mustField(name), v)
}

// Resize grows or shrinks a String field to hold val, relocating every
// buffer offset that straddles the change. Returns the new backing slice;
// the Record's own Table.Bytes is updated to match, but any other Record
// or slice alias into the old buffer is now stale.
func (r *Record) Resize(name, val string) []byte {
	f := r.mustField(name)
	addr, ok := r.Table.FieldSlot(f.VTableOffset)
	if !ok {
		panic(fmt.Sprintf("reflectbuf: field %q not present, nothing to resize", name))
	}
	strHeader := r.Table.Indirect(addr)
	buf := resize.SetString(r.Schema, r.Table.Bytes, strHeader, val)
	r.refreshAfterResize(buf)
	return buf
}

// ResizeVector grows or shrinks a scalar vector field to newLen elements,
// filling any new slots with fill (elemSize bytes each).
func (r *Record) ResizeVector(name string, newLen, elemSize int, fill []byte) []byte {
	f := r.mustField(name)
	addr, ok := r.Table.FieldSlot(f.VTableOffset)
	if !ok {
		panic(fmt.Sprintf("reflectbuf: field %q not present, nothing to resize", name))
	}
	vecHeader := r.Table.Indirect(addr)
	buf := resize.ResizeVector(r.Schema, r.Table.Bytes, vecHeader, newLen, elemSize, fill)
	r.refreshAfterResize(buf)
	return buf
}

// refreshAfterResize repoints r at the buffer resize.Resize may have
// reallocated or shifted. A resize can move the root table itself (any
// splice before it shifts its address, the same way it shifts everything
// else after the splice point), so the root's own Record re-derives its
// position from the buffer's root pointer, which resize.Resize keeps
// correct. Any other outstanding Record obtained via Child before the
// resize is now stale and must be re-derived from a fresh Root/Child call —
// the same rule real flatbuffers implementations impose on in-place resize.
func (r *Record) refreshAfterResize(buf []byte) {
	if r.Object == r.Schema.RootTable {
		r.Table = wire.RootTable(buf)
		return
	}
	r.Table.Bytes = buf
}

// Copy deep-copies this record into dst, flattening every table it can
// reach through an offset into an independent copy. Returns the address of
// the copy within dst's buffer.
func (r *Record) Copy(dst copy.Builder) wire.UOffsetT {
	return copy.Record(r.Schema, r.Object, r.Table, dst)
}

// Equal reports whether name holds the same value on r and other.
func (r *Record) Equal(other *Record, name string) bool {
	return field.Equal(r.Schema, r.Object, r.Table, other.Table, r.mustField(name))
}

// Verify walks buf read-only, checking that every offset it can reach
// through sch stays within bounds. It does not validate untrusted input
// exhaustively (a malformed vtable size or a cycle can still defeat it) —
// it exists to catch the common "wrong schema for this buffer" mistake
// early, with a clear error instead of a panic or an out-of-bounds read.
func Verify(sch *schema.Schema, buf []byte) error {
	if len(buf) < 4 {
		return ErrTruncatedBuffer
	}
	root := wire.RootTable(buf)
	return verifyTable(sch, sch.RootTable, root)
}

func verifyTable(sch *schema.Schema, obj *schema.Object, t wire.Table) error {
	if int(t.Pos)+4 > len(t.Bytes) {
		return fmt.Errorf("%w: table at %d", ErrTruncatedBuffer, t.Pos)
	}
	vt := t.VTable()
	if int(vt)+4 > len(t.Bytes) {
		return fmt.Errorf("%w: vtable at %d", ErrTruncatedBuffer, vt)
	}

	for _, f := range obj.Fields {
		addr, ok := t.FieldSlot(f.VTableOffset)
		if !ok {
			continue
		}
		switch f.Type.BaseType {
		case schema.String:
			s := t.Indirect(addr)
			if int(s)+4 > len(t.Bytes) {
				return fmt.Errorf("%w: string header at %d", ErrTruncatedBuffer, s)
			}
			if int(s)+4+t.VectorLenAt(s) > len(t.Bytes) {
				return fmt.Errorf("%w: string body at %d", ErrTruncatedBuffer, s)
			}
		case schema.Obj:
			sub := sch.Objects[f.Type.Index]
			if sub.IsStruct {
				if int(addr)+sub.ByteSize > len(t.Bytes) {
					return fmt.Errorf("%w: struct at %d", ErrTruncatedBuffer, addr)
				}
				continue
			}
			child := t.ChildTable(addr)
			if err := verifyTable(sch, sub, child); err != nil {
				return err
			}
		case schema.Union:
			target := union.Resolve(sch, obj, f, t)
			if target == nil {
				continue
			}
			if err := verifyTable(sch, target, t.ChildTable(addr)); err != nil {
				return err
			}
		case schema.Vector:
			v := t.Indirect(addr)
			if int(v)+4 > len(t.Bytes) {
				return fmt.Errorf("%w: vector header at %d", ErrTruncatedBuffer, v)
			}
			n := t.VectorLenAt(v)
			elemSize := wire.TypeSize(f.Type.Element)
			if f.Type.Element == schema.Obj || f.Type.Element == schema.String {
				elemSize = 4
			}
			if int(v)+4+n*elemSize > len(t.Bytes) {
				return fmt.Errorf("%w: vector body at %d", ErrTruncatedBuffer, v)
			}
		}
	}
	return nil
}
