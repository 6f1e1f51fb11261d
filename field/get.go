// Package field implements the typed and untyped field accessors: given
// a record and a schema Field descriptor, read or write its value, applying
// numeric coercion for the untyped any_* family.
package field

import (
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// GetBool returns f's value in record, or its schema default if absent.
// Panics if f is not a Bool field.
func GetBool(record wire.Table, f *schema.Field) bool {
	assertType(f.Name, f.Type.BaseType, schema.Bool)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return f.DefaultInteger != 0
	}
	return wire.GetBool(record.Bytes[addr:])
}

func GetInt8(record wire.Table, f *schema.Field) int8 {
	assertType(f.Name, f.Type.BaseType, schema.Byte)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return int8(f.DefaultInteger)
	}
	return wire.GetInt8(record.Bytes[addr:])
}

func GetUint8(record wire.Table, f *schema.Field) uint8 {
	assertType(f.Name, f.Type.BaseType, schema.UByte)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return uint8(f.DefaultInteger)
	}
	return wire.GetUint8(record.Bytes[addr:])
}

func GetInt16(record wire.Table, f *schema.Field) int16 {
	assertType(f.Name, f.Type.BaseType, schema.Short)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return int16(f.DefaultInteger)
	}
	return wire.GetInt16(record.Bytes[addr:])
}

func GetUint16(record wire.Table, f *schema.Field) uint16 {
	assertType(f.Name, f.Type.BaseType, schema.UShort)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return uint16(f.DefaultInteger)
	}
	return wire.GetUint16(record.Bytes[addr:])
}

func GetInt32(record wire.Table, f *schema.Field) int32 {
	assertType(f.Name, f.Type.BaseType, schema.Int)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return int32(f.DefaultInteger)
	}
	return wire.GetInt32(record.Bytes[addr:])
}

func GetUint32(record wire.Table, f *schema.Field) uint32 {
	assertType(f.Name, f.Type.BaseType, schema.UInt)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return uint32(f.DefaultInteger)
	}
	return wire.GetUint32(record.Bytes[addr:])
}

func GetInt64(record wire.Table, f *schema.Field) int64 {
	assertType(f.Name, f.Type.BaseType, schema.Long)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return f.DefaultInteger
	}
	return wire.GetInt64(record.Bytes[addr:])
}

func GetUint64(record wire.Table, f *schema.Field) uint64 {
	assertType(f.Name, f.Type.BaseType, schema.ULong)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return uint64(f.DefaultInteger)
	}
	return wire.GetUint64(record.Bytes[addr:])
}

func GetFloat32(record wire.Table, f *schema.Field) float32 {
	assertType(f.Name, f.Type.BaseType, schema.Float)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return float32(f.DefaultReal)
	}
	return wire.GetFloat32(record.Bytes[addr:])
}

func GetFloat64(record wire.Table, f *schema.Field) float64 {
	assertType(f.Name, f.Type.BaseType, schema.Double)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return f.DefaultReal
	}
	return wire.GetFloat64(record.Bytes[addr:])
}

// GetString returns a String field's value, or "" if absent. Panics if f is
// not a String field.
func GetString(record wire.Table, f *schema.Field) (string, bool) {
	assertType(f.Name, f.Type.BaseType, schema.String)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return "", false
	}
	return record.StringAt(record.Indirect(addr)), true
}

// GetTable returns the child record an Obj or Union field points at. For an
// inline struct the field slot itself is the struct's address; for a table
// (or a union payload, which is always table-shaped) the slot holds a
// forward offset that must be indirected first.
func GetTable(sch *schema.Schema, record wire.Table, f *schema.Field) (wire.Table, bool) {
	if f.Type.BaseType != schema.Obj && f.Type.BaseType != schema.Union {
		panic(&AssertionError{Field: f.Name, Msg: "not an Obj or Union field"})
	}
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return wire.Table{}, false
	}
	if f.Type.BaseType == schema.Obj && sch.Objects[f.Type.Index].IsStruct {
		return wire.Table{Bytes: record.Bytes, Pos: addr}, true
	}
	return record.ChildTable(addr), true
}

// VectorInfo returns a Vector field's element count and the address of its
// first element, or ok=false if the field is absent.
func VectorInfo(record wire.Table, f *schema.Field) (data wire.UOffsetT, length int, ok bool) {
	assertType(f.Name, f.Type.BaseType, schema.Vector)
	addr, present := record.FieldSlot(f.VTableOffset)
	if !present {
		return 0, 0, false
	}
	vec := record.Indirect(addr)
	return record.VectorDataAt(vec), record.VectorLenAt(vec), true
}
