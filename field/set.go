package field

import (
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// The typed set_scalar family mutates a field in place and reports whether
// the field was present to mutate. A set on an absent field (one the
// Builder never wrote, so has no vtable slot) is a no-op: growing a table
// to add a field it never had requires the resize/copy machinery, not a
// scalar mutation.

func SetBool(record wire.Table, f *schema.Field, v bool) bool {
	assertType(f.Name, f.Type.BaseType, schema.Bool)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutBool(record.Bytes[addr:], v)
	return true
}

func SetInt8(record wire.Table, f *schema.Field, v int8) bool {
	assertType(f.Name, f.Type.BaseType, schema.Byte)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutInt8(record.Bytes[addr:], v)
	return true
}

func SetUint8(record wire.Table, f *schema.Field, v uint8) bool {
	assertType(f.Name, f.Type.BaseType, schema.UByte)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutUint8(record.Bytes[addr:], v)
	return true
}

func SetInt16(record wire.Table, f *schema.Field, v int16) bool {
	assertType(f.Name, f.Type.BaseType, schema.Short)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutInt16(record.Bytes[addr:], v)
	return true
}

func SetUint16(record wire.Table, f *schema.Field, v uint16) bool {
	assertType(f.Name, f.Type.BaseType, schema.UShort)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutUint16(record.Bytes[addr:], v)
	return true
}

func SetInt32(record wire.Table, f *schema.Field, v int32) bool {
	assertType(f.Name, f.Type.BaseType, schema.Int)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutInt32(record.Bytes[addr:], v)
	return true
}

func SetUint32(record wire.Table, f *schema.Field, v uint32) bool {
	assertType(f.Name, f.Type.BaseType, schema.UInt)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutUint32(record.Bytes[addr:], v)
	return true
}

func SetInt64(record wire.Table, f *schema.Field, v int64) bool {
	assertType(f.Name, f.Type.BaseType, schema.Long)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutInt64(record.Bytes[addr:], v)
	return true
}

func SetUint64(record wire.Table, f *schema.Field, v uint64) bool {
	assertType(f.Name, f.Type.BaseType, schema.ULong)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutUint64(record.Bytes[addr:], v)
	return true
}

func SetFloat32(record wire.Table, f *schema.Field, v float32) bool {
	assertType(f.Name, f.Type.BaseType, schema.Float)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutFloat32(record.Bytes[addr:], v)
	return true
}

func SetFloat64(record wire.Table, f *schema.Field, v float64) bool {
	assertType(f.Name, f.Type.BaseType, schema.Double)
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	wire.PutFloat64(record.Bytes[addr:], v)
	return true
}
