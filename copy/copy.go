package copy

import (
	"fmt"

	"github.com/rawbytedev/reflectbuf/field"
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/union"
	"github.com/rawbytedev/reflectbuf/wire"
)

// Record copies src (an instance of obj) into dst, returning the address of
// the freshly built copy. Children are copied depth-first before their
// parent's slot is written, since a forward offset can only be recorded
// once the child's final address is known — the same constraint that
// shapes FlatBuilder's own EndObject.
func Record(sch *schema.Schema, obj *schema.Object, src wire.Table, dst Builder) wire.UOffsetT {
	dst.StartObject()

	for _, f := range obj.Fields {
		switch wire.CategoryOf(f.Type.BaseType) {
		case wire.ScalarIntCategory:
			if _, ok := src.FieldSlot(f.VTableOffset); ok {
				copyScalarInt(dst, f, field.AnyInt(src, f))
			}
		case wire.ScalarFloatCategory:
			if _, ok := src.FieldSlot(f.VTableOffset); ok {
				copyScalarFloat(dst, f, field.AnyFloat(src, f))
			}
		case wire.StringCategory:
			if s, ok := field.GetString(src, f); ok {
				dst.PrependOffsetSlot(f.VTableOffset, dst.CreateString(s))
			}
		case wire.ObjCategory:
			copyObjField(sch, obj, f, src, dst)
		case wire.VectorCategory:
			copyVectorField(sch, f, src, dst)
		case wire.UnionCategory:
			copyUnionField(sch, obj, f, src, dst)
		default:
			panic(fmt.Sprintf("copy: field %q has uncopyable base type %s", f.Name, f.Type.BaseType))
		}
	}

	return dst.EndObject()
}

func copyObjField(sch *schema.Schema, parent *schema.Object, f *schema.Field, src wire.Table, dst Builder) {
	child, ok := field.GetTable(sch, src, f)
	if !ok {
		return
	}
	childObj := sch.Objects[f.Type.Index]
	if childObj.IsStruct {
		dst.PrependStructSlot(f.VTableOffset, src.Bytes[child.Pos:int(child.Pos)+childObj.ByteSize])
		return
	}
	dst.PrependOffsetSlot(f.VTableOffset, Record(sch, childObj, child, dst))
}

func copyUnionField(sch *schema.Schema, parent *schema.Object, f *schema.Field, src wire.Table, dst Builder) {
	child, ok := field.GetTable(sch, src, f)
	if !ok {
		return
	}
	target := union.Resolve(sch, parent, f, src)
	if target == nil {
		return
	}
	dst.PrependOffsetSlot(f.VTableOffset, Record(sch, target, child, dst))
}

func copyVectorField(sch *schema.Schema, f *schema.Field, src wire.Table, dst Builder) {
	data, n, ok := field.VectorInfo(src, f)
	if !ok {
		return
	}

	switch f.Type.Element {
	case schema.Obj:
		elemObj := sch.Objects[f.Type.Index]
		if elemObj.IsStruct {
			raw := src.Bytes[data : int(data)+n*elemObj.ByteSize]
			dst.PrependOffsetSlot(f.VTableOffset, dst.CreateRawVector(raw, elemObj.ByteSize))
			return
		}
		targets := make([]wire.UOffsetT, n)
		for i := 0; i < n; i++ {
			elemAddr := data + wire.UOffsetT(i*4)
			elemRef := src.Indirect(elemAddr)
			targets[i] = Record(sch, elemObj, wire.Table{Bytes: src.Bytes, Pos: elemRef}, dst)
		}
		dst.PrependOffsetSlot(f.VTableOffset, dst.CreateOffsetVector(targets))
	case schema.String:
		targets := make([]wire.UOffsetT, n)
		for i := 0; i < n; i++ {
			elemAddr := data + wire.UOffsetT(i*4)
			elemRef := src.Indirect(elemAddr)
			targets[i] = dst.CreateString(src.StringAt(elemRef))
		}
		dst.PrependOffsetSlot(f.VTableOffset, dst.CreateOffsetVector(targets))
	default:
		elemSize := wire.TypeSize(f.Type.Element)
		raw := src.Bytes[data : int(data)+n*elemSize]
		dst.PrependOffsetSlot(f.VTableOffset, dst.CreateRawVector(raw, elemSize))
	}
}

func copyScalarInt(dst Builder, f *schema.Field, v int64) {
	switch f.Type.BaseType {
	case schema.UType, schema.Bool, schema.UByte:
		dst.PrependUint8Slot(f.VTableOffset, uint8(v))
	case schema.Byte:
		dst.PrependInt8Slot(f.VTableOffset, int8(v))
	case schema.Short:
		dst.PrependInt16Slot(f.VTableOffset, int16(v))
	case schema.UShort:
		dst.PrependUint16Slot(f.VTableOffset, uint16(v))
	case schema.Int:
		dst.PrependInt32Slot(f.VTableOffset, int32(v))
	case schema.UInt:
		dst.PrependUint32Slot(f.VTableOffset, uint32(v))
	case schema.Long:
		dst.PrependInt64Slot(f.VTableOffset, v)
	case schema.ULong:
		dst.PrependUint64Slot(f.VTableOffset, uint64(v))
	}
}

func copyScalarFloat(dst Builder, f *schema.Field, v float64) {
	switch f.Type.BaseType {
	case schema.Float:
		dst.PrependFloat32Slot(f.VTableOffset, float32(v))
	case schema.Double:
		dst.PrependFloat64Slot(f.VTableOffset, v)
	}
}
