package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// ErrStringWriteUnsupported is returned by SetAnyString when target is not
// itself a String field, is absent, or holds a string of a different byte
// length than the new value. In-place scalar mutation cannot grow a record
// to hold a new string payload; use resize.SetString for that.
var ErrStringWriteUnsupported = errors.New("field: cannot set a non-string field via SetAnyString")

// AnyInt reads any field as an int64: scalars natively, a truncated float
// toward zero, a String parsed as a decimal integer (0 if absent or not
// parseable), and every other category as 0. Never fails or panics.
func AnyInt(record wire.Table, f *schema.Field) int64 {
	addr, ok := record.FieldSlot(f.VTableOffset)
	switch wire.CategoryOf(f.Type.BaseType) {
	case wire.ScalarIntCategory:
		if !ok {
			return f.DefaultInteger
		}
		return readInt(record.Bytes[addr:], f.Type.BaseType)
	case wire.ScalarFloatCategory:
		if !ok {
			return int64(f.DefaultReal)
		}
		return int64(readFloat(record.Bytes[addr:], f.Type.BaseType))
	case wire.StringCategory:
		s, ok := GetString(record, f)
		if !ok {
			return 0
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

// AnyFloat reads any field as a float64: scalars natively, a String parsed
// as a decimal float (0 if absent or not parseable), and every other
// category delegates to AnyInt. Never fails or panics.
func AnyFloat(record wire.Table, f *schema.Field) float64 {
	addr, ok := record.FieldSlot(f.VTableOffset)
	switch wire.CategoryOf(f.Type.BaseType) {
	case wire.ScalarIntCategory:
		if !ok {
			return float64(f.DefaultInteger)
		}
		return float64(readInt(record.Bytes[addr:], f.Type.BaseType))
	case wire.ScalarFloatCategory:
		if !ok {
			return f.DefaultReal
		}
		return readFloat(record.Bytes[addr:], f.Type.BaseType)
	case wire.StringCategory:
		s, ok := GetString(record, f)
		if !ok {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return float64(AnyInt(record, f))
	}
}

// AnyString formats any field as a string, regardless of what it is
// (bool/int/float/str/obj/union/vector). Mostly for debugging: the Obj
// case does not promise to be JSON compliant, prefixes the object's type
// name, and recurses into every present field the same way. Vector and
// Union are left as placeholders, matching the ground-truth
// GetAnyFieldS this is ported from, which marks them as not implemented.
func AnyString(sch *schema.Schema, parent *schema.Object, record wire.Table, f *schema.Field) string {
	switch wire.CategoryOf(f.Type.BaseType) {
	case wire.ScalarFloatCategory:
		return strconv.FormatFloat(AnyFloat(record, f), 'g', -1, 64)
	case wire.StringCategory:
		s, _ := GetString(record, f)
		return s
	case wire.ObjCategory:
		return anyObjString(sch, record, f)
	case wire.VectorCategory:
		return "[(elements)]"
	case wire.UnionCategory:
		return "(union)"
	default:
		return strconv.FormatInt(AnyInt(record, f), 10)
	}
}

// anyObjString renders an Obj field the way GetAnyFieldS does: a bare
// "Name(struct)" for inline structs (struct field values are not walked,
// matching the ground truth's own TODO), or "Name { f: v, ... }" for
// tables, recursing into every field present in the child and quoting
// String values.
func anyObjString(sch *schema.Schema, record wire.Table, f *schema.Field) string {
	obj := sch.Objects[f.Type.Index]
	if obj.IsStruct {
		return obj.Name + "(struct)"
	}
	child, ok := GetTable(sch, record, f)
	if !ok {
		return obj.Name + " { }"
	}

	var b strings.Builder
	b.WriteString(obj.Name)
	b.WriteString(" { ")
	for _, cf := range obj.Fields {
		if _, present := child.FieldSlot(cf.VTableOffset); !present {
			continue
		}
		val := AnyString(sch, obj, child, cf)
		if cf.Type.BaseType == schema.String {
			val = `"` + val + `"`
		}
		b.WriteString(cf.Name)
		b.WriteString(": ")
		b.WriteString(val)
		b.WriteString(", ")
	}
	b.WriteString("}")
	return b.String()
}

// SetAnyInt writes v into any scalar field, coercing to the field's actual
// wire width and category. Each branch returns immediately after handling
// its category, so a float-typed target is written exactly once.
func SetAnyInt(record wire.Table, f *schema.Field, v int64) bool {
	switch wire.CategoryOf(f.Type.BaseType) {
	case wire.ScalarIntCategory:
		return writeInt(record, f, v)
	case wire.ScalarFloatCategory:
		return writeFloat(record, f, float64(v))
	default:
		panic(&AssertionError{Field: f.Name, Msg: "not a scalar field"})
	}
}

// SetAnyFloat writes v into any scalar field, truncating toward zero if the
// target is integral.
func SetAnyFloat(record wire.Table, f *schema.Field, v float64) bool {
	switch wire.CategoryOf(f.Type.BaseType) {
	case wire.ScalarIntCategory:
		return writeInt(record, f, int64(v))
	case wire.ScalarFloatCategory:
		return writeFloat(record, f, v)
	default:
		panic(&AssertionError{Field: f.Name, Msg: "not a scalar field"})
	}
}

// SetAnyString writes v into a String field. Any other target returns
// ErrStringWriteUnsupported rather than silently doing nothing: scalar
// mutation cannot relocate the buffer a new string length requires.
func SetAnyString(record wire.Table, f *schema.Field, v string) error {
	if f.Type.BaseType != schema.String {
		return ErrStringWriteUnsupported
	}
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return ErrStringWriteUnsupported
	}
	strAddr := record.Indirect(addr)
	n := record.VectorLenAt(strAddr)
	if n != len(v) {
		return ErrStringWriteUnsupported
	}
	copy(record.Bytes[strAddr+4:strAddr+4+wire.UOffsetT(n)], v)
	return nil
}

func readInt(b []byte, bt schema.BaseType) int64 {
	switch bt {
	case schema.UType, schema.Bool, schema.UByte:
		return int64(wire.GetUint8(b))
	case schema.Byte:
		return int64(wire.GetInt8(b))
	case schema.Short:
		return int64(wire.GetInt16(b))
	case schema.UShort:
		return int64(wire.GetUint16(b))
	case schema.Int:
		return int64(wire.GetInt32(b))
	case schema.UInt:
		return int64(wire.GetUint32(b))
	case schema.Long:
		return wire.GetInt64(b)
	case schema.ULong:
		return int64(wire.GetUint64(b))
	default:
		panic(&AssertionError{Msg: fmt.Sprintf("not an integer base type: %s", bt)})
	}
}

func readFloat(b []byte, bt schema.BaseType) float64 {
	switch bt {
	case schema.Float:
		return float64(wire.GetFloat32(b))
	case schema.Double:
		return wire.GetFloat64(b)
	default:
		panic(&AssertionError{Msg: fmt.Sprintf("not a float base type: %s", bt)})
	}
}

func writeInt(record wire.Table, f *schema.Field, v int64) bool {
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	b := record.Bytes[addr:]
	switch f.Type.BaseType {
	case schema.UType, schema.Bool, schema.UByte:
		wire.PutUint8(b, uint8(v))
	case schema.Byte:
		wire.PutInt8(b, int8(v))
	case schema.Short:
		wire.PutInt16(b, int16(v))
	case schema.UShort:
		wire.PutUint16(b, uint16(v))
	case schema.Int:
		wire.PutInt32(b, int32(v))
	case schema.UInt:
		wire.PutUint32(b, uint32(v))
	case schema.Long:
		wire.PutInt64(b, v)
	case schema.ULong:
		wire.PutUint64(b, uint64(v))
	default:
		panic(&AssertionError{Field: f.Name, Msg: fmt.Sprintf("not an integer base type: %s", f.Type.BaseType)})
	}
	return true
}

func writeFloat(record wire.Table, f *schema.Field, v float64) bool {
	addr, ok := record.FieldSlot(f.VTableOffset)
	if !ok {
		return false
	}
	b := record.Bytes[addr:]
	switch f.Type.BaseType {
	case schema.Float:
		wire.PutFloat32(b, float32(v))
	case schema.Double:
		wire.PutFloat64(b, v)
	default:
		panic(&AssertionError{Field: f.Name, Msg: fmt.Sprintf("not a float base type: %s", f.Type.BaseType)})
	}
	return true
}
