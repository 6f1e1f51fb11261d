package field

import (
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// Equal reports whether f holds the same value in a and b: byte-equal for
// scalars and strings, structural for Obj (recurses field by field) and
// absent-vs-absent for Vector/Union (compared by length/discriminant only,
// since a full deep comparison belongs to copy.Record's tree walk, not
// a single-field helper). Backs round-trip tests that check a copy or
// resize left an unrelated field untouched.
func Equal(sch *schema.Schema, obj *schema.Object, a, b wire.Table, f *schema.Field) bool {
	switch wire.CategoryOf(f.Type.BaseType) {
	case wire.ScalarIntCategory:
		return AnyInt(a, f) == AnyInt(b, f)
	case wire.ScalarFloatCategory:
		return AnyFloat(a, f) == AnyFloat(b, f)
	case wire.StringCategory:
		sa, oka := GetString(a, f)
		sb, okb := GetString(b, f)
		return oka == okb && sa == sb
	case wire.VectorCategory:
		_, na, oka := VectorInfo(a, f)
		_, nb, okb := VectorInfo(b, f)
		return oka == okb && na == nb
	case wire.ObjCategory:
		ta, oka := GetTable(sch, a, f)
		tb, okb := GetTable(sch, b, f)
		if oka != okb {
			return false
		}
		if !oka {
			return true
		}
		child := sch.Objects[f.Type.Index]
		for _, cf := range child.Fields {
			if !Equal(sch, child, ta, tb, cf) {
				return false
			}
		}
		return true
	case wire.UnionCategory:
		discA, okA := a.FieldSlot(mustDiscriminant(obj, f).VTableOffset)
		discB, okB := b.FieldSlot(mustDiscriminant(obj, f).VTableOffset)
		if okA != okB {
			return false
		}
		return !okA || wire.GetUint8(a.Bytes[discA:]) == wire.GetUint8(b.Bytes[discB:])
	default:
		return true
	}
}

// discriminantSuffix mirrors union.discriminantSuffix; kept local since
// Equal only needs the sibling's vtable offset, not full union resolution.
const discriminantSuffix = "_type"

func mustDiscriminant(obj *schema.Object, unionField *schema.Field) *schema.Field {
	d := obj.FieldByName(unionField.Name + discriminantSuffix)
	if d == nil {
		panic(&AssertionError{Field: unionField.Name, Msg: "missing union discriminant sibling"})
	}
	return d
}
