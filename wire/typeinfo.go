package wire

import "github.com/rawbytedev/reflectbuf/schema"

// sizes is indexed by schema.BaseType and gives each type's wire width.
var sizes = [...]int{0, 1, 1, 1, 1, 2, 2, 4, 4, 8, 8, 4, 8, 4, 4, 4, 4}

// TypeSize returns the wire byte width of a BaseType tag.
func TypeSize(bt schema.BaseType) int {
	if int(bt) >= len(sizes) {
		return 0
	}
	return sizes[bt]
}

// Category classifies a BaseType into the coarse groups the field
// accessors, union resolver and resize walker branch on.
type Category int

const (
	NoneCategory Category = iota
	ScalarIntCategory
	ScalarFloatCategory
	StringCategory
	VectorCategory
	ObjCategory
	UnionCategory
)

// CategoryOf maps a BaseType to its category. UType is ScalarInt (it is the
// enum discriminant that drives a Union field, stored as a uint8). Bool is
// ScalarInt of width 1.
func CategoryOf(bt schema.BaseType) Category {
	switch {
	case bt == schema.None:
		return NoneCategory
	case bt == schema.UType, bt == schema.Bool,
		bt == schema.Byte, bt == schema.UByte,
		bt == schema.Short, bt == schema.UShort,
		bt == schema.Int, bt == schema.UInt,
		bt == schema.Long, bt == schema.ULong:
		return ScalarIntCategory
	case bt == schema.Float, bt == schema.Double:
		return ScalarFloatCategory
	case bt == schema.String:
		return StringCategory
	case bt == schema.Vector:
		return VectorCategory
	case bt == schema.Obj:
		return ObjCategory
	case bt == schema.Union:
		return UnionCategory
	default:
		return NoneCategory
	}
}

// IsScalar reports whether bt is a fixed-width scalar (int or float) that is
// stored inline rather than through a forward offset.
func IsScalar(bt schema.BaseType) bool {
	c := CategoryOf(bt)
	return c == ScalarIntCategory || c == ScalarFloatCategory
}
