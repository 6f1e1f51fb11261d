// Package schema describes the in-memory reflection graph that the rest of
// reflectbuf consumes: objects, fields, enums and the base type tags of the
// wire format. It never touches a byte buffer — parsing the schema's own
// binary encoding is out of scope; a Schema is
// assumed to already be built, either by hand, from generated accessor code,
// or via LoadYAML/LoadJSON.
package schema

import "sort"

// BaseType is the wire format's primitive type tag. Order matters: the
// numeric tag indexes wire's size table (see wire.TypeSize).
type BaseType byte

const (
	None BaseType = iota
	UType
	Bool
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Long
	ULong
	Float
	Double
	String
	Vector
	Obj
	Union
)

func (b BaseType) String() string {
	switch b {
	case None:
		return "None"
	case UType:
		return "UType"
	case Bool:
		return "Bool"
	case Byte:
		return "Byte"
	case UByte:
		return "UByte"
	case Short:
		return "Short"
	case UShort:
		return "UShort"
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case Long:
		return "Long"
	case ULong:
		return "ULong"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case String:
		return "String"
	case Vector:
		return "Vector"
	case Obj:
		return "Obj"
	case Union:
		return "Union"
	default:
		return "Unknown"
	}
}

// Type describes a field's or vector-element's type: the base tag, and for
// Vector the element's base tag, and for Obj/Vector-of-Obj/Union the index
// into Schema.Objects (Obj) or Schema.Enums (Union).
type Type struct {
	BaseType BaseType
	Element  BaseType // meaningful when BaseType == Vector
	Index    int      // into Objects (Obj, Vector-of-Obj) or Enums (Union)
}

// Field is one member of an Object, addressed by its vtable offset.
type Field struct {
	Name           string
	VTableOffset   uint16 // byte position in the vtable: 4 + 2*slot index, per the flatbuffers vtable convention
	Type           Type
	DefaultInteger int64
	DefaultReal    float64
}

// Object describes a table or struct layout.
type Object struct {
	Name     string
	IsStruct bool
	MinAlign int
	ByteSize int // meaningful for structs; tables are variable-length

	// Fields must be kept sorted by Name for FieldByName's binary search.
	Fields []*Field
}

// FieldByName performs an ordered-by-name lookup, O(log F) via binary
// search. Objects built with AddField keep Fields sorted automatically; an
// Object populated by any other means (e.g. a schema loader assigning
// Fields directly) must sort it by Name itself before calling this.
func (o *Object) FieldByName(name string) *Field {
	i := sort.Search(len(o.Fields), func(i int) bool { return o.Fields[i].Name >= name })
	if i < len(o.Fields) && o.Fields[i].Name == name {
		return o.Fields[i]
	}
	return nil
}

// AddField appends a field and keeps Fields sorted by name.
func (o *Object) AddField(f *Field) {
	o.Fields = append(o.Fields, f)
	sort.Slice(o.Fields, func(i, j int) bool { return o.Fields[i].Name < o.Fields[j].Name })
}

// EnumValue maps one discriminant to the concrete object a union payload of
// that discriminant is laid out as.
type EnumValue struct {
	Name        string
	Discriminant int64
	Object       *Object
}

// Enum is a union's or enum field's set of discriminant values, kept sorted
// by Discriminant for ValueByDiscriminant's binary search.
type Enum struct {
	Name   string
	Values []EnumValue
}

// ValueByDiscriminant looks up the enum entry with the given discriminant,
// O(log V) via binary search.
func (e *Enum) ValueByDiscriminant(d int64) (EnumValue, bool) {
	i := sort.Search(len(e.Values), func(i int) bool { return e.Values[i].Discriminant >= d })
	if i < len(e.Values) && e.Values[i].Discriminant == d {
		return e.Values[i], true
	}
	return EnumValue{}, false
}

// AddValue appends an enum value and keeps Values sorted by discriminant.
func (e *Enum) AddValue(v EnumValue) {
	e.Values = append(e.Values, v)
	sort.Slice(e.Values, func(i, j int) bool { return e.Values[i].Discriminant < e.Values[j].Discriminant })
}

// Schema is the full reflection graph rooted at RootTable.
type Schema struct {
	Objects   []*Object
	Enums     []*Enum
	RootTable *Object
}

// ObjectByName finds an object by name. Objects are typically few enough that a linear scan is fine; unlike
// Fields/Values this is not on any hot resize/copy path.
func (s *Schema) ObjectByName(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}
