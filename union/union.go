// Package union implements the union resolver (U): given a parent object,
// a union-typed field and the record instance, it finds the sibling
// discriminant field and maps its value through the schema's enum to the
// concrete object the union payload is laid out as.
package union

import (
	"fmt"

	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// discriminantSuffix is the naming convention: a union field named
// "payload" has its discriminant sibling named "payload_type". An
// implementation must preserve this convention or break compatibility
// with existing schemas.
const discriminantSuffix = "_type"

// Resolve finds the concrete Object a union field's payload is shaped as,
// by looking up the sibling "<name>_type" field in parent, reading it as a
// uint8 discriminant from record, and mapping that value through the
// union field's Enum.
//
// A missing "<name>_type" sibling is a schema error and panics.
func Resolve(sch *schema.Schema, parent *schema.Object, unionField *schema.Field, record wire.Table) *schema.Object {
	if unionField.Type.BaseType != schema.Union {
		panic(fmt.Sprintf("union: field %q is not a union field", unionField.Name))
	}
	discField := parent.FieldByName(unionField.Name + discriminantSuffix)
	if discField == nil {
		panic(fmt.Sprintf("union: object %q has union field %q with no sibling discriminant %q",
			parent.Name, unionField.Name, unionField.Name+discriminantSuffix))
	}

	var discriminant int64
	if addr, ok := record.FieldSlot(discField.VTableOffset); ok {
		discriminant = int64(wire.GetUint8(record.Bytes[addr:]))
	} else {
		discriminant = discField.DefaultInteger
	}

	enum := sch.Enums[unionField.Type.Index]
	val, ok := enum.ValueByDiscriminant(discriminant)
	if !ok {
		return nil
	}
	return val.Object
}
