package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawSchema mirrors the on-disk YAML/JSON shape. Object and enum
// cross-references are by name in the document and resolved to indices by
// resolve() after decoding, since YAML/JSON have no notion of the graph's
// internal pointer structure.
type rawSchema struct {
	Objects   []rawObject `yaml:"objects" json:"objects"`
	Enums     []rawEnum   `yaml:"enums" json:"enums"`
	RootTable string      `yaml:"root_table" json:"root_table"`
}

type rawObject struct {
	Name     string     `yaml:"name" json:"name"`
	IsStruct bool       `yaml:"is_struct" json:"is_struct"`
	MinAlign int        `yaml:"minalign" json:"minalign"`
	ByteSize int        `yaml:"bytesize" json:"bytesize"`
	Fields   []rawField `yaml:"fields" json:"fields"`
}

type rawField struct {
	Name           string `yaml:"name" json:"name"`
	VTableOffset   uint16 `yaml:"vtable_offset" json:"vtable_offset"`
	BaseType       string `yaml:"base_type" json:"base_type"`
	Element        string `yaml:"element,omitempty" json:"element,omitempty"`
	Ref            string `yaml:"ref,omitempty" json:"ref,omitempty"` // object or enum name for Obj/Union/Vector-of-Obj
	DefaultInteger int64  `yaml:"default_integer,omitempty" json:"default_integer,omitempty"`
	DefaultReal    float64 `yaml:"default_real,omitempty" json:"default_real,omitempty"`
}

type rawEnum struct {
	Name   string        `yaml:"name" json:"name"`
	Values []rawEnumValue `yaml:"values" json:"values"`
}

type rawEnumValue struct {
	Name         string `yaml:"name" json:"name"`
	Discriminant int64  `yaml:"discriminant" json:"discriminant"`
	Object       string `yaml:"object" json:"object"`
}

var baseTypeNames = map[string]BaseType{
	"None": None, "UType": UType, "Bool": Bool, "Byte": Byte, "UByte": UByte,
	"Short": Short, "UShort": UShort, "Int": Int, "UInt": UInt, "Long": Long,
	"ULong": ULong, "Float": Float, "Double": Double, "String": String,
	"Vector": Vector, "Obj": Obj, "Union": Union,
}

func parseBaseType(s string) (BaseType, error) {
	if s == "" {
		return None, nil
	}
	bt, ok := baseTypeNames[s]
	if !ok {
		return None, fmt.Errorf("schema: unknown base type %q", s)
	}
	return bt, nil
}

// LoadYAML decodes a Schema from YAML in the shape produced by rawSchema.
func LoadYAML(data []byte) (*Schema, error) {
	var raw rawSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	return resolve(&raw)
}

func resolve(raw *rawSchema) (*Schema, error) {
	s := &Schema{}
	objIndex := make(map[string]int, len(raw.Objects))
	for i, ro := range raw.Objects {
		objIndex[ro.Name] = i
		s.Objects = append(s.Objects, &Object{
			Name:     ro.Name,
			IsStruct: ro.IsStruct,
			MinAlign: ro.MinAlign,
			ByteSize: ro.ByteSize,
		})
	}
	enumIndex := make(map[string]int, len(raw.Enums))
	for i, re := range raw.Enums {
		enumIndex[re.Name] = i
		s.Enums = append(s.Enums, &Enum{Name: re.Name})
	}

	for i, ro := range raw.Objects {
		for _, rf := range ro.Fields {
			bt, err := parseBaseType(rf.BaseType)
			if err != nil {
				return nil, fmt.Errorf("schema: object %s field %s: %w", ro.Name, rf.Name, err)
			}
			t := Type{BaseType: bt}
			if rf.Element != "" {
				et, err := parseBaseType(rf.Element)
				if err != nil {
					return nil, fmt.Errorf("schema: object %s field %s element: %w", ro.Name, rf.Name, err)
				}
				t.Element = et
			}
			switch bt {
			case Obj, Vector:
				if rf.Ref != "" {
					idx, ok := objIndex[rf.Ref]
					if !ok {
						return nil, fmt.Errorf("schema: object %s field %s: unknown ref object %q", ro.Name, rf.Name, rf.Ref)
					}
					t.Index = idx
				}
			case Union:
				idx, ok := enumIndex[rf.Ref]
				if !ok {
					return nil, fmt.Errorf("schema: object %s field %s: unknown ref enum %q", ro.Name, rf.Name, rf.Ref)
				}
				t.Index = idx
			}
			s.Objects[i].AddField(&Field{
				Name:           rf.Name,
				VTableOffset:   rf.VTableOffset,
				Type:           t,
				DefaultInteger: rf.DefaultInteger,
				DefaultReal:    rf.DefaultReal,
			})
		}
	}

	for i, re := range raw.Enums {
		for _, rv := range re.Values {
			objIdx, ok := objIndex[rv.Object]
			if !ok {
				return nil, fmt.Errorf("schema: enum %s value %s: unknown object %q", re.Name, rv.Name, rv.Object)
			}
			s.Enums[i].AddValue(EnumValue{
				Name:         rv.Name,
				Discriminant: rv.Discriminant,
				Object:       s.Objects[objIdx],
			})
		}
	}

	if raw.RootTable != "" {
		idx, ok := objIndex[raw.RootTable]
		if !ok {
			return nil, fmt.Errorf("schema: unknown root_table %q", raw.RootTable)
		}
		s.RootTable = s.Objects[idx]
	}
	return s, nil
}
