package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/reflectbuf/schema"
)

func buildUnionSchema() *schema.Schema {
	leaf := &schema.Object{Name: "Leaf", MinAlign: 4}
	leaf.AddField(&schema.Field{Name: "value", VTableOffset: 4, Type: schema.Type{BaseType: schema.Int}, DefaultInteger: 7})

	root := &schema.Object{Name: "Root", MinAlign: 4}
	enum := &schema.Enum{Name: "Payload"}
	enum.AddValue(schema.EnumValue{Name: "Leaf", Discriminant: 1, Object: leaf})

	sch := &schema.Schema{Objects: []*schema.Object{leaf, root}, Enums: []*schema.Enum{enum}, RootTable: root}
	root.AddField(&schema.Field{Name: "payload_type", VTableOffset: 4, Type: schema.Type{BaseType: schema.UType}})
	root.AddField(&schema.Field{Name: "payload", VTableOffset: 6, Type: schema.Type{BaseType: schema.Union, Index: 0}, DefaultReal: 1.5})
	return sch
}

func TestSchemaCacheRoundTrip(t *testing.T) {
	sch := buildUnionSchema()
	data := encodeSchemaCache(sch)

	got, err := decodeSchemaCache(data)
	require.NoError(t, err)

	require.Len(t, got.Objects, 2)
	assert.Equal(t, "Leaf", got.Objects[0].Name)
	assert.Equal(t, int64(7), got.Objects[0].FieldByName("value").DefaultInteger)

	assert.Equal(t, "Root", got.RootTable.Name)
	payload := got.RootTable.FieldByName("payload")
	require.NotNil(t, payload)
	assert.Equal(t, schema.Union, payload.Type.BaseType)
	assert.Equal(t, 1.5, payload.DefaultReal)

	require.Len(t, got.Enums, 1)
	assert.Equal(t, "Payload", got.Enums[0].Name)
	v, ok := got.Enums[0].ValueByDiscriminant(1)
	require.True(t, ok)
	assert.Same(t, got.Objects[0], v.Object)
}

func TestSchemaCacheRejectsCorruption(t *testing.T) {
	sch := buildUnionSchema()
	data := encodeSchemaCache(sch)
	data[len(data)-1] ^= 0xFF // flip a byte in the trailing CRC

	_, err := decodeSchemaCache(data)
	assert.ErrorIs(t, err, errBadCache)
}

func TestSchemaCacheRejectsTruncation(t *testing.T) {
	sch := buildUnionSchema()
	data := encodeSchemaCache(sch)

	_, err := decodeSchemaCache(data[:len(data)/2])
	assert.Error(t, err)
}
