package union_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/reflectbuf/copy"
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/union"
	"github.com/rawbytedev/reflectbuf/wire"
)

func buildUnionFixture(t *testing.T, discriminant uint8) (*schema.Schema, wire.Table) {
	t.Helper()
	leaf := &schema.Object{Name: "Leaf"}
	leaf.AddField(&schema.Field{Name: "value", VTableOffset: 4, Type: schema.Type{BaseType: schema.Int}})

	root := &schema.Object{Name: "Root"}
	root.AddField(&schema.Field{Name: "payload_type", VTableOffset: 4, Type: schema.Type{BaseType: schema.UByte}})
	root.AddField(&schema.Field{Name: "payload", VTableOffset: 6, Type: schema.Type{BaseType: schema.Union, Index: 0}})

	enum := &schema.Enum{Name: "Payload"}
	enum.AddValue(schema.EnumValue{Name: "Leaf", Discriminant: 1, Object: leaf})
	sch := &schema.Schema{Objects: []*schema.Object{leaf, root}, Enums: []*schema.Enum{enum}, RootTable: root}

	b := copy.NewFlatBuilder(64)
	b.StartObject()
	b.PrependInt32Slot(4, 42)
	leafOff := b.EndObject()

	b.StartObject()
	if discriminant != 0 {
		b.PrependUint8Slot(4, discriminant)
	}
	b.PrependOffsetSlot(6, leafOff)
	rootOff := b.EndObject()

	buf := b.FinishedBytes(rootOff)
	return sch, wire.RootTable(buf)
}

func TestResolveFindsTargetByDiscriminant(t *testing.T) {
	sch, record := buildUnionFixture(t, 1)
	payload := sch.RootTable.FieldByName("payload")

	obj := union.Resolve(sch, sch.RootTable, payload, record)
	require.NotNil(t, obj)
	assert.Equal(t, "Leaf", obj.Name)
}

func TestResolveReturnsNilForUnknownDiscriminant(t *testing.T) {
	sch, record := buildUnionFixture(t, 9)
	payload := sch.RootTable.FieldByName("payload")

	obj := union.Resolve(sch, sch.RootTable, payload, record)
	assert.Nil(t, obj)
}

func TestResolvePanicsOnNonUnionField(t *testing.T) {
	sch, record := buildUnionFixture(t, 1)
	notUnion := sch.Objects[0].FieldByName("value")

	assert.Panics(t, func() {
		union.Resolve(sch, sch.RootTable, notUnion, record)
	})
}

func TestResolvePanicsOnMissingDiscriminantSibling(t *testing.T) {
	leaf := &schema.Object{Name: "Leaf"}
	orphan := &schema.Object{Name: "Orphan"}
	orphan.AddField(&schema.Field{Name: "payload", VTableOffset: 4, Type: schema.Type{BaseType: schema.Union, Index: 0}})
	enum := &schema.Enum{Name: "Payload"}
	enum.AddValue(schema.EnumValue{Name: "Leaf", Discriminant: 1, Object: leaf})
	sch := &schema.Schema{Objects: []*schema.Object{leaf, orphan}, Enums: []*schema.Enum{enum}, RootTable: orphan}

	b := copy.NewFlatBuilder(32)
	b.StartObject()
	rootOff := b.EndObject()
	buf := b.FinishedBytes(rootOff)

	assert.Panics(t, func() {
		union.Resolve(sch, sch.RootTable, sch.RootTable.FieldByName("payload"), wire.RootTable(buf))
	})
}
