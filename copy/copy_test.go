package copy_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/reflectbuf/copy"
	"github.com/rawbytedev/reflectbuf/field"
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

func buildNestedSchema() *schema.Schema {
	leaf := &schema.Object{Name: "Leaf"}
	leaf.AddField(&schema.Field{Name: "value", VTableOffset: 4, Type: schema.Type{BaseType: schema.Int}})

	root := &schema.Object{Name: "Root"}
	sch := &schema.Schema{Objects: []*schema.Object{leaf, root}, RootTable: root}
	root.AddField(&schema.Field{Name: "name", VTableOffset: 4, Type: schema.Type{BaseType: schema.String}})
	root.AddField(&schema.Field{Name: "child", VTableOffset: 6, Type: schema.Type{BaseType: schema.Obj, Index: 0}})
	root.AddField(&schema.Field{Name: "xs", VTableOffset: 8, Type: schema.Type{BaseType: schema.Vector, Element: schema.Int}})
	return sch
}

func buildSource(t *testing.T, sch *schema.Schema) []byte {
	t.Helper()
	leaf := sch.Objects[0]
	root := sch.RootTable

	b := copy.NewFlatBuilder(128)

	b.StartObject()
	b.PrependInt32Slot(leaf.FieldByName("value").VTableOffset, 99)
	leafOff := b.EndObject()

	nameOff := b.CreateString("root")

	xs := make([]byte, 8)
	binary.LittleEndian.PutUint32(xs[0:], 1)
	binary.LittleEndian.PutUint32(xs[4:], 2)
	xsOff := b.CreateRawVector(xs, 4)

	b.StartObject()
	b.PrependOffsetSlot(root.FieldByName("name").VTableOffset, nameOff)
	b.PrependOffsetSlot(root.FieldByName("child").VTableOffset, leafOff)
	b.PrependOffsetSlot(root.FieldByName("xs").VTableOffset, xsOff)
	rootOff := b.EndObject()

	return b.FinishedBytes(rootOff)
}

func TestCopyRecordFlattensNestedTable(t *testing.T) {
	sch := buildNestedSchema()
	src := wire.RootTable(buildSource(t, sch))

	dst := copy.NewFlatBuilder(128)
	newRootOff := copy.Record(sch, sch.RootTable, src, dst)
	out := dst.FinishedBytes(newRootOff)

	rec := wire.RootTable(out)
	name, ok := field.GetString(rec, sch.RootTable.FieldByName("name"))
	require.True(t, ok)
	assert.Equal(t, "root", name)

	child, ok := field.GetTable(sch, rec, sch.RootTable.FieldByName("child"))
	require.True(t, ok)
	assert.Equal(t, int32(99), field.GetInt32(child, sch.Objects[0].FieldByName("value")))

	data, n, ok := field.VectorInfo(rec, sch.RootTable.FieldByName("xs"))
	require.True(t, ok)
	require.Equal(t, 2, n)
	assert.Equal(t, int32(1), wire.GetInt32(out[data:]))
	assert.Equal(t, int32(2), wire.GetInt32(out[data+4:]))
}
