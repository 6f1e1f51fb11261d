package resize_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/reflectbuf/field"
	"github.com/rawbytedev/reflectbuf/resize"
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

// buildDoc hand-assembles a two-string table: name at table+4, tag at
// table+8, laid out so that growing "name" forces tag's forward offset to
// be patched — the scenario the resize walker exists to handle.
func buildDoc() ([]byte, *schema.Schema) {
	obj := &schema.Object{Name: "Doc"}
	obj.AddField(&schema.Field{Name: "name", VTableOffset: 4, Type: schema.Type{BaseType: schema.String}})
	obj.AddField(&schema.Field{Name: "tag", VTableOffset: 6, Type: schema.Type{BaseType: schema.String}})
	sch := &schema.Schema{Objects: []*schema.Object{obj}, RootTable: obj}

	const (
		vtableAddr = 4
		tableAddr  = 12
		nameAddr   = 24
		tagAddr    = 30
	)
	buf := make([]byte, 36)
	binary.LittleEndian.PutUint32(buf[0:], tableAddr) // root pointer

	binary.LittleEndian.PutUint16(buf[vtableAddr:], 8)   // vtable size
	binary.LittleEndian.PutUint16(buf[vtableAddr+2:], 0) // table size, informational
	binary.LittleEndian.PutUint16(buf[vtableAddr+4:], 4) // slot name -> table+4
	binary.LittleEndian.PutUint16(buf[vtableAddr+6:], 8) // slot tag -> table+8

	binary.LittleEndian.PutUint32(buf[tableAddr:], uint32(tableAddr-vtableAddr)) // soffset
	binary.LittleEndian.PutUint32(buf[tableAddr+4:], nameAddr-(tableAddr+4))     // -> name header
	binary.LittleEndian.PutUint32(buf[tableAddr+8:], tagAddr-(tableAddr+8))      // -> tag header

	binary.LittleEndian.PutUint32(buf[nameAddr:], 2)
	copy(buf[nameAddr+4:], "ab")
	binary.LittleEndian.PutUint32(buf[tagAddr:], 2)
	copy(buf[tagAddr+4:], "cd")

	return buf, sch
}

func TestSetStringGrowsAndPatchesSiblingOffset(t *testing.T) {
	buf, sch := buildDoc()
	root := wire.RootTable(buf)

	buf = resize.SetString(sch, buf, 24, "abcdef")
	root = wire.Table{Bytes: buf, Pos: root.Pos}

	nameField := sch.RootTable.FieldByName("name")
	tagField := sch.RootTable.FieldByName("tag")

	name, ok := field.GetString(root, nameField)
	require.True(t, ok)
	assert.Equal(t, "abcdef", name)

	tag, ok := field.GetString(root, tagField)
	require.True(t, ok)
	assert.Equal(t, "cd", tag)
}

func TestSetStringShrinks(t *testing.T) {
	buf, sch := buildDoc()
	buf = resize.SetString(sch, buf, 24, "")
	root := wire.RootTable(buf)

	nameField := sch.RootTable.FieldByName("name")
	tagField := sch.RootTable.FieldByName("tag")

	name, ok := field.GetString(root, nameField)
	require.True(t, ok)
	assert.Equal(t, "", name)

	tag, ok := field.GetString(root, tagField)
	require.True(t, ok)
	assert.Equal(t, "cd", tag)
}

func TestResizeVectorGrowsWithFill(t *testing.T) {
	obj := &schema.Object{Name: "Ints"}
	obj.AddField(&schema.Field{Name: "xs", VTableOffset: 4, Type: schema.Type{BaseType: schema.Vector, Element: schema.Int}})
	sch := &schema.Schema{Objects: []*schema.Object{obj}, RootTable: obj}

	const (
		vtableAddr = 4
		tableAddr  = 8
		vecAddr    = 16
	)
	buf := make([]byte, 28)
	binary.LittleEndian.PutUint32(buf[0:], tableAddr)
	binary.LittleEndian.PutUint16(buf[vtableAddr:], 6)
	binary.LittleEndian.PutUint16(buf[vtableAddr+2:], 0)
	binary.LittleEndian.PutUint16(buf[vtableAddr+4:], 4)
	binary.LittleEndian.PutUint32(buf[tableAddr:], uint32(tableAddr-vtableAddr))
	binary.LittleEndian.PutUint32(buf[tableAddr+4:], vecAddr-(tableAddr+4))
	binary.LittleEndian.PutUint32(buf[vecAddr:], 2)
	binary.LittleEndian.PutUint32(buf[vecAddr+4:], 10)
	binary.LittleEndian.PutUint32(buf[vecAddr+8:], 20)

	fill := make([]byte, 4)
	binary.LittleEndian.PutUint32(fill, 99)
	buf = resize.ResizeVector(sch, buf, vecAddr, 3, 4, fill)

	root := wire.Table{Bytes: buf, Pos: wire.RootTable(buf).Pos}
	data, n, ok := field.VectorInfo(root, obj.FieldByName("xs"))
	require.True(t, ok)
	require.Equal(t, 3, n)
	assert.Equal(t, int32(10), wire.GetInt32(buf[data:]))
	assert.Equal(t, int32(20), wire.GetInt32(buf[data+4:]))
	assert.Equal(t, int32(99), wire.GetInt32(buf[data+8:]))
}
