package copy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/reflectbuf/copy"
	"github.com/rawbytedev/reflectbuf/field"
	"github.com/rawbytedev/reflectbuf/schema"
	"github.com/rawbytedev/reflectbuf/wire"
)

func TestFlatBuilderRoundTrip(t *testing.T) {
	obj := &schema.Object{Name: "Point"}
	obj.AddField(&schema.Field{Name: "x", VTableOffset: 4, Type: schema.Type{BaseType: schema.Int}})
	obj.AddField(&schema.Field{Name: "name", VTableOffset: 6, Type: schema.Type{BaseType: schema.String}})

	b := copy.NewFlatBuilder(64)
	b.StartObject()
	nameOff := b.CreateString("hi")
	b.PrependInt32Slot(4, 7)
	b.PrependOffsetSlot(6, nameOff)
	root := b.EndObject()
	buf := b.FinishedBytes(root)

	rec := wire.RootTable(buf)
	assert.Equal(t, int32(7), field.GetInt32(rec, obj.FieldByName("x")))
	s, ok := field.GetString(rec, obj.FieldByName("name"))
	require.True(t, ok)
	assert.Equal(t, "hi", s)
}

func TestFlatBuilderAbsentFieldReadsDefault(t *testing.T) {
	obj := &schema.Object{Name: "Point"}
	obj.AddField(&schema.Field{Name: "x", VTableOffset: 4, Type: schema.Type{BaseType: schema.Int}, DefaultInteger: 5})

	b := copy.NewFlatBuilder(32)
	b.StartObject()
	root := b.EndObject()
	buf := b.FinishedBytes(root)

	rec := wire.RootTable(buf)
	assert.Equal(t, int32(5), field.GetInt32(rec, obj.FieldByName("x")))
}
