package reflectbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reflectbuf "github.com/rawbytedev/reflectbuf"
	"github.com/rawbytedev/reflectbuf/copy"
	"github.com/rawbytedev/reflectbuf/schema"
)

func personSchema() *schema.Schema {
	person := &schema.Object{Name: "Person"}
	person.AddField(&schema.Field{Name: "name", VTableOffset: 4, Type: schema.Type{BaseType: schema.String}})
	person.AddField(&schema.Field{Name: "age", VTableOffset: 6, Type: schema.Type{BaseType: schema.Int}})
	return &schema.Schema{Objects: []*schema.Object{person}, RootTable: person}
}

func buildPerson(name string, age int32) []byte {
	b := copy.NewFlatBuilder(64)
	b.StartObject()
	nameOff := b.CreateString(name)
	b.PrependOffsetSlot(4, nameOff)
	b.PrependInt32Slot(6, age)
	root := b.EndObject()
	return b.FinishedBytes(root)
}

func TestRecordAccessors(t *testing.T) {
	sch := personSchema()
	buf := buildPerson("Ada", 36)
	rec := reflectbuf.Root(sch, buf)

	assert.Equal(t, "Ada", rec.String("name"))
	assert.Equal(t, int64(36), rec.Int("age"))

	require.True(t, rec.SetInt("age", 37))
	assert.Equal(t, int64(37), rec.Int("age"))
}

func TestRecordResizeGrowsString(t *testing.T) {
	sch := personSchema()
	buf := buildPerson("Ada", 36)
	rec := reflectbuf.Root(sch, buf)

	rec.Resize("name", "Ada Lovelace")
	assert.Equal(t, "Ada Lovelace", rec.String("name"))
	assert.Equal(t, int64(36), rec.Int("age"))
}

func TestVerifyAcceptsWellFormedBuffer(t *testing.T) {
	sch := personSchema()
	buf := buildPerson("Ada", 36)
	require.NoError(t, reflectbuf.Verify(sch, buf))
}

func TestVerifyRejectsTruncatedBuffer(t *testing.T) {
	sch := personSchema()
	buf := buildPerson("Ada", 36)
	err := reflectbuf.Verify(sch, buf[:len(buf)-20])
	assert.Error(t, err)
}

func TestRecordCopy(t *testing.T) {
	sch := personSchema()
	buf := buildPerson("Ada", 36)
	src := reflectbuf.Root(sch, buf)

	dst := copy.NewFlatBuilder(64)
	rootOff := src.Copy(dst)
	out := dst.FinishedBytes(rootOff)

	copied := reflectbuf.Root(sch, out)
	assert.Equal(t, "Ada", copied.String("name"))
	assert.Equal(t, int64(36), copied.Int("age"))
}
