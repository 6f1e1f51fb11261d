package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/rawbytedev/reflectbuf/internal/varint"
	"github.com/rawbytedev/reflectbuf/schema"
)

// cacheMagic tags rbdump's own on-disk schema cache format, distinct from
// whatever wire format the buffers being inspected use.
var cacheMagic = [4]byte{'R', 'B', 'S', 'C'}

const cacheVersion = 1

var errBadCache = errors.New("rbdump: schema cache is corrupt or from an incompatible version")

// encodeSchemaCache flattens sch into rbdump's compact cache format: a
// varint-framed object/field/enum table trailed by a CRC32 of everything
// before it, so a truncated or bit-flipped cache is rejected outright
// instead of silently producing a wrong schema.
func encodeSchemaCache(sch *schema.Schema) []byte {
	buf := append([]byte{}, cacheMagic[:]...)
	buf = varint.Put(buf, cacheVersion)

	buf = varint.Put(buf, uint64(len(sch.Objects)))
	for _, obj := range sch.Objects {
		buf = putString(buf, obj.Name)
		if obj.IsStruct {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = varint.Put(buf, uint64(obj.MinAlign))
		buf = varint.Put(buf, uint64(obj.ByteSize))
		buf = varint.Put(buf, uint64(len(obj.Fields)))
		for _, f := range obj.Fields {
			buf = putString(buf, f.Name)
			buf = varint.Put(buf, uint64(f.VTableOffset))
			buf = append(buf, byte(f.Type.BaseType), byte(f.Type.Element))
			buf = varint.Put(buf, zigzag(int64(f.Type.Index)))
			buf = varint.Put(buf, zigzag(f.DefaultInteger))
			var real [8]byte
			binary.LittleEndian.PutUint64(real[:], math.Float64bits(f.DefaultReal))
			buf = append(buf, real[:]...)
		}
	}

	objIndex := make(map[*schema.Object]int, len(sch.Objects))
	for i, obj := range sch.Objects {
		objIndex[obj] = i
	}

	buf = varint.Put(buf, uint64(len(sch.Enums)))
	for _, e := range sch.Enums {
		buf = putString(buf, e.Name)
		buf = varint.Put(buf, uint64(len(e.Values)))
		for _, v := range e.Values {
			buf = putString(buf, v.Name)
			buf = varint.Put(buf, zigzag(v.Discriminant))
			buf = varint.Put(buf, uint64(objIndex[v.Object]))
		}
	}

	rootIdx := 0
	for i, obj := range sch.Objects {
		if obj == sch.RootTable {
			rootIdx = i
			break
		}
	}
	buf = varint.Put(buf, uint64(rootIdx))

	sum := crc32.ChecksumIEEE(buf)
	var trailer [4]byte
	binary.LittleEndian.PutUint32(trailer[:], sum)
	return append(buf, trailer[:]...)
}

// decodeSchemaCache reverses encodeSchemaCache. Objects are allocated up
// front so forward references between them (a field of Obj type pointing
// at an object defined later) resolve correctly.
func decodeSchemaCache(data []byte) (*schema.Schema, error) {
	if len(data) < len(cacheMagic)+4 {
		return nil, errBadCache
	}
	body, trailer := data[:len(data)-4], data[len(data)-4:]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(trailer) {
		return nil, errBadCache
	}
	if [4]byte(body[:4]) != cacheMagic {
		return nil, errBadCache
	}
	r := &reader{buf: body[4:]}

	version, err := r.varint()
	if err != nil || version != cacheVersion {
		return nil, errBadCache
	}

	numObjects, err := r.varint()
	if err != nil {
		return nil, errBadCache
	}
	objects := make([]*schema.Object, numObjects)
	for i := range objects {
		objects[i] = &schema.Object{}
	}
	for i := range objects {
		obj := objects[i]
		if obj.Name, err = r.string(); err != nil {
			return nil, errBadCache
		}
		isStruct, err := r.byte()
		if err != nil {
			return nil, errBadCache
		}
		obj.IsStruct = isStruct != 0
		minAlign, err := r.varint()
		if err != nil {
			return nil, errBadCache
		}
		obj.MinAlign = int(minAlign)
		byteSize, err := r.varint()
		if err != nil {
			return nil, errBadCache
		}
		obj.ByteSize = int(byteSize)
		numFields, err := r.varint()
		if err != nil {
			return nil, errBadCache
		}
		for f := uint64(0); f < numFields; f++ {
			field := &schema.Field{}
			if field.Name, err = r.string(); err != nil {
				return nil, errBadCache
			}
			vt, err := r.varint()
			if err != nil {
				return nil, errBadCache
			}
			field.VTableOffset = uint16(vt)
			base, err := r.byte()
			if err != nil {
				return nil, errBadCache
			}
			elem, err := r.byte()
			if err != nil {
				return nil, errBadCache
			}
			field.Type.BaseType = schema.BaseType(base)
			field.Type.Element = schema.BaseType(elem)
			idx, err := r.svarint()
			if err != nil {
				return nil, errBadCache
			}
			field.Type.Index = int(idx)
			field.DefaultInteger, err = r.svarint()
			if err != nil {
				return nil, errBadCache
			}
			realBits, err := r.uint64()
			if err != nil {
				return nil, errBadCache
			}
			field.DefaultReal = math.Float64frombits(realBits)
			obj.Fields = append(obj.Fields, field)
		}
	}

	numEnums, err := r.varint()
	if err != nil {
		return nil, errBadCache
	}
	enums := make([]*schema.Enum, numEnums)
	for i := range enums {
		e := &schema.Enum{}
		if e.Name, err = r.string(); err != nil {
			return nil, errBadCache
		}
		numValues, err := r.varint()
		if err != nil {
			return nil, errBadCache
		}
		for v := uint64(0); v < numValues; v++ {
			name, err := r.string()
			if err != nil {
				return nil, errBadCache
			}
			disc, err := r.svarint()
			if err != nil {
				return nil, errBadCache
			}
			objIdx, err := r.varint()
			if err != nil || int(objIdx) >= len(objects) {
				return nil, errBadCache
			}
			e.Values = append(e.Values, schema.EnumValue{Name: name, Discriminant: disc, Object: objects[objIdx]})
		}
		enums[i] = e
	}

	rootIdx, err := r.varint()
	if err != nil || int(rootIdx) >= len(objects) {
		return nil, errBadCache
	}

	return &schema.Schema{Objects: objects, Enums: enums, RootTable: objects[rootIdx]}, nil
}

func putString(buf []byte, s string) []byte {
	buf = varint.Put(buf, uint64(len(s)))
	return append(buf, s...)
}

// reader walks a cache body, consuming varints, raw bytes and
// length-prefixed strings in the exact order encodeSchemaCache wrote them.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) varint() (uint64, error) {
	v, n := varint.Get(r.buf[r.pos:])
	if n == 0 {
		return 0, fmt.Errorf("rbdump: truncated varint at byte %d", r.pos)
	}
	r.pos += n
	return v, nil
}

func (r *reader) svarint() (int64, error) {
	v, err := r.varint()
	if err != nil {
		return 0, err
	}
	return unzigzag(v), nil
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, fmt.Errorf("rbdump: truncated byte at %d", r.pos)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) uint64() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, fmt.Errorf("rbdump: truncated fixed64 at %d", r.pos)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *reader) string() (string, error) {
	n, err := r.varint()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.buf) {
		return "", fmt.Errorf("rbdump: truncated string at %d", r.pos)
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func zigzag(v int64) uint64   { return uint64((v << 1) ^ (v >> 63)) }
func unzigzag(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }
