// Package wire implements the layout primitives and type classifier that
// the rest of reflectbuf builds on: little-endian scalar access, vtable
// resolution, and BaseType-to-size/category mapping. It never allocates on
// the read path and performs no schema-level validation — it assumes the
// buffer is well-formed.
package wire

import (
	"encoding/binary"
	"math"
)

// UOffsetT is an unsigned, 32-bit reference: the value stored at address p
// encodes the target address p+u, computed modulo 2^32, so a target below p
// (a child FlatBuilder wrote before its parent) is stored wrapped.
type UOffsetT = uint32

// SOffsetT is a signed, 32-bit reference used only for the record->vtable
// backward pointer.
type SOffsetT = int32

// VOffsetT is a 16-bit vtable slot value: either a vtable size/object-size
// header field, or a field's byte offset within its record.
type VOffsetT = uint16

func GetBool(b []byte) bool     { return b[0] != 0 }
func GetByte(b []byte) byte     { return b[0] }
func GetInt8(b []byte) int8     { return int8(b[0]) }
func GetUint8(b []byte) uint8   { return b[0] }
func GetInt16(b []byte) int16   { return int16(binary.LittleEndian.Uint16(b)) }
func GetUint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func GetInt32(b []byte) int32   { return int32(binary.LittleEndian.Uint32(b)) }
func GetUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func GetInt64(b []byte) int64   { return int64(binary.LittleEndian.Uint64(b)) }
func GetUint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func GetFloat32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func GetFloat64(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }

func GetSOffsetT(b []byte) SOffsetT { return GetInt32(b) }
func GetUOffsetT(b []byte) UOffsetT { return GetUint32(b) }
func GetVOffsetT(b []byte) VOffsetT { return GetUint16(b) }

func PutBool(b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}
func PutByte(b []byte, v byte)     { b[0] = v }
func PutInt8(b []byte, v int8)     { b[0] = byte(v) }
func PutUint8(b []byte, v uint8)   { b[0] = v }
func PutInt16(b []byte, v int16)   { binary.LittleEndian.PutUint16(b, uint16(v)) }
func PutUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func PutInt32(b []byte, v int32)   { binary.LittleEndian.PutUint32(b, uint32(v)) }
func PutUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func PutInt64(b []byte, v int64)   { binary.LittleEndian.PutUint64(b, uint64(v)) }
func PutUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

func PutFloat32(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }
func PutFloat64(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) }

func PutSOffsetT(b []byte, v SOffsetT) { PutInt32(b, v) }
func PutUOffsetT(b []byte, v UOffsetT) { PutUint32(b, v) }
func PutVOffsetT(b []byte, v VOffsetT) { PutUint16(b, v) }
