package slbio

import "math"

// Little-endian encoding of the fixed-width values the format is made of.
// buff must be at least as large as the encoded value.

// EncodeUint16 writes a uint16 to buff.
func EncodeUint16(buff []byte, n uint16) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
}

// DecodeUint16 reads a uint16 from buff.
func DecodeUint16(buff []byte) uint16 {
	n := uint16(buff[0])
	n |= uint16(buff[1]) << 8
	return n
}

// EncodeUint32 writes a uint32 to buff.
func EncodeUint32(buff []byte, n uint32) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
}

// DecodeUint32 reads a uint32 from buff.
func DecodeUint32(buff []byte) uint32 {
	n := uint32(buff[0])
	n |= uint32(buff[1]) << 8
	n |= uint32(buff[2]) << 16
	n |= uint32(buff[3]) << 24
	return n
}

// EncodeUint64 writes a uint64 to buff.
func EncodeUint64(buff []byte, n uint64) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
	buff[4] = uint8(n >> 32)
	buff[5] = uint8(n >> 40)
	buff[6] = uint8(n >> 48)
	buff[7] = uint8(n >> 56)
}

// DecodeUint64 reads a uint64 from buff.
func DecodeUint64(buff []byte) uint64 {
	n := uint64(buff[0])
	n |= uint64(buff[1]) << 8
	n |= uint64(buff[2]) << 16
	n |= uint64(buff[3]) << 24
	n |= uint64(buff[4]) << 32
	n |= uint64(buff[5]) << 40
	n |= uint64(buff[6]) << 48
	n |= uint64(buff[7]) << 56
	return n
}

// EncodeFloat32 writes the IEEE 754 bits of a float32 to buff.
func EncodeFloat32(buff []byte, f float32) {
	EncodeUint32(buff, math.Float32bits(f))
}

// DecodeFloat32 reads an IEEE 754 float32 from buff.
func DecodeFloat32(buff []byte) float32 {
	return math.Float32frombits(DecodeUint32(buff))
}

// EncodeFloat64 writes the IEEE 754 bits of a float64 to buff.
func EncodeFloat64(buff []byte, f float64) {
	EncodeUint64(buff, math.Float64bits(f))
}

// DecodeFloat64 reads an IEEE 754 float64 from buff.
func DecodeFloat64(buff []byte) float64 {
	return math.Float64frombits(DecodeUint64(buff))
}
