package yasonbuf

// This file mirrors the Vec<u8> extension trait in
// _examples/original_source/src/vec.rs: small helpers for appending
// little-endian fixed-width fields and for reserving-then-backpatching a
// placeholder field once its final value is known.

// PutUint16LE appends a little-endian u16.
func PutUint16LE(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

// PutInt32LE appends a little-endian i32.
func PutInt32LE(buf []byte, v int32) []byte {
	u := uint32(v)
	return append(buf, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}

// PutUint32LE appends a little-endian u32.
func PutUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// SkipZero appends n zero bytes, reserving space for a field to be
// backpatched later via WriteInt32LEAt / WriteUint32LEAt.
func SkipZero(buf []byte, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, 0)
	}
	return buf
}

// WriteInt32LEAt overwrites 4 bytes at pos with the little-endian encoding
// of v. pos+4 must not exceed len(buf).
func WriteInt32LEAt(buf []byte, v int32, pos int) {
	u := uint32(v)
	buf[pos] = byte(u)
	buf[pos+1] = byte(u >> 8)
	buf[pos+2] = byte(u >> 16)
	buf[pos+3] = byte(u >> 24)
}

// WriteUint32LEAt overwrites 4 bytes at pos with the little-endian
// encoding of v.
func WriteUint32LEAt(buf []byte, v uint32, pos int) {
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v >> 16)
	buf[pos+3] = byte(v >> 24)
}

// ReadUint16LE reads a little-endian u16 at pos.
func ReadUint16LE(buf []byte, pos int) uint16 {
	return uint16(buf[pos]) | uint16(buf[pos+1])<<8
}

// ReadUint32LE reads a little-endian u32 at pos.
func ReadUint32LE(buf []byte, pos int) uint32 {
	return uint32(buf[pos]) | uint32(buf[pos+1])<<8 | uint32(buf[pos+2])<<16 | uint32(buf[pos+3])<<24
}

// ReadInt32LE reads a little-endian i32 at pos.
func ReadInt32LE(buf []byte, pos int) int32 {
	return int32(ReadUint32LE(buf, pos))
}
