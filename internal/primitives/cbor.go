package primitives

import (
	"encoding/binary"
	"sort"
)

// CBOR major types (RFC 8949 §3.1).
const (
	majorUint  = 0
	majorBytes = 2
	majorArray = 4
	majorMap   = 5
	majorTag   = 6
)

// breakByte terminates an indefinite-length item.
const breakByte = 0xff

// head encodes a CBOR major/argument head using the shortest width that
// fits n, per RFC 8949 §3.1's "preferred serialization" rule.
func head(major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return []byte{m | byte(n)}
	case n <= 0xff:
		return []byte{m | 24, byte(n)}
	case n <= 0xffff:
		b := make([]byte, 3)
		b[0] = m | 25
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		return b
	case n <= 0xffffffff:
		b := make([]byte, 5)
		b[0] = m | 26
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		return b
	default:
		b := make([]byte, 9)
		b[0] = m | 27
		binary.BigEndian.PutUint64(b[1:], n)
		return b
	}
}

// EncodeUint encodes n as a CBOR unsigned integer.
func EncodeUint(n uint64) []byte {
	return head(majorUint, n)
}

// EncodeBytes encodes b as a CBOR byte string.
func EncodeBytes(b []byte) []byte {
	out := head(majorBytes, uint64(len(b)))
	return append(out, b...)
}

// EncodeArray encodes a definite-length CBOR array from already-encoded
// items.
func EncodeArray(items ...[]byte) []byte {
	out := head(majorArray, uint64(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

// EncodeArrayIndefinite encodes an indefinite-length CBOR array
// (major type 4, additional info 31) terminated by the break byte. The
// protocol's transaction inputs and outputs lists use this framing — the
// one detail a generic struct-to-array CBOR encoder (e.g. fxamacker/cbor's
// Marshal) cannot be made to emit, since it always prefers definite
// lengths; see DESIGN.md.
func EncodeArrayIndefinite(items ...[]byte) []byte {
	out := []byte{majorArray<<5 | 31}
	for _, it := range items {
		out = append(out, it...)
	}
	out = append(out, breakByte)
	return out
}

// EncodeTag encodes a CBOR tag header (major type 6) followed by inner,
// which must already be a complete encoded CBOR item.
func EncodeTag(tag uint64, inner []byte) []byte {
	out := head(majorTag, tag)
	return append(out, inner...)
}

// EncodeTag24 wraps inner — itself a complete CBOR-encoded item — in tag
// 24 ("encoded CBOR data item", RFC 8949 §3.4.5.1), the shape the protocol
// uses for embedding a transaction input or witness tuple inside its
// enclosing array.
func EncodeTag24(inner []byte) []byte {
	return EncodeTag(24, EncodeBytes(inner))
}

// EncodeMapUint encodes a CBOR map whose keys are small unsigned integers,
// in canonical (ascending key) order. Values must already be encoded CBOR
// items. Used for the address attributes map, whose keys are the fixed
// protocol constants 1 (derivation path) and 2 (protocol magic).
func EncodeMapUint(pairs map[uint64][]byte) []byte {
	keys := make([]uint64, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := head(majorMap, uint64(len(pairs)))
	for _, k := range keys {
		out = append(out, EncodeUint(k)...)
		out = append(out, pairs[k]...)
	}
	return out
}
