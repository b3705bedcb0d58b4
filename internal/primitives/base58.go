package primitives

import "github.com/btcsuite/btcutil/base58"

// Base58Encode encodes data using the Bitcoin base58 alphabet. The protocol's
// address envelope applies this directly to CBOR bytes; the CRC32 that
// protects against transcription errors is embedded in the CBOR payload
// itself (see cbor.go), not appended by this function.
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode decodes a base58 string back into bytes. It returns an empty
// slice (not an error) for inputs containing characters outside the
// alphabet, matching base58.Decode's own contract; callers must treat a
// short or empty result as a decode failure.
func Base58Decode(s string) []byte {
	return base58.Decode(s)
}
