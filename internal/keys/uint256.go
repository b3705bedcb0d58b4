package keys

import "math/big"

// The child-key-derivation algebra of BIP32-Ed25519 works over raw 256-bit
// little-endian integers rather than scalars already reduced modulo the
// curve order L — see DESIGN.md on why filippo.io/edwards25519's own
// Scalar type (which always reduces) is only reached for once a value is
// actually used as a scalar multiplier, never for k_L/k_R storage or
// addition.

// leToInt interprets b as a little-endian unsigned integer.
func leToInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// intToLE serializes x as a little-endian unsigned integer occupying
// exactly size bytes, truncating any higher-order bytes (used to
// implement the k_R' = (Z_R + k_R) mod 2^256 wraparound).
func intToLE(x *big.Int, size int) [32]byte {
	be := x.Bytes()
	var out [32]byte
	for i := 0; i < len(be) && i < size; i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}

// addTruncated256 returns (a+b) mod 2^256 as little-endian bytes.
func addTruncated256(a, b [32]byte) [32]byte {
	sum := new(big.Int).Add(leToInt(a[:]), leToInt(b[:]))
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	sum.Mod(sum, mod)
	return intToLE(sum, 32)
}

// addExact256 returns a+b as little-endian bytes and reports whether the
// sum still fits in 256 bits (used for k_L' = 8*Z_L + k_L, which must not
// overflow).
func addExact256(a, b [32]byte) (sum [32]byte, ok bool) {
	total := new(big.Int).Add(leToInt(a[:]), leToInt(b[:]))
	if total.BitLen() > 256 {
		return sum, false
	}
	return intToLE(total, 32), true
}

// mulSmall256 returns (a * n) as little-endian bytes, where n is a small
// constant (here always 8); the result is not reduced.
func mulSmall256(a [32]byte, n uint64) [32]byte {
	product := new(big.Int).Mul(leToInt(a[:]), new(big.Int).SetUint64(n))
	return intToLE(product, 32)
}
