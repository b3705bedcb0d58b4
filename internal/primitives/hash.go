// Package primitives implements the low-level cryptographic and encoding
// building blocks the wallet core is assembled from: hashing, seed
// stretching, a plain base58 codec, and a small CBOR writer tuned
// to the protocol's exact wire layout (see cbor.go).
//
// Nothing in this package touches mnemonic, key-derivation, or transaction
// semantics — it only supplies primitives those layers call.
package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash/crc32"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
)

// Blake2b256 returns the 32-byte Blake2b-256 digest of data.
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// Blake2b224 returns the 28-byte Blake2b-224 digest of data.
func Blake2b224(data []byte) [28]byte {
	h, err := blake2b.New(28, nil)
	if err != nil {
		// Only non-nil for unsupported output sizes or a bad key; 28
		// bytes with no key is always supported.
		panic(err)
	}
	h.Write(data)
	var out [28]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SHA256 returns the 32-byte SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// SHA3_256 returns the 32-byte SHA3-256 digest of data.
func SHA3_256(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// SHA512 returns the 64-byte SHA-512 digest of data.
func SHA512(data []byte) [64]byte {
	return sha512.Sum512(data)
}

// HMACSHA512 returns HMAC-SHA512(key, msg).
func HMACSHA512(key, msg []byte) [64]byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(msg)
	var out [64]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// PBKDF2HMACSHA512 derives keyLen bytes from password and salt using
// PBKDF2 with HMAC-SHA512 as the pseudorandom function.
func PBKDF2HMACSHA512(password, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLen, sha512.New)
}

// CRC32IEEE returns the IEEE CRC-32 checksum of data.
func CRC32IEEE(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
