package keys

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// SignExtended signs msg with xprv's Ed25519-extended secret key,
// following ordinary EdDSA signing but starting from a pre-expanded
// scalar a = k_L and nonce-generation key prefix = k_R instead of
// deriving both from SHA-512(seed) the way a standard 32-byte Ed25519
// private key does — the extended-key scheme exists precisely so that
// child keys are produced by derive() without ever hashing a fresh seed
// (spec §4.5, §9). The standard library's ed25519 package offers no way
// to sign from an already-expanded scalar, so this implements the three
// EdDSA steps directly over filippo.io/edwards25519.
func SignExtended(xprv *XPrv, msg []byte) []byte {
	a := scalarFromUnclamped(xprv.kL)
	A := edwards25519.NewIdentityPoint().ScalarBaseMult(a)

	nonce := sha512.New()
	nonce.Write(xprv.kR[:])
	nonce.Write(msg)
	var nonceWide [64]byte
	copy(nonceWide[:], nonce.Sum(nil))
	r, err := edwards25519.NewScalar().SetUniformBytes(nonceWide[:])
	if err != nil {
		panic(err)
	}
	R := edwards25519.NewIdentityPoint().ScalarBaseMult(r)

	challenge := sha512.New()
	challenge.Write(R.Bytes())
	challenge.Write(A.Bytes())
	challenge.Write(msg)
	var challengeWide [64]byte
	copy(challengeWide[:], challenge.Sum(nil))
	k, err := edwards25519.NewScalar().SetUniformBytes(challengeWide[:])
	if err != nil {
		panic(err)
	}

	s := edwards25519.NewScalar().MultiplyAdd(k, a, r)

	sig := make([]byte, 64)
	copy(sig[0:32], R.Bytes())
	copy(sig[32:64], s.Bytes())
	return sig
}
