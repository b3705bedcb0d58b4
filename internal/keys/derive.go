package keys

import (
	"filippo.io/edwards25519"

	"github.com/jasony/cole-wallet-core/internal/primitives"
)

// zLFromZ extracts Z_L: the first 28 bytes of the 64-byte HMAC output Z,
// left-padded (in little-endian terms: zero-extended at the high end) to
// 32 bytes. Z's remaining bytes (28:32) are discarded by design — only
// Z[0:28] and Z[32:64] feed the derivation.
func zLFromZ(z [64]byte) [32]byte {
	var zl [32]byte
	copy(zl[:28], z[0:28])
	return zl
}

// zRFromZ extracts Z_R: the last 32 bytes of Z.
func zRFromZ(z [64]byte) [32]byte {
	var zr [32]byte
	copy(zr[:], z[32:64])
	return zr
}

// Derive computes the BIP32-Ed25519 child of parent at index i, following
// the hardened branch for i in [2^31, 2^32) and the soft branch otherwise
// (spec §4.2). It fails with ErrOverflow if k_L' = 8*Z_L + k_L would not
// fit in 256 bits.
func Derive(parent *XPrv, i uint32) (*XPrv, error) {
	idxLE := leIndex(i)

	var z, iHash [64]byte
	if IsHardened(i) {
		var combined [64]byte
		copy(combined[:32], parent.kL[:])
		copy(combined[32:], parent.kR[:])

		zMsg := append(append([]byte{0x00}, combined[:]...), idxLE...)
		iMsg := append(append([]byte{0x01}, combined[:]...), idxLE...)
		z = primitives.HMACSHA512(parent.chainCode[:], zMsg)
		iHash = primitives.HMACSHA512(parent.chainCode[:], iMsg)
	} else {
		A := parent.ToPublic().point

		zMsg := append(append([]byte{0x02}, A[:]...), idxLE...)
		iMsg := append(append([]byte{0x03}, A[:]...), idxLE...)
		z = primitives.HMACSHA512(parent.chainCode[:], zMsg)
		iHash = primitives.HMACSHA512(parent.chainCode[:], iMsg)
	}

	zl := zLFromZ(z)
	zr := zRFromZ(z)

	eightZL := mulSmall256(zl, 8)

	kLPrime, ok := addExact256(eightZL, parent.kL)
	if !ok {
		return nil, ErrOverflow
	}
	kRPrime := addTruncated256(zr, parent.kR)

	var chainCodePrime [32]byte
	copy(chainCodePrime[:], iHash[32:64])

	return &XPrv{kL: kLPrime, kR: kRPrime, chainCode: chainCodePrime}, nil
}

// DerivePublic computes the BIP32-Ed25519 soft child of parent at index i
// using only the public key: A' = A + 8*Z_L*B. It fails with
// ErrHardenedRequiresPrivate for any hardened index.
func DerivePublic(parent *XPub, i uint32) (*XPub, error) {
	if IsHardened(i) {
		return nil, ErrHardenedRequiresPrivate
	}

	idxLE := leIndex(i)
	A := parent.point

	zMsg := append(append([]byte{0x02}, A[:]...), idxLE...)
	iMsg := append(append([]byte{0x03}, A[:]...), idxLE...)
	z := primitives.HMACSHA512(parent.chainCode[:], zMsg)
	iHash := primitives.HMACSHA512(parent.chainCode[:], iMsg)

	zl := zLFromZ(z)
	eightZL := mulSmall256(zl, 8)

	scalar := scalarFromUnclamped(eightZL)
	delta := edwards25519.NewIdentityPoint().ScalarBaseMult(scalar)

	parentPoint, err := edwards25519.NewIdentityPoint().SetBytes(A[:])
	if err != nil {
		return nil, err
	}
	childPoint := edwards25519.NewIdentityPoint().Add(parentPoint, delta)

	var chainCodePrime [32]byte
	copy(chainCodePrime[:], iHash[32:64])

	child := &XPub{chainCode: chainCodePrime}
	copy(child.point[:], childPoint.Bytes())
	return child, nil
}
