// Package keys implements the Ed25519-extended (BIP32-style) key tree: the
// 96-byte extended private key (xprv), the 64-byte extended public key
// (xpub), and hardened/soft child derivation over them. Point and scalar
// arithmetic is done via filippo.io/edwards25519 on unclamped, unreduced
// 256-bit integers — an ordinary Ed25519 library that clamps or reduces
// on every operation cannot express child derivation correctly (see
// DESIGN.md and spec §9).
package keys

import (
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519"
)

// Wire sizes pinned at the interface (spec §6).
const (
	XPrvSize       = 96
	XPubSize       = 64
	HardenedOffset = uint32(0x80000000)
)

// ErrInvalidXPrv is returned by XPrvFromBytes and NewXPrv when the input
// fails the extended-scalar validity predicate (spec §3), and by
// XPrvFromBytes and XPrvForSigning when the input is not 96 bytes long.
var ErrInvalidXPrv = errors.New("keys: invalid xprv byte pattern")

// ErrHardenedRequiresPrivate is returned by DerivePublic for any index in
// the hardened range, which only an xprv can derive.
var ErrHardenedRequiresPrivate = errors.New("keys: hardened derivation requires an xprv")

// ErrOverflow is returned by Derive when the private-key addition
// k_L' = 8*Z_L + k_L overflows 256 bits, making the index unusable for
// this parent.
var ErrOverflow = errors.New("keys: derivation index unusable for this parent (scalar overflow)")

// XPrv is a 96-byte extended private key: a 64-byte Ed25519-extended
// scalar (k_L‖k_R) plus a 32-byte chain code.
type XPrv struct {
	kL        [32]byte
	kR        [32]byte
	chainCode [32]byte
}

// XPub is a 64-byte extended public key: a standard 32-byte Ed25519 point
// plus a 32-byte chain code.
type XPub struct {
	point     [32]byte
	chainCode [32]byte
}

// validXPrvBytes checks the §3 validity predicate against the raw 64-byte
// k_L‖k_R buffer: the third-highest bit of byte 0 must be 0, and of byte
// 31 the second-highest bit must be 1 and the highest bit must be 0.
func validXPrvBytes(kLkR [64]byte) bool {
	if kLkR[0]&0x20 != 0 {
		return false
	}
	if kLkR[31]&0x40 == 0 {
		return false
	}
	if kLkR[31]&0x80 != 0 {
		return false
	}
	return true
}

// NewXPrv constructs an XPrv from its three raw components, enforcing the
// §3 validity predicate on kL/kR.
func NewXPrv(kL, kR, chainCode [32]byte) (*XPrv, error) {
	var combined [64]byte
	copy(combined[:32], kL[:])
	copy(combined[32:], kR[:])
	if !validXPrvBytes(combined) {
		return nil, ErrInvalidXPrv
	}
	return &XPrv{kL: kL, kR: kR, chainCode: chainCode}, nil
}

// XPrvFromBytes parses a 96-byte k_L‖k_R‖chain_code buffer, failing with
// ErrInvalidXPrv if the scalar does not satisfy the §3 validity predicate.
func XPrvFromBytes(b []byte) (*XPrv, error) {
	if len(b) != XPrvSize {
		return nil, ErrInvalidXPrv
	}
	var kLkR [64]byte
	copy(kLkR[:], b[:64])
	if !validXPrvBytes(kLkR) {
		return nil, ErrInvalidXPrv
	}
	x := &XPrv{}
	copy(x.kL[:], b[0:32])
	copy(x.kR[:], b[32:64])
	copy(x.chainCode[:], b[64:96])
	return x, nil
}

// XPrvForSigning parses a 96-byte k_L‖k_R‖chain_code buffer for use as a
// witness-signing key, without enforcing the §3 validity predicate. The
// predicate exists to keep the derivation tree well-formed; a witness's
// xprv is supplied directly by the caller purely to sign one message and
// is never derived from or fed back into the tree, so the only
// requirement here is the fixed 96-byte length (spec §4.5's golden
// vector exercises this with an all-zero key, which XPrvFromBytes would
// reject).
func XPrvForSigning(b []byte) (*XPrv, error) {
	if len(b) != XPrvSize {
		return nil, ErrInvalidXPrv
	}
	x := &XPrv{}
	copy(x.kL[:], b[0:32])
	copy(x.kR[:], b[32:64])
	copy(x.chainCode[:], b[64:96])
	return x, nil
}

// Bytes serializes x back to its canonical 96-byte form.
func (x *XPrv) Bytes() []byte {
	out := make([]byte, XPrvSize)
	copy(out[0:32], x.kL[:])
	copy(out[32:64], x.kR[:])
	copy(out[64:96], x.chainCode[:])
	return out
}

// Zero overwrites x's secret scalar in place. The chain code is not
// secret and is left intact; callers that want to discard x entirely
// should also drop their last reference to it.
func (x *XPrv) Zero() {
	for i := range x.kL {
		x.kL[i] = 0
	}
	for i := range x.kR {
		x.kR[i] = 0
	}
}

// ChainCode returns x's 32-byte chain code.
func (x *XPrv) ChainCode() [32]byte { return x.chainCode }

// scalarFromUnclamped reduces an unclamped 256-bit little-endian integer
// modulo the curve order L by zero-extending it to 64 bytes and applying
// edwards25519's wide reduction — the only point at which this package
// lets the library normalize a value that k_L/k_R themselves are never
// normalized to.
func scalarFromUnclamped(b [32]byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:32], b[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// SetUniformBytes only fails if its input is not 64 bytes.
		panic(err)
	}
	return s
}

// ToPublic derives the extended public key A‖chain_code, A = k_L·B.
func (x *XPrv) ToPublic() *XPub {
	s := scalarFromUnclamped(x.kL)
	A := edwards25519.NewIdentityPoint().ScalarBaseMult(s)

	pub := &XPub{chainCode: x.chainCode}
	copy(pub.point[:], A.Bytes())
	return pub
}

// XPubFromBytes parses a 64-byte A‖chain_code buffer.
func XPubFromBytes(b []byte) (*XPub, error) {
	if len(b) != XPubSize {
		return nil, errors.New("keys: xpub must be 64 bytes")
	}
	if _, err := edwards25519.NewIdentityPoint().SetBytes(b[:32]); err != nil {
		return nil, errors.New("keys: xpub point is not a valid Ed25519 encoding")
	}
	pub := &XPub{}
	copy(pub.point[:], b[0:32])
	copy(pub.chainCode[:], b[32:64])
	return pub, nil
}

// Bytes serializes p back to its canonical 64-byte form.
func (p *XPub) Bytes() []byte {
	out := make([]byte, XPubSize)
	copy(out[0:32], p.point[:])
	copy(out[32:64], p.chainCode[:])
	return out
}

// Point returns the 32-byte Ed25519-encoded public point A.
func (p *XPub) Point() [32]byte { return p.point }

// ChainCode returns p's 32-byte chain code.
func (p *XPub) ChainCode() [32]byte { return p.chainCode }

// leIndex encodes a derivation index as 4 little-endian bytes.
func leIndex(i uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, i)
	return b
}

// IsHardened reports whether i falls in the hardened range [2^31, 2^32).
func IsHardened(i uint32) bool {
	return i >= HardenedOffset
}
