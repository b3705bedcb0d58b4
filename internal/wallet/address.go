package wallet

import (
	"errors"

	"github.com/fxamacker/cbor/v2"

	"github.com/jasony/cole-wallet-core/internal/keys"
	"github.com/jasony/cole-wallet-core/internal/primitives"
)

// addrTypePubKey is the only address spending-data variant this core
// produces (spec §3: Script and Redeem exist in the protocol but are out
// of scope here).
const addrTypePubKey = 0

// ErrMalformedAddress is returned by ParseAddress when its input does not
// decode to a well-formed address envelope.
var ErrMalformedAddress = errors.New("wallet: malformed address")

// Address is the base58-with-CRC envelope of a protocol address (spec
// §4.3), along with the root hash it commits to and the raw CBOR of its
// envelope — the same bytes a transaction output embeds directly (spec
// §4.4: "each output is [address_cbor, value]").
type Address struct {
	root     [28]byte
	envelope []byte
	base58   string
}

// String returns the address's base58 envelope.
func (a Address) String() string { return a.base58 }

// RootHash returns the 28-byte Blake2b-224 address root.
func (a Address) RootHash() [28]byte { return a.root }

// EnvelopeCBOR returns the raw CBOR bytes of the address envelope
// (tag24(addr_value) ‖ crc), the form embedded directly in a transaction
// output rather than base58-encoded for display.
func (a Address) EnvelopeCBOR() []byte { return a.envelope }

// encodeAttrs builds the CBOR address-attributes map (spec §3): key 2
// carries the protocol magic when the caller supplies one (testnets);
// absent for mainnet. Key 1 (encrypted derivation path) is never produced
// by this core. Attribute values are themselves CBOR-encoded and then
// wrapped in a CBOR byte string (`bytes .cbor value`) — the protocol's
// attribute convention lets a decoder skip an attribute it doesn't
// recognize without having to parse its payload.
func encodeAttrs(protocolMagic *uint32) []byte {
	pairs := make(map[uint64][]byte)
	if protocolMagic != nil {
		pairs[2] = primitives.EncodeBytes(primitives.EncodeUint(uint64(*protocolMagic)))
	}
	return primitives.EncodeMapUint(pairs)
}

// newAddress builds the protocol address for xpub under the given
// attributes, per spec §4.3's inner/addr_root/envelope construction.
func newAddress(xpub *keys.XPub, attrsCBOR []byte) Address {
	point := xpub.Point()
	spendingData := primitives.EncodeArray(
		primitives.EncodeUint(addrTypePubKey),
		primitives.EncodeBytes(point[:]),
	)
	inner := primitives.EncodeArray(
		primitives.EncodeUint(addrTypePubKey),
		spendingData,
		attrsCBOR,
	)
	sha := primitives.SHA3_256(inner)
	root := primitives.Blake2b224(sha[:])

	addrValue := primitives.EncodeArray(
		primitives.EncodeBytes(root[:]),
		attrsCBOR,
		primitives.EncodeUint(addrTypePubKey),
	)
	crc := primitives.CRC32IEEE(addrValue)
	envelope := primitives.EncodeArray(
		primitives.EncodeTag24(addrValue),
		primitives.EncodeUint(uint64(crc)),
	)

	return Address{root: root, envelope: envelope, base58: primitives.Base58Encode(envelope)}
}

// decodeEnvelope verifies raw is a well-formed address envelope and
// returns its address-triple root hash.
func decodeEnvelope(raw []byte) (root [28]byte, ok bool) {
	if len(raw) == 0 {
		return root, false
	}

	var envelope struct {
		_      struct{} `cbor:",toarray"`
		Tagged cbor.RawMessage
		CRC    uint32
	}
	if err := primitives.Unmarshal(raw, &envelope); err != nil {
		return root, false
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(envelope.Tagged, &tag); err != nil || tag.Number != 24 {
		return root, false
	}
	inner, isBytes := tag.Content.([]byte)
	if !isBytes {
		return root, false
	}

	if primitives.CRC32IEEE(inner) != envelope.CRC {
		return root, false
	}

	var triple struct {
		_     struct{} `cbor:",toarray"`
		Root  []byte
		Attrs map[uint64]cbor.RawMessage
		Type  uint64
	}
	if err := primitives.Unmarshal(inner, &triple); err != nil || len(triple.Root) != 28 {
		return root, false
	}
	copy(root[:], triple.Root)
	return root, true
}

// IsValidAddress reports whether s base58-decodes to a well-formed
// address envelope: a tag-24 payload whose CRC32 matches the stored
// checksum and which itself CBOR-decodes to a 3-element address triple
// with a 28-byte root hash (spec §4.3's address validity check).
func IsValidAddress(s string) bool {
	_, ok := decodeEnvelope(primitives.Base58Decode(s))
	return ok
}

// ParseAddress decodes a base58 address string into an Address, failing
// with ErrMalformedAddress if it is not a well-formed envelope.
func ParseAddress(s string) (Address, error) {
	raw := primitives.Base58Decode(s)
	root, ok := decodeEnvelope(raw)
	if !ok {
		return Address{}, ErrMalformedAddress
	}
	return Address{root: root, envelope: raw, base58: s}, nil
}
