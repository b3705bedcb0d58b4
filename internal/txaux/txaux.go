// Package txaux implements transaction finalization (spec §4.5): the
// witness-collection state machine over a frozen Transaction, and the
// bit-exact CBOR serialization of the resulting signed transaction.
package txaux

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/jasony/cole-wallet-core/internal/keys"
	"github.com/jasony/cole-wallet-core/internal/primitives"
	"github.com/jasony/cole-wallet-core/internal/txbuilder"
)

// Errors surfaced by this package, completing spec §6's Transaction error
// enumeration (CoinOutOfBounds/NoInput/NoOutput live in txbuilder).
var (
	ErrSignatureMismatch  = errors.New("txaux: witness count does not match input count")
	ErrSignaturesExceeded = errors.New("txaux: all inputs already witnessed")
	ErrOverLimit          = errors.New("txaux: signed transaction exceeds max size")
)

type witness struct {
	xpub [keys.XPubSize]byte
	sig  [ed25519.SignatureSize]byte
}

// FinalizedTx walks the witness-collection state machine described in
// spec §4.5's table: AddWitness advances state k → k+1 while k < N =
// len(inputs); Output succeeds only once k == N.
type FinalizedTx struct {
	tx        *txbuilder.Transaction
	maxSize   int
	witnesses []witness
}

// New wraps tx for witnessing. maxSize overrides MAX_TX_SIZE (spec §6
// open question 2); pass 0 to use the protocol default of 4096.
func New(tx *txbuilder.Transaction, maxSize int) *FinalizedTx {
	if maxSize <= 0 {
		maxSize = 4096
	}
	return &FinalizedTx{tx: tx, maxSize: maxSize}
}

// AddWitness parses a 96-byte xprv, builds the domain-separated signing
// message m = 0x01 ‖ bytes.cbor(protocolMagic) ‖ tx_id, signs it with the
// extended secret key, derives the corresponding xpub, and appends the
// witness (spec §4.5). The magic is wrapped the same way the address
// attribute map wraps it (wallet.encodeAttrs) rather than left as a bare
// CBOR uint, so a single convention covers both uses of the field.
// tx_id is supplied by the caller and must equal f's transaction's
// tx_id; this core trusts but does not re-verify it. Fails
// ErrSignaturesExceeded once N = len(inputs) witnesses are present.
func (f *FinalizedTx) AddWitness(xprvBytes []byte, protocolMagic uint32, txID [32]byte) error {
	if len(f.witnesses) >= len(f.tx.Inputs()) {
		return ErrSignaturesExceeded
	}

	xprv, err := keys.XPrvForSigning(xprvBytes)
	if err != nil {
		return fmt.Errorf("txaux: add witness: %w", err)
	}

	msg := append([]byte{0x01}, primitives.EncodeBytes(primitives.EncodeUint(uint64(protocolMagic)))...)
	msg = append(msg, txID[:]...)

	sig := keys.SignExtended(xprv, msg)
	xpub := xprv.ToPublic()

	var w witness
	copy(w.xpub[:], xpub.Bytes())
	copy(w.sig[:], sig)
	f.witnesses = append(f.witnesses, w)
	return nil
}

// Output produces the final signed-transaction bytes. It requires exactly
// len(inputs) witnesses (ErrSignatureMismatch otherwise) and fails
// ErrOverLimit if the encoding exceeds the configured max size (spec
// §4.5).
func (f *FinalizedTx) Output() ([]byte, error) {
	if len(f.witnesses) != len(f.tx.Inputs()) {
		return nil, ErrSignatureMismatch
	}

	out := f.serialize()
	if len(out) > f.maxSize {
		return nil, ErrOverLimit
	}
	return out, nil
}

// serialize encodes [tx, [witness…]] (spec §4.5): tx is the transaction's
// own 3-element CBOR array embedded directly, and each witness is
// [0, tag24(CBOR((xpub, sig)))].
func (f *FinalizedTx) serialize() []byte {
	witnessItems := make([][]byte, len(f.witnesses))
	for i, w := range f.witnesses {
		witnessItems[i] = encodeWitness(w.xpub[:], w.sig[:])
	}
	witnessesCBOR := primitives.EncodeArray(witnessItems...)
	return primitives.EncodeArray(f.tx.EncodeCBOR(), witnessesCBOR)
}

// encodeWitness mirrors txbuilder's unexported wire shape — duplicated
// here (rather than imported) because it is part of the stable output
// format this package alone is responsible for emitting.
func encodeWitness(xpub, sig []byte) []byte {
	inner := primitives.EncodeArray(primitives.EncodeBytes(xpub), primitives.EncodeBytes(sig))
	return primitives.EncodeArray(primitives.EncodeUint(0), primitives.EncodeTag24(inner))
}
