// Package block implements the read-only block/block-header decoder
// (spec §4.6): a CBOR [tag, body] envelope distinguishing Boundary
// (epoch-boundary) from Main blocks, header hashing with a domain-tag
// prefix, and extraction of the Main block's signed-transaction list.
package block

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/jasony/cole-wallet-core/internal/primitives"
)

// Kind distinguishes the two block variants the protocol's CBOR tag
// selects between (spec §4.6).
type Kind int

const (
	Boundary Kind = 0
	Main     Kind = 1
)

// Domain tag bytes prefixed before hashing a header's CBOR (spec §4.6:
// "header_hash() = Blake2b-256 of the CBOR of the header, prefixed with a
// domain tag byte distinguishing Main (0x02) from Boundary (0x00)").
const (
	domainTagBoundary = 0x00
	domainTagMain     = 0x02
)

// ErrNotMainBlock is returned by GetTransactions for a Boundary block
// (spec §4.6: "fails for Boundary").
var ErrNotMainBlock = errors.New("block: transactions are only defined for Main blocks")

// BlockHeader is a decoded block header: enough to compute its hash and
// walk the chain backward.
type BlockHeader struct {
	kind         Kind
	raw          []byte
	previousHash [32]byte
}

// Kind reports whether this header belongs to a Boundary or Main block.
func (h *BlockHeader) Kind() Kind { return h.kind }

// HeaderHash returns Blake2b-256(domain_tag ‖ CBOR(header)) as lowercase
// hex (spec §4.6, §6).
func (h *BlockHeader) HeaderHash() string {
	tag := byte(domainTagBoundary)
	if h.kind == Main {
		tag = domainTagMain
	}
	buf := append([]byte{tag}, h.raw...)
	sum := primitives.Blake2b256(buf)
	return hex.EncodeToString(sum[:])
}

// PreviousHeaderHash returns the predecessor block's header hash as
// lowercase hex (spec §5 supplement of the C reference's block-header
// handle getters).
func (h *BlockHeader) PreviousHeaderHash() string {
	return hex.EncodeToString(h.previousHash[:])
}

// SignedTransaction is one [tx, witnesses] entry of a Main block's
// transaction payload — the same shape txaux produces, kept here as raw
// CBOR since this package only reads blocks, never builds them.
type SignedTransaction struct {
	TxCBOR        []byte
	WitnessesCBOR []byte
}

// Block is a decoded protocol block.
type Block struct {
	header       BlockHeader
	transactions []SignedTransaction
}

// Header returns the block's header.
func (b *Block) Header() *BlockHeader { return &b.header }

// GetTransactions returns the Main block's transaction list; it fails
// with ErrNotMainBlock for a Boundary block (spec §4.6).
func (b *Block) GetTransactions() ([]SignedTransaction, error) {
	if b.header.kind != Main {
		return nil, ErrNotMainBlock
	}
	return b.transactions, nil
}

type outerEnvelope struct {
	_    struct{} `cbor:",toarray"`
	Tag  uint64
	Body cbor.RawMessage
}

// boundaryHeaderWire mirrors the Byron/Cole epoch-boundary header: a
// protocol epoch number, the previous header hash, and a body proof this
// package never inspects.
type boundaryHeaderWire struct {
	_             struct{} `cbor:",toarray"`
	Epoch         uint64
	PrevBlockHash []byte
	BodyProof     cbor.RawMessage
}

type boundaryBlockWire struct {
	_      struct{} `cbor:",toarray"`
	Header cbor.RawMessage
	Body   cbor.RawMessage
	Extra  cbor.RawMessage
}

// mainHeaderWire mirrors the Byron/Cole main-block header: protocol
// magic, previous header hash, a body proof and consensus/extra data this
// package never inspects beyond hashing the header as a whole.
type mainHeaderWire struct {
	_             struct{} `cbor:",toarray"`
	ProtocolMagic uint32
	PrevBlockHash []byte
	BodyProof     cbor.RawMessage
	ConsensusData cbor.RawMessage
	ExtraData     cbor.RawMessage
}

type signedTxWire struct {
	_         struct{} `cbor:",toarray"`
	Tx        cbor.RawMessage
	Witnesses cbor.RawMessage
}

type mainBodyWire struct {
	_          struct{} `cbor:",toarray"`
	TxPayload  []signedTxWire
	SscPayload cbor.RawMessage
	DlgPayload cbor.RawMessage
	UpdPayload cbor.RawMessage
}

type mainBlockWire struct {
	_      struct{} `cbor:",toarray"`
	Header cbor.RawMessage
	Body   cbor.RawMessage
	Extra  cbor.RawMessage
}

// Decode parses a raw block: CBOR [tag, body] with tag ∈ {0: Boundary,
// 1: Main} (spec §4.6). Decode failures propagate a generic decode error
// (spec §7's Decode error kind).
func Decode(data []byte) (*Block, error) {
	var outer outerEnvelope
	if err := primitives.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("block: decode envelope: %w", err)
	}

	switch outer.Tag {
	case uint64(Boundary):
		return decodeBoundary(outer.Body)
	case uint64(Main):
		return decodeMain(outer.Body)
	default:
		return nil, fmt.Errorf("block: unknown tag %d", outer.Tag)
	}
}

func decodeBoundary(body []byte) (*Block, error) {
	var wire boundaryBlockWire
	if err := primitives.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("block: decode boundary body: %w", err)
	}
	var header boundaryHeaderWire
	if err := primitives.Unmarshal(wire.Header, &header); err != nil {
		return nil, fmt.Errorf("block: decode boundary header: %w", err)
	}

	var prev [32]byte
	copy(prev[:], header.PrevBlockHash)

	return &Block{
		header: BlockHeader{kind: Boundary, raw: wire.Header, previousHash: prev},
	}, nil
}

func decodeMain(body []byte) (*Block, error) {
	var wire mainBlockWire
	if err := primitives.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("block: decode main body: %w", err)
	}
	var header mainHeaderWire
	if err := primitives.Unmarshal(wire.Header, &header); err != nil {
		return nil, fmt.Errorf("block: decode main header: %w", err)
	}
	var bodyInner mainBodyWire
	if err := primitives.Unmarshal(wire.Body, &bodyInner); err != nil {
		return nil, fmt.Errorf("block: decode main body payload: %w", err)
	}

	var prev [32]byte
	copy(prev[:], header.PrevBlockHash)

	txs := make([]SignedTransaction, len(bodyInner.TxPayload))
	for i, t := range bodyInner.TxPayload {
		txs[i] = SignedTransaction{TxCBOR: []byte(t.Tx), WitnessesCBOR: []byte(t.Witnesses)}
	}

	return &Block{
		header:       BlockHeader{kind: Main, raw: wire.Header, previousHash: prev},
		transactions: txs,
	}, nil
}
