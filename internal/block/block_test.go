package block

import (
	"errors"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func marshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := cbor.Marshal(v)
	if err != nil {
		t.Fatalf("cbor.Marshal: %v", err)
	}
	return b
}

func encodeOuter(t *testing.T, tag uint64, body []byte) []byte {
	t.Helper()
	return marshal(t, outerEnvelope{Tag: tag, Body: body})
}

func boundaryBlockBytes(t *testing.T, epoch uint64, prevHash []byte) []byte {
	t.Helper()
	header := marshal(t, boundaryHeaderWire{
		Epoch:         epoch,
		PrevBlockHash: prevHash,
		BodyProof:     marshal(t, []byte{}),
	})
	body := marshal(t, boundaryBlockWire{
		Header: header,
		Body:   marshal(t, []byte{}),
		Extra:  marshal(t, []byte{}),
	})
	return encodeOuter(t, uint64(Boundary), body)
}

func mainBlockBytes(t *testing.T, protocolMagic uint32, prevHash []byte, txs []signedTxWire) []byte {
	t.Helper()
	header := marshal(t, mainHeaderWire{
		ProtocolMagic: protocolMagic,
		PrevBlockHash: prevHash,
		BodyProof:     marshal(t, []byte{}),
		ConsensusData: marshal(t, []byte{}),
		ExtraData:     marshal(t, []byte{}),
	})
	body := marshal(t, mainBodyWire{
		TxPayload:  txs,
		SscPayload: marshal(t, []byte{}),
		DlgPayload: marshal(t, []byte{}),
		UpdPayload: marshal(t, []byte{}),
	})
	wire := marshal(t, mainBlockWire{
		Header: header,
		Body:   body,
		Extra:  marshal(t, []byte{}),
	})
	return encodeOuter(t, uint64(Main), wire)
}

func TestDecodeBoundaryBlock(t *testing.T) {
	prev := make([]byte, 32)
	for i := range prev {
		prev[i] = byte(i)
	}
	raw := boundaryBlockBytes(t, 7, prev)

	blk, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if blk.Header().Kind() != Boundary {
		t.Errorf("Kind() = %v, want Boundary", blk.Header().Kind())
	}

	want := strings.ToLower(hexEncode(prev))
	if got := blk.Header().PreviousHeaderHash(); got != want {
		t.Errorf("PreviousHeaderHash() = %q, want %q", got, want)
	}
}

func TestDecodeBoundaryBlockRejectsTransactions(t *testing.T) {
	raw := boundaryBlockBytes(t, 1, make([]byte, 32))
	blk, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := blk.GetTransactions(); !errors.Is(err, ErrNotMainBlock) {
		t.Errorf("GetTransactions() error = %v, want ErrNotMainBlock", err)
	}
}

func TestDecodeMainBlockTransactions(t *testing.T) {
	prev := make([]byte, 32)
	txs := []signedTxWire{
		{Tx: marshal(t, []byte("tx-one")), Witnesses: marshal(t, []byte("wit-one"))},
		{Tx: marshal(t, []byte("tx-two")), Witnesses: marshal(t, []byte("wit-two"))},
	}
	raw := mainBlockBytes(t, 764824073, prev, txs)

	blk, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if blk.Header().Kind() != Main {
		t.Errorf("Kind() = %v, want Main", blk.Header().Kind())
	}

	got, err := blk.GetTransactions()
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(transactions) = %d, want 2", len(got))
	}
}

func TestDecodeMainBlockEmptyPayload(t *testing.T) {
	raw := mainBlockBytes(t, 1, make([]byte, 32), nil)
	blk, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := blk.GetTransactions()
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(transactions) = %d, want 0", len(got))
	}
}

func TestHeaderHashDiffersByDomainTag(t *testing.T) {
	prev := make([]byte, 32)
	boundaryRaw := boundaryBlockBytes(t, 1, prev)
	mainRaw := mainBlockBytes(t, 1, prev, nil)

	boundaryBlk, err := Decode(boundaryRaw)
	if err != nil {
		t.Fatalf("Decode boundary: %v", err)
	}
	mainBlk, err := Decode(mainRaw)
	if err != nil {
		t.Fatalf("Decode main: %v", err)
	}

	h1 := boundaryBlk.Header().HeaderHash()
	h2 := mainBlk.Header().HeaderHash()
	if h1 == h2 {
		t.Error("boundary and main header hashes collided despite differing domain tags and header shapes")
	}
	if len(h1) != 64 || len(h2) != 64 {
		t.Errorf("header hash hex length = %d/%d, want 64", len(h1), len(h2))
	}
}

func TestHeaderHashIsDeterministic(t *testing.T) {
	prev := make([]byte, 32)
	raw := mainBlockBytes(t, 1, prev, nil)

	b1, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b2, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b1.Header().HeaderHash() != b2.Header().HeaderHash() {
		t.Error("identical header bytes produced different hashes")
	}
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	raw := encodeOuter(t, 2, marshal(t, []byte{}))
	if _, err := Decode(raw); err == nil {
		t.Error("Decode() with unknown tag = nil error, want error")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Error("Decode() on garbage bytes = nil error, want error")
	}
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}
