package txbuilder

import "github.com/jasony/cole-wallet-core/internal/primitives"

// This file holds the CBOR wire shapes shared between the builder (which
// needs them to size a placeholder transaction for fee computation) and
// internal/txaux (which needs the real thing for serialization) — kept
// here rather than in txaux to avoid a txaux → txbuilder → txaux import
// cycle, since txaux's FinalizedTx wraps a *txbuilder.Transaction.

// encodeTxIn encodes one transaction input as [0, tag24(CBOR((tx_id,
// index)))] (spec §4.5).
func encodeTxIn(in TxIn) []byte {
	inner := primitives.EncodeArray(
		primitives.EncodeBytes(in.TxID[:]),
		primitives.EncodeUint(uint64(in.Index)),
	)
	return primitives.EncodeArray(primitives.EncodeUint(0), primitives.EncodeTag24(inner))
}

// encodeTxOut encodes one transaction output as [address_cbor, value]
// (spec §4.5); address_cbor is the output address's own complete CBOR
// envelope, embedded directly rather than re-wrapped.
func encodeTxOut(out TxOut) []byte {
	return primitives.EncodeArray(out.Address.EnvelopeCBOR(), primitives.EncodeUint(out.Value))
}

// encodeWitness encodes one witness as [0, tag24(CBOR((xpub, sig)))]
// (spec §4.5).
func encodeWitness(xpub, sig []byte) []byte {
	inner := primitives.EncodeArray(primitives.EncodeBytes(xpub), primitives.EncodeBytes(sig))
	return primitives.EncodeArray(primitives.EncodeUint(0), primitives.EncodeTag24(inner))
}

// encodeTx encodes a transaction body as [inputs_stream, outputs_stream,
// attrs], where the inputs and outputs streams are indefinite-length
// arrays (spec §4.5, §9: "the reference layout uses indefinite-length
// arrays for the inputs and outputs lists of a transaction").
func encodeTx(inputs []TxIn, outputs []TxOut, attrs []byte) []byte {
	inItems := make([][]byte, len(inputs))
	for i, in := range inputs {
		inItems[i] = encodeTxIn(in)
	}
	outItems := make([][]byte, len(outputs))
	for i, out := range outputs {
		outItems[i] = encodeTxOut(out)
	}

	inputsStream := primitives.EncodeArrayIndefinite(inItems...)
	outputsStream := primitives.EncodeArrayIndefinite(outItems...)
	return primitives.EncodeArray(inputsStream, outputsStream, attrs)
}
