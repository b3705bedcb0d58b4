// Package txbuilder implements the unsigned-transaction model (spec §4.4):
// input/output accumulation, the linear fee policy, change balancing, and
// the freeze into a Transaction ready for witnessing. The size bound is
// applied to the change output only; Finalize does not check size.
package txbuilder

import (
	"errors"
	"fmt"

	"github.com/jasony/cole-wallet-core/internal/primitives"
	"github.com/jasony/cole-wallet-core/internal/wallet"
)

// MaxCoin is the largest admissible coin value (spec §6).
const MaxCoin = 45_000_000_000_000_000

// defaultMaxTxSize is MAX_TX_SIZE (spec §6), overridable per Builder via
// WithMaxTxSize (spec §6 open question 2).
const defaultMaxTxSize = 4096

// Errors surfaced by this package (spec §6's Transaction error
// enumeration, minus the finalization-state-machine members owned by
// internal/txaux).
var (
	ErrCoinOutOfBounds = errors.New("txbuilder: coin value out of bounds")
	ErrNoInput         = errors.New("txbuilder: no input")
	ErrNoOutput        = errors.New("txbuilder: no output")
)

// TxIn is a transaction input reference (spec §3's txoptr).
type TxIn struct {
	TxID  [32]byte
	Index uint32
}

// TxOut is a transaction output.
type TxOut struct {
	Address wallet.Address
	Value   uint64
}

// Sign is the balance direction spec §4.4 requires Balance to report.
type Sign int

const (
	Zero Sign = iota
	Positive
	Negative
)

// Balance is a signed coin amount (spec §4.4: "a sign tag {Positive,
// Negative, Zero} plus magnitude").
type Balance struct {
	Sign      Sign
	Magnitude uint64
}

// Transaction is the frozen result of Builder.Finalize.
type Transaction struct {
	inputs  []TxIn
	outputs []TxOut
	attrs   []byte
	txID    [32]byte
}

func (tx *Transaction) Inputs() []TxIn   { return tx.inputs }
func (tx *Transaction) Outputs() []TxOut { return tx.outputs }
func (tx *Transaction) TxID() [32]byte   { return tx.txID }

// EncodeCBOR returns the transaction's own CBOR encoding — the 3-element
// array [inputs_stream, outputs_stream, attrs] with indefinite-length
// inputs/outputs arrays (spec §4.5) — the exact bytes txaux embeds inside
// the signed-tx envelope and the exact bytes this tx_id was hashed over.
func (tx *Transaction) EncodeCBOR() []byte {
	return encodeTx(tx.inputs, tx.outputs, tx.attrs)
}

type inputRecord struct {
	txin  TxIn
	value uint64
}

// Builder accumulates inputs and outputs before Finalize freezes them.
type Builder struct {
	inputs    []inputRecord
	outputs   []TxOut
	attrs     []byte
	maxTxSize int
	changeSet bool
}

// Option configures a Builder at construction.
type Option func(*Builder)

// WithMaxTxSize overrides MAX_TX_SIZE for this builder (spec §6 open
// question 2).
func WithMaxTxSize(n int) Option {
	return func(b *Builder) { b.maxTxSize = n }
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{maxTxSize: defaultMaxTxSize, attrs: primitives.EncodeMapUint(nil)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddInput pushes (txin, declaredValue), failing ErrCoinOutOfBounds if
// declaredValue exceeds MaxCoin (spec §4.4).
func (b *Builder) AddInput(txin TxIn, declaredValue uint64) error {
	if declaredValue > MaxCoin {
		return ErrCoinOutOfBounds
	}
	b.inputs = append(b.inputs, inputRecord{txin: txin, value: declaredValue})
	return nil
}

// AddOutput pushes out, failing ErrCoinOutOfBounds if its value exceeds
// MaxCoin.
func (b *Builder) AddOutput(out TxOut) error {
	if out.Value > MaxCoin {
		return ErrCoinOutOfBounds
	}
	b.outputs = append(b.outputs, out)
	return nil
}

// InputTotal sums the declared input values.
func (b *Builder) InputTotal() (uint64, error) {
	var total uint64
	for _, in := range b.inputs {
		total += in.value
		if total > MaxCoin {
			return 0, ErrCoinOutOfBounds
		}
	}
	return total, nil
}

// OutputTotal sums the output values.
func (b *Builder) OutputTotal() (uint64, error) {
	var total uint64
	for _, out := range b.outputs {
		total += out.Value
		if total > MaxCoin {
			return 0, ErrCoinOutOfBounds
		}
	}
	return total, nil
}

// Fee computes the linear fee a + b·size_bytes over the transaction's
// current shape, with a placeholder witness set of the correct size
// included in the byte count (spec §4.4). a and b are scaled to integer
// arithmetic and the result rounded up, so there is no floating-point
// drift (spec §9).
func (b *Builder) Fee() uint64 {
	size := len(b.encodePlaceholder())
	return linearFee(size)
}

// feeA and feeBNum/feeBDen implement a + b·size with
// a = 155381, b = 43.946 expressed as the rational 43946/1000 (spec §4.4,
// §9: "scale by the rational denominator and ceiling-divide").
const (
	feeA    = 155381
	feeBNum = 43946
	feeBDen = 1000
)

func linearFee(sizeBytes int) uint64 {
	numerator := uint64(feeA)*feeBDen + uint64(feeBNum)*uint64(sizeBytes)
	return (numerator + feeBDen - 1) / feeBDen
}

// BalanceWithoutFees is Σinputs − Σoutputs (spec §8 property 6).
func (b *Builder) BalanceWithoutFees() (Balance, error) {
	inTotal, err := b.InputTotal()
	if err != nil {
		return Balance{}, err
	}
	outTotal, err := b.OutputTotal()
	if err != nil {
		return Balance{}, err
	}
	return signedDiff(inTotal, outTotal), nil
}

// Balance is Σinputs − (Σoutputs + fee) (spec §4.4).
func (b *Builder) Balance() (Balance, error) {
	inTotal, err := b.InputTotal()
	if err != nil {
		return Balance{}, err
	}
	outTotal, err := b.OutputTotal()
	if err != nil {
		return Balance{}, err
	}
	fee := b.Fee()
	total := outTotal + fee
	if total > MaxCoin {
		return Balance{}, ErrCoinOutOfBounds
	}
	return signedDiff(inTotal, total), nil
}

func signedDiff(a, c uint64) Balance {
	if a == c {
		return Balance{Sign: Zero}
	}
	if a > c {
		return Balance{Sign: Positive, Magnitude: a - c}
	}
	return Balance{Sign: Negative, Magnitude: c - a}
}

// SetChangeAddress balances the transaction by appending a change output
// to addr for any positive balance, its value chosen so that inputs equal
// outputs plus the fee of the transaction including that output. If the
// change output would push the transaction over the max size, or the
// balance does not cover the extra fee of the change output itself, the
// balance is absorbed into the fee instead and no output is appended
// (spec §4.4's resolution of the §9 open question). Negative balance fails; zero balance is a no-op. This
// call is one-shot by convention: Builder does not prevent callers from
// adding more inputs/outputs afterward, which invalidates the balance
// invariant until SetChangeAddress is called again.
func (b *Builder) SetChangeAddress(addr wallet.Address) error {
	bal, err := b.Balance()
	if err != nil {
		return err
	}
	switch bal.Sign {
	case Zero:
		b.changeSet = true
		return nil
	case Negative:
		return fmt.Errorf("txbuilder: negative balance of %d cannot be balanced by a change output", bal.Magnitude)
	}

	// The change output adds bytes and so raises the fee: size the fee with
	// the change output in place before fixing its value.
	inTotal, _ := b.InputTotal()
	outTotal, _ := b.OutputTotal()
	withChange := func(v uint64) []TxOut {
		return append(append([]TxOut{}, b.outputs...), TxOut{Address: addr, Value: v})
	}
	fee := linearFee(len(b.encodePlaceholderWith(withChange(bal.Magnitude))))
	if outTotal+fee >= inTotal {
		// The balance cannot pay for the change output's own bytes.
		b.changeSet = true
		return nil
	}
	candidate := withChange(inTotal - outTotal - fee)

	sizeWithChange := len(b.encodePlaceholderWith(candidate))
	if sizeWithChange > b.maxTxSize {
		// Overflow absorbed into the fee: leave outputs untouched.
		b.changeSet = true
		return nil
	}

	b.outputs = candidate
	b.changeSet = true
	return nil
}

// Finalize freezes the builder into a Transaction, computing its tx_id as
// Blake2b-256 of its CBOR encoding (spec §4.4).
func (b *Builder) Finalize() (*Transaction, error) {
	if len(b.inputs) == 0 {
		return nil, ErrNoInput
	}
	if len(b.outputs) == 0 {
		return nil, ErrNoOutput
	}

	ins := make([]TxIn, len(b.inputs))
	for i, in := range b.inputs {
		ins[i] = in.txin
	}
	outs := append([]TxOut{}, b.outputs...)

	cbor := encodeTx(ins, outs, b.attrs)
	txID := primitives.Blake2b256(cbor)

	return &Transaction{inputs: ins, outputs: outs, attrs: b.attrs, txID: txID}, nil
}

func (b *Builder) encodePlaceholder() []byte {
	return b.encodePlaceholderWith(b.outputs)
}

func (b *Builder) encodePlaceholderWith(outs []TxOut) []byte {
	ins := make([]TxIn, len(b.inputs))
	for i, in := range b.inputs {
		ins[i] = in.txin
	}
	txCBOR := encodeTx(ins, outs, b.attrs)

	witnesses := make([][]byte, len(ins))
	for i := range witnesses {
		witnesses[i] = encodeWitness(make([]byte, 64), make([]byte, 64))
	}
	return primitives.EncodeArray(txCBOR, primitives.EncodeArray(witnesses...))
}

// MaxTxSize returns the builder's configured size bound.
func (b *Builder) MaxTxSize() int { return b.maxTxSize }
