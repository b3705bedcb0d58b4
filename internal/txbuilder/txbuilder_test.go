package txbuilder

import (
	"errors"
	"testing"

	"github.com/jasony/cole-wallet-core/internal/wallet"
)

func testAddress(t *testing.T) wallet.Address {
	t.Helper()
	w, err := wallet.NewFromMnemonic(
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		"", nil,
	)
	if err != nil {
		t.Fatalf("NewFromMnemonic: %v", err)
	}
	defer w.Close()

	account, err := w.NewAccount("", 0)
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	addrs, err := account.Addresses(false, 0, 1, nil)
	if err != nil {
		t.Fatalf("Addresses: %v", err)
	}
	return addrs[0]
}

// TestBuilderArithmeticOverflow pins S2 from spec §8.
func TestBuilderArithmeticOverflow(t *testing.T) {
	b := NewBuilder()

	if err := b.AddInput(TxIn{Index: 0}, MaxCoin); err != nil {
		t.Fatalf("AddInput(MaxCoin): %v", err)
	}
	if err := b.AddInput(TxIn{Index: 1}, 1); err != nil {
		t.Fatalf("AddInput(1): %v", err)
	}

	if _, err := b.InputTotal(); !errors.Is(err, ErrCoinOutOfBounds) {
		t.Errorf("InputTotal() error = %v, want ErrCoinOutOfBounds", err)
	}
	if _, err := b.Balance(); !errors.Is(err, ErrCoinOutOfBounds) {
		t.Errorf("Balance() error = %v, want ErrCoinOutOfBounds", err)
	}
}

func TestAddInputRejectsOverMaxCoin(t *testing.T) {
	b := NewBuilder()
	if err := b.AddInput(TxIn{}, MaxCoin+1); !errors.Is(err, ErrCoinOutOfBounds) {
		t.Errorf("got %v, want ErrCoinOutOfBounds", err)
	}
}

func TestAddOutputRejectsOverMaxCoin(t *testing.T) {
	b := NewBuilder()
	addr := testAddress(t)
	if err := b.AddOutput(TxOut{Address: addr, Value: MaxCoin + 1}); !errors.Is(err, ErrCoinOutOfBounds) {
		t.Errorf("got %v, want ErrCoinOutOfBounds", err)
	}
}

// TestFinalizeGating pins S3 from spec §8.
func TestFinalizeGating(t *testing.T) {
	addr := testAddress(t)

	onlyOutputs := NewBuilder()
	if err := onlyOutputs.AddOutput(TxOut{Address: addr, Value: 1000}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	if _, err := onlyOutputs.Finalize(); !errors.Is(err, ErrNoInput) {
		t.Errorf("Finalize() error = %v, want ErrNoInput", err)
	}

	onlyInputs := NewBuilder()
	if err := onlyInputs.AddInput(TxIn{Index: 1}, 1000); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if _, err := onlyInputs.Finalize(); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Finalize() error = %v, want ErrNoOutput", err)
	}
}

// TestChangeBalancing pins S6 from spec §8.
func TestChangeBalancing(t *testing.T) {
	addr := testAddress(t)

	b := NewBuilder()
	if err := b.AddInput(TxIn{Index: 1}, 10_000_000); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if err := b.AddOutput(TxOut{Address: addr, Value: 1000}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	if err := b.SetChangeAddress(addr); err != nil {
		t.Fatalf("SetChangeAddress: %v", err)
	}

	bal, err := b.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal.Sign != Zero {
		t.Errorf("Balance().Sign = %v, want Zero (magnitude %d)", bal.Sign, bal.Magnitude)
	}
	if len(b.outputs) != 2 {
		t.Errorf("len(outputs) = %d, want 2", len(b.outputs))
	}

	inTotal, err := b.InputTotal()
	if err != nil {
		t.Fatalf("InputTotal: %v", err)
	}
	outTotal, err := b.OutputTotal()
	if err != nil {
		t.Fatalf("OutputTotal: %v", err)
	}
	fee := b.Fee()
	if outTotal+fee != inTotal {
		t.Errorf("outTotal(%d) + fee(%d) = %d, want inTotal %d", outTotal, fee, outTotal+fee, inTotal)
	}
}

func TestSetChangeAddressNegativeBalanceFails(t *testing.T) {
	addr := testAddress(t)

	b := NewBuilder()
	if err := b.AddInput(TxIn{Index: 1}, 100); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if err := b.AddOutput(TxOut{Address: addr, Value: 10_000_000}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}

	if err := b.SetChangeAddress(addr); err == nil {
		t.Error("expected error balancing a negative-balance transaction")
	}
}

func TestBalanceWithoutFeesIdentity(t *testing.T) {
	addr := testAddress(t)

	b := NewBuilder()
	if err := b.AddInput(TxIn{Index: 1}, 5000); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if err := b.AddOutput(TxOut{Address: addr, Value: 2000}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}

	withoutFees, err := b.BalanceWithoutFees()
	if err != nil {
		t.Fatalf("BalanceWithoutFees: %v", err)
	}
	if withoutFees.Sign != Positive || withoutFees.Magnitude != 3000 {
		t.Errorf("BalanceWithoutFees() = %+v, want {Positive 3000}", withoutFees)
	}

	withFees, err := b.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	fee := b.Fee()
	signed := func(bl Balance) int64 {
		if bl.Sign == Negative {
			return -int64(bl.Magnitude)
		}
		return int64(bl.Magnitude)
	}
	if signed(withoutFees)-int64(fee) != signed(withFees) {
		t.Errorf("balance identity broken: withoutFees=%d, withFees=%d, fee=%d", signed(withoutFees), signed(withFees), fee)
	}
}

func TestFeeIsDeterministic(t *testing.T) {
	b := NewBuilder()
	if err := b.AddInput(TxIn{Index: 1}, 1000); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	addr := testAddress(t)
	if err := b.AddOutput(TxOut{Address: addr, Value: 500}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}

	a := b.Fee()
	c := b.Fee()
	if a != c {
		t.Errorf("Fee() is not deterministic: %d vs %d", a, c)
	}
	if a == 0 {
		t.Error("Fee() should never be zero for a non-empty transaction")
	}
}

func TestFinalizeProducesStableTxID(t *testing.T) {
	addr := testAddress(t)

	build := func() *Transaction {
		b := NewBuilder()
		if err := b.AddInput(TxIn{Index: 1}, 1000); err != nil {
			t.Fatalf("AddInput: %v", err)
		}
		if err := b.AddOutput(TxOut{Address: addr, Value: 500}); err != nil {
			t.Fatalf("AddOutput: %v", err)
		}
		tx, err := b.Finalize()
		if err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		return tx
	}

	a, c := build(), build()
	if a.TxID() != c.TxID() {
		t.Error("identical builder sequences produced different tx_ids")
	}
}
