package colewallet

import (
	"errors"
	"testing"
)

func TestNewMnemonicWordCounts(t *testing.T) {
	tests := []struct {
		bits      int
		wantWords int
	}{
		{128, 12},
		{160, 15},
		{192, 18},
		{224, 21},
		{256, 24},
	}
	for _, tt := range tests {
		phrase, err := NewMnemonic(tt.bits)
		if err != nil {
			t.Fatalf("NewMnemonic(%d): %v", tt.bits, err)
		}
		words := 0
		inWord := false
		for _, r := range phrase {
			if r == ' ' {
				inWord = false
				continue
			}
			if !inWord {
				words++
				inWord = true
			}
		}
		if words != tt.wantWords {
			t.Errorf("NewMnemonic(%d) produced %d words, want %d", tt.bits, words, tt.wantWords)
		}
	}
}

func TestNewMnemonicRejectsBadBits(t *testing.T) {
	if _, err := NewMnemonic(100); err == nil {
		t.Error("NewMnemonic(100) = nil error, want error")
	}
}

func TestEndToEndWalletAddressAndTx(t *testing.T) {
	phrase, err := NewMnemonic(128)
	if err != nil {
		t.Fatalf("NewMnemonic: %v", err)
	}

	w, err := NewWalletFromMnemonic(phrase, "", nil)
	if err != nil {
		t.Fatalf("NewWalletFromMnemonic: %v", err)
	}
	defer w.Close()

	account, err := w.NewAccount("primary", 0)
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}

	addrs, err := account.Addresses(false, 0, 1, nil)
	if err != nil {
		t.Fatalf("Addresses: %v", err)
	}
	addr := addrs[0]

	if !IsValidAddress(addr.String()) {
		t.Fatalf("IsValidAddress(%s) = false, want true", addr.String())
	}
	if _, err := ParseAddress(addr.String()); err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}

	b := NewTxBuilder()
	if err := b.AddInput(TxIn{Index: 0}, 5_000_000); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if err := b.AddOutput(TxOut{Address: addr, Value: 1_000_000}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	if err := b.SetChangeAddress(addr); err != nil {
		t.Fatalf("SetChangeAddress: %v", err)
	}
	tx, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	f := NewFinalizedTx(tx, 0)
	if err := f.AddWitness(make([]byte, 96), 1, tx.TxID()); err != nil {
		t.Fatalf("AddWitness: %v", err)
	}
	out, err := f.Output()
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if len(out) == 0 {
		t.Error("Output() returned empty bytes")
	}
}

func TestParseAddressRejectsGarbage(t *testing.T) {
	if _, err := ParseAddress("not-a-real-address"); !errors.Is(err, ErrMalformedAddress) {
		t.Errorf("ParseAddress() error = %v, want ErrMalformedAddress", err)
	}
}
