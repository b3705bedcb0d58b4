// Package colewallet is a hierarchical-deterministic, Ed25519-extended-key
// wallet core for the Byron/Cole-era ledger: BIP-39 mnemonics, a
// BIP32-Ed25519 key tree, protocol addresses, transaction building and
// witnessing, and read-only block decoding, presented as a single facade
// over the internal/ packages that implement each concern.
package colewallet

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/jasony/cole-wallet-core/internal/bip39"
	"github.com/jasony/cole-wallet-core/internal/block"
	"github.com/jasony/cole-wallet-core/internal/txaux"
	"github.com/jasony/cole-wallet-core/internal/txbuilder"
	"github.com/jasony/cole-wallet-core/internal/wallet"
)

// Re-exported sentinel errors, so callers importing only this package can
// still errors.Is against them.
var (
	ErrInvalidEntropySize = wallet.ErrInvalidEntropySize
	ErrAccountNotFound    = wallet.ErrAccountNotFound
	ErrMalformedAddress   = wallet.ErrMalformedAddress

	ErrCoinOutOfBounds = txbuilder.ErrCoinOutOfBounds
	ErrNoInput         = txbuilder.ErrNoInput
	ErrNoOutput        = txbuilder.ErrNoOutput

	ErrSignatureMismatch  = txaux.ErrSignatureMismatch
	ErrSignaturesExceeded = txaux.ErrSignaturesExceeded
	ErrSignedTxOverLimit  = txaux.ErrOverLimit

	ErrNotMainBlock = block.ErrNotMainBlock
)

// Type aliases let callers spell these as colewallet.X without reaching
// into internal/ themselves; the concrete implementations stay where the
// rest of this module already built and tested them.
type (
	Wallet            = wallet.Wallet
	Account           = wallet.Account
	Address           = wallet.Address
	TxBuilder         = txbuilder.Builder
	TxBuilderOption   = txbuilder.Option
	TxIn              = txbuilder.TxIn
	TxOut             = txbuilder.TxOut
	Balance           = txbuilder.Balance
	Transaction       = txbuilder.Transaction
	FinalizedTx       = txaux.FinalizedTx
	Block             = block.Block
	BlockHeader       = block.BlockHeader
	SignedTransaction = block.SignedTransaction
)

// WithMaxTxSize overrides the MAX_TX_SIZE bound a TxBuilder applies when
// deciding whether SetChangeAddress can append a change output.
var WithMaxTxSize = txbuilder.WithMaxTxSize

// NewWallet builds a wallet from raw BIP-39 entropy (16/20/24/28/32
// bytes) and an optional BIP-39 password. protocolMagic is stored on the
// wallet and reported by its ProtocolMagic method (nil for mainnet);
// addresses are tagged only by the magic passed to Account.Addresses.
func NewWallet(entropy []byte, password string, protocolMagic *uint32) (*Wallet, error) {
	return wallet.New(entropy, password, protocolMagic)
}

// NewWalletFromMnemonic builds a wallet from an existing, checksum-valid
// BIP-39 mnemonic phrase.
func NewWalletFromMnemonic(phrase, password string, protocolMagic *uint32) (*Wallet, error) {
	return wallet.NewFromMnemonic(phrase, password, protocolMagic)
}

// wordCountForBits maps a BIP-39 entropy size in bits to its mnemonic
// word count.
func wordCountForBits(bits int) (int, error) {
	switch bits {
	case 128:
		return 12, nil
	case 160:
		return 15, nil
	case 192:
		return 18, nil
	case 224:
		return 21, nil
	case 256:
		return 24, nil
	default:
		return 0, fmt.Errorf("colewallet: entropy bits must be 128, 160, 192, 224, or 256, got %d", bits)
	}
}

// NewMnemonic generates a fresh BIP-39 mnemonic phrase from bits bits of
// crypto/rand entropy (128, 160, 192, 224, or 256).
func NewMnemonic(bits int) (string, error) {
	wordCount, err := wordCountForBits(bits)
	if err != nil {
		return "", err
	}

	randomBytes := make([]byte, bits/8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("colewallet: reading random entropy: %w", err)
	}
	next := 0
	byteSource := func() byte {
		b := randomBytes[next]
		next++
		return b
	}

	entropy, err := bip39.EntropyFromRandom(wordCount, byteSource)
	if err != nil {
		return "", err
	}
	indices, err := bip39.PhraseFromEntropy(entropy)
	if err != nil {
		return "", err
	}
	return strings.Join(bip39.WordsFromPhrase(indices), " "), nil
}

// IsValidAddress reports whether s is a well-formed base58 protocol
// address (spec §4.3's address validity check).
func IsValidAddress(s string) bool { return wallet.IsValidAddress(s) }

// ParseAddress decodes a base58 address string into an Address.
func ParseAddress(s string) (Address, error) { return wallet.ParseAddress(s) }

// NewTxBuilder starts a new unsigned transaction, optionally overriding
// MAX_TX_SIZE via txbuilder.WithMaxTxSize options.
func NewTxBuilder(opts ...TxBuilderOption) *TxBuilder {
	return txbuilder.NewBuilder(opts...)
}

// NewFinalizedTx wraps a frozen transaction for witness collection.
// maxSize overrides the protocol's 4096-byte default; pass 0 to keep it.
func NewFinalizedTx(tx *Transaction, maxSize int) *FinalizedTx {
	return txaux.New(tx, maxSize)
}

// DecodeBlock parses a raw CBOR block, dispatching to the Boundary or
// Main variant by its wire tag (spec §4.6).
func DecodeBlock(data []byte) (*Block, error) {
	return block.Decode(data)
}
