// Package wallet implements the HD wallet layer (spec §4.3): a root
// extended key built from a mnemonic or raw entropy, hardened account
// derivation beneath it, and protocol address generation over an
// account's external/internal chains.
package wallet

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/jasony/cole-wallet-core/internal/bip39"
	"github.com/jasony/cole-wallet-core/internal/keys"
)

// Errors surfaced by this package.
var (
	ErrInvalidEntropySize = errors.New("wallet: entropy must be 16, 20, 24, 28, or 32 bytes")
	ErrWalletLocked       = errors.New("wallet: locked")
	ErrAccountNotFound    = errors.New("wallet: account not found")
)

// internalChain and externalChain are the two soft-derived chains BIP44
// reserves beneath an account (spec §4.3: "chain_xprv = derive(account_xprv,
// is_internal ? 1 : 0)").
const (
	externalChain uint32 = 0
	internalChain uint32 = 1
)

// Wallet holds the root extended key and the accounts derived from it.
// A Wallet is not safe for concurrent use by contract (spec §5); the
// mutex here only serializes against its own finalizer-driven cleanup.
type Wallet struct {
	mu            sync.RWMutex
	root          *keys.XPrv
	protocolMagic *uint32
	isLocked      bool
	accounts      map[uint32]*Account
}

// Account is a hardened child of the wallet root (spec §4.3: "account
// creation ... returns an account whose root is derive(wallet_root,
// account_index | 0x80000000)"). Alias is caller bookkeeping only.
type Account struct {
	alias string
	index uint32
	xprv  *keys.XPrv
}

// New builds a wallet from raw entropy and an optional password. entropy
// must be one of the five BIP-39-admissible lengths; any other length
// fails with ErrInvalidEntropySize (spec §4.3: "wrong entropy size fails
// with a generic error").
func New(entropy []byte, password string, protocolMagic *uint32) (*Wallet, error) {
	indices, err := bip39.PhraseFromEntropy(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntropySize, err)
	}
	phrase := strings.Join(bip39.WordsFromPhrase(indices), " ")
	return newFromPhrase(phrase, password, protocolMagic)
}

// NewFromMnemonic builds a wallet from an existing, checksum-valid
// mnemonic phrase.
func NewFromMnemonic(phrase string, password string, protocolMagic *uint32) (*Wallet, error) {
	if _, err := bip39.EntropyFromPhrase(phrase); err != nil {
		return nil, err
	}
	return newFromPhrase(phrase, password, protocolMagic)
}

func newFromPhrase(phrase, password string, protocolMagic *uint32) (*Wallet, error) {
	root, err := keys.RootXPrvFromSeed(phrase, password)
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		root:          root,
		protocolMagic: protocolMagic,
		accounts:      make(map[uint32]*Account),
	}
	runtime.SetFinalizer(w, (*Wallet).cleanup)
	return w, nil
}

// NewAccount derives and stores the hardened account at index, under
// alias for the caller's own bookkeeping.
func (w *Wallet) NewAccount(alias string, index uint32) (*Account, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isLocked {
		return nil, ErrWalletLocked
	}

	xprv, err := keys.Derive(w.root, index|keys.HardenedOffset)
	if err != nil {
		return nil, fmt.Errorf("wallet: deriving account %d: %w", index, err)
	}

	account := &Account{alias: alias, index: index, xprv: xprv}
	w.accounts[index] = account
	return account, nil
}

// Account returns a previously created account by index.
func (w *Wallet) Account(index uint32) (*Account, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, ok := w.accounts[index]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// Accounts returns every account created on this wallet so far.
func (w *Wallet) Accounts() []*Account {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*Account, 0, len(w.accounts))
	for _, a := range w.accounts {
		out = append(out, a)
	}
	return out
}

// ProtocolMagic returns the testnet protocol magic the wallet was built
// with, or nil on mainnet. Account.Addresses does not read it; addresses
// carry the magic passed to that call.
func (w *Wallet) ProtocolMagic() *uint32 {
	return w.protocolMagic
}

// Close zeroizes the wallet's root key material.
func (w *Wallet) Close() error {
	w.cleanup()
	return nil
}

func (w *Wallet) cleanup() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.root != nil {
		w.root.Zero()
	}
	for _, a := range w.accounts {
		if a.xprv != nil {
			a.xprv.Zero()
		}
	}
	runtime.SetFinalizer(w, nil)
}

// Alias returns the account's caller-assigned bookkeeping label.
func (a *Account) Alias() string { return a.alias }

// Index returns the account's hardened derivation index (without the
// hardened-offset bit).
func (a *Account) Index() uint32 { return a.index }

// XPub derives the account's extended public key in one call (spec §5
// supplement of the C reference's bcc_wallet_new_account_key).
func (a *Account) XPub() *keys.XPub {
	return a.xprv.ToPublic()
}

// Addresses derives count consecutive addresses starting at fromIndex on
// the account's external (is_internal=false) or internal (change) chain,
// per spec §4.3.
func (a *Account) Addresses(isInternal bool, fromIndex, count uint32, protocolMagic *uint32) ([]Address, error) {
	chain := externalChain
	if isInternal {
		chain = internalChain
	}

	chainXprv, err := keys.Derive(a.xprv, chain)
	if err != nil {
		return nil, fmt.Errorf("wallet: deriving chain: %w", err)
	}

	attrs := encodeAttrs(protocolMagic)
	addresses := make([]Address, count)
	for k := uint32(0); k < count; k++ {
		childXprv, err := keys.Derive(chainXprv, fromIndex+k)
		if err != nil {
			return nil, fmt.Errorf("wallet: deriving address index %d: %w", fromIndex+k, err)
		}
		addresses[k] = newAddress(childXprv.ToPublic(), attrs)
	}
	return addresses, nil
}
