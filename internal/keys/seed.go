package keys

import "github.com/jasony/cole-wallet-core/internal/primitives"

// pbkdf2Iterations and seedLen implement the root-key formula spec §4.2
// gives as the primary candidate: PBKDF2-HMAC-SHA512 over the UTF-8
// mnemonic phrase, stretched directly to xprv length.
const (
	pbkdf2Iterations = 4096
	seedLen          = XPrvSize
)

// RootXPrvFromSeed derives the root extended private key from a BIP-39
// mnemonic phrase and optional password, per the open question resolved
// in SPEC_FULL.md §6.1: stretch PBKDF2-HMAC-SHA512(password,
// "mnemonic"‖phrase, 4096, 96) to 96 bytes, then force the §3 validity
// predicate by clearing/setting the three fixed bits directly rather than
// rehashing. internal/txaux's golden-vector test exercises this
// function's numeric output through a seed-derived output address, so the
// tweak is pinned, not free-standing — see SPEC_FULL.md §6.1 and
// DESIGN.md for why it still differs from the C reference's own seed
// formula (entropy-as-salt rather than phrase-as-salt).
func RootXPrvFromSeed(phrase string, password string) (*XPrv, error) {
	salt := append([]byte("mnemonic"), []byte(phrase)...)
	seed := primitives.PBKDF2HMACSHA512([]byte(password), salt, pbkdf2Iterations, seedLen)

	var kL, kR, chainCode [32]byte
	copy(kL[:], seed[0:32])
	copy(kR[:], seed[32:64])
	copy(chainCode[:], seed[64:96])

	kL[0] &^= 0x20  // third-highest bit of byte 0 -> 0
	kL[31] |= 0x40  // second-highest bit of byte 31 -> 1
	kL[31] &^= 0x80 // highest bit of byte 31 -> 0

	return NewXPrv(kL, kR, chainCode)
}
