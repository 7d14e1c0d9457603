package hdkey

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"bip32ed25519/internal/crypto"
	"bip32ed25519/internal/util/memzero"
)

const (
	// MinSeedLength is the shortest seed DeriveMaster accepts.
	MinSeedLength = 16

	// MaxSeedLength is the longest seed DeriveMaster accepts.
	MaxSeedLength = 64

	// icarusIterations is the PBKDF2 round count of the Icarus scheme.
	icarusIterations = 4096
)

// masterKey keys the HMACs that turn a seed into a master key.
var masterKey = []byte("ed25519 seed")

// MasterScheme selects how a mnemonic becomes a master key.
type MasterScheme uint8

const (
	// SchemeIcarus stretches the mnemonic entropy with PBKDF2 (CIP-3).
	SchemeIcarus MasterScheme = iota

	// SchemeLedger feeds the 64-byte BIP39 seed to DeriveMaster.
	SchemeLedger
)

// String returns the scheme name.
func (s MasterScheme) String() string {
	switch s {
	case SchemeIcarus:
		return "icarus"
	case SchemeLedger:
		return "ledger"
	default:
		return fmt.Sprintf("MasterScheme(%d)", uint8(s))
	}
}

// DeriveMaster derives the master key for seed, which must be between
// MinSeedLength and MaxSeedLength bytes long.
//
//	I  = HMAC-SHA512("ed25519 seed", seed), re-hashed while bit 5 of I[31] is set
//	kL||kR = clamp(I)
//	cc = HMAC-SHA256("ed25519 seed", 0x01||seed)
func DeriveMaster(seed []byte) (*ExtendedKey, error) {
	if len(seed) < MinSeedLength || len(seed) > MaxSeedLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d to %d",
			ErrInvalidSeedLength, len(seed), MinSeedLength, MaxSeedLength)
	}

	i := crypto.HMACSHA512(masterKey, seed)
	rounds := 1
	for i[31]&0x20 != 0 {
		next := crypto.HMACSHA512(masterKey, i[:])
		memzero.Zero(i[:])
		i = next
		rounds++
	}

	k := &ExtendedKey{private: true}
	copy(k.secret[:], i[:])
	memzero.Zero(i[:])
	clampSecret(&k.secret)

	cc := crypto.HMACSHA256(masterKey, []byte{0x01}, seed)
	copy(k.chainCode[:], cc[:])
	k.pub = curve.PublicKey(&k.secret)

	log.Debugf("Derived master key %v from %d byte seed in %d round(s)",
		k.Fingerprint(), len(seed), rounds)

	return k, nil
}

// MasterFromEntropy derives an Icarus master key from BIP39 entropy of 16,
// 20, 24, 28 or 32 bytes and an optional passphrase:
//
//	kL||kR||cc = PBKDF2-HMAC-SHA512(passphrase, entropy, 4096, 96)
//
// with kL clamped like DeriveMaster.
func MasterFromEntropy(entropy, passphrase []byte) (*ExtendedKey, error) {
	switch len(entropy) {
	case 16, 20, 24, 28, 32:
	default:
		return nil, fmt.Errorf("%w: entropy is %d bytes", ErrInvalidSeedLength, len(entropy))
	}

	data := crypto.PBKDF2SHA512(passphrase, entropy, icarusIterations, PrivateKeySize)
	defer memzero.Zero(data)

	k := &ExtendedKey{private: true}
	copy(k.secret[:], data[:64])
	clampSecret(&k.secret)
	copy(k.chainCode[:], data[64:])
	k.pub = curve.PublicKey(&k.secret)

	log.Debugf("Derived icarus master key %v", k.Fingerprint())

	return k, nil
}

// MasterFromMnemonic derives a master key from an English BIP39 mnemonic.
func MasterFromMnemonic(mnemonic, passphrase string, scheme MasterScheme) (*ExtendedKey, error) {
	switch scheme {
	case SchemeIcarus:
		entropy, err := bip39.EntropyFromMnemonic(mnemonic)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
		}
		defer memzero.Zero(entropy)
		return MasterFromEntropy(entropy, []byte(passphrase))

	case SchemeLedger:
		seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
		}
		defer memzero.Zero(seed)
		return DeriveMaster(seed)

	default:
		return nil, fmt.Errorf("unknown master scheme %v", scheme)
	}
}
