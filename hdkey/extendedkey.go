package hdkey

import (
	"crypto/sha512"
	"fmt"

	"bip32ed25519/internal/crypto"
	"bip32ed25519/internal/domain"
	"bip32ed25519/internal/util/memzero"
)

// HardenedKeyStart is the first hardened child index.
const HardenedKeyStart uint32 = 0x80000000

// curve is the backend every key operation goes through.
var curve domain.Curve = crypto.Edwards25519

// ExtendedKey is a private or public-only key together with its chain code.
//
// Private keys carry the extended secret and a cached public key. Public-only
// keys carry the point alone and can only derive soft children.
type ExtendedKey struct {
	secret    domain.ExtendedSecret
	pub       domain.Ed25519Public
	chainCode domain.ChainCode
	depth     int
	index     uint32
	private   bool
}

// NewPrivate builds a private extended key from a 64-byte kL||kR secret and
// a 32-byte chain code. kL must have its three lowest bits clear and its
// three highest bits set to 010.
func NewPrivate(secret, chainCode []byte) (*ExtendedKey, error) {
	if len(secret) != domain.ExtendedSecretSize {
		return nil, fmt.Errorf("%w: secret is %d bytes, want %d",
			ErrInvalidKey, len(secret), domain.ExtendedSecretSize)
	}
	if len(chainCode) != domain.ChainCodeSize {
		return nil, fmt.Errorf("%w: chain code is %d bytes, want %d",
			ErrInvalidKey, len(chainCode), domain.ChainCodeSize)
	}
	if secret[0]&0x07 != 0 {
		return nil, fmt.Errorf("%w: lowest bits of kL are set", ErrInvalidKey)
	}
	if secret[31]&0xe0 != 0x40 {
		return nil, fmt.Errorf("%w: highest bits of kL are invalid", ErrInvalidKey)
	}

	k := &ExtendedKey{private: true}
	copy(k.secret[:], secret)
	copy(k.chainCode[:], chainCode)
	k.pub = curve.PublicKey(&k.secret)
	return k, nil
}

// NewPublic builds a public-only extended key from a compressed point and a
// chain code.
func NewPublic(pub, chainCode []byte) (*ExtendedKey, error) {
	if len(pub) != domain.PublicKeySize {
		return nil, fmt.Errorf("%w: public key is %d bytes, want %d",
			ErrInvalidKey, len(pub), domain.PublicKeySize)
	}
	if len(chainCode) != domain.ChainCodeSize {
		return nil, fmt.Errorf("%w: chain code is %d bytes, want %d",
			ErrInvalidKey, len(chainCode), domain.ChainCodeSize)
	}
	k := &ExtendedKey{
		pub:       domain.MustEd25519Public(pub),
		chainCode: domain.MustChainCode(chainCode),
	}
	if !curve.ValidPoint(k.pub) {
		return nil, fmt.Errorf("%w: public key is not a curve point", ErrInvalidKey)
	}
	return k, nil
}

// FromNonExtended expands a plain 32-byte Ed25519 secret into a private
// extended key. The secret is hashed with SHA-512 and clamped, forcing the
// third highest bit of kL clear so the result is always a valid root.
func FromNonExtended(key, chainCode []byte) (*ExtendedKey, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: key is %d bytes, want 32", ErrInvalidKey, len(key))
	}
	if len(chainCode) != domain.ChainCodeSize {
		return nil, fmt.Errorf("%w: chain code is %d bytes, want %d",
			ErrInvalidKey, len(chainCode), domain.ChainCodeSize)
	}
	k := &ExtendedKey{private: true}
	k.secret = sha512.Sum512(key)
	clampSecret(&k.secret)
	copy(k.chainCode[:], chainCode)
	k.pub = curve.PublicKey(&k.secret)
	return k, nil
}

// ParseExtendedKey decodes the output of Bytes. 96 bytes decode to a private
// key, 64 bytes to a public-only key.
func ParseExtendedKey(b []byte) (*ExtendedKey, error) {
	switch len(b) {
	case PrivateKeySize:
		return NewPrivate(b[:domain.ExtendedSecretSize], b[domain.ExtendedSecretSize:])
	case PublicKeySize:
		return NewPublic(b[:domain.PublicKeySize], b[domain.PublicKeySize:])
	default:
		return nil, fmt.Errorf("%w: unsupported length %d", ErrInvalidKey, len(b))
	}
}

// clampSecret applies the BIP32-Ed25519 root clamping to kL.
func clampSecret(s *domain.ExtendedSecret) {
	s[0] &= 0xf8
	s[31] &= 0x1f
	s[31] |= 0x40
}

// IsPrivate reports whether the key carries its extended secret.
func (k *ExtendedKey) IsPrivate() bool { return k.private }

// Depth returns the number of derivation steps from the master key.
func (k *ExtendedKey) Depth() int { return k.depth }

// ChildIndex returns the raw index this key was derived at. Masters report 0.
func (k *ExtendedKey) ChildIndex() uint32 { return k.index }

// ChainCode returns the key's chain code.
func (k *ExtendedKey) ChainCode() ChainCode { return k.chainCode }

// PublicKey returns the Ed25519 public key A.
func (k *ExtendedKey) PublicKey() PublicKey { return k.pub }

// Secret returns a copy of the extended secret kL||kR.
func (k *ExtendedKey) Secret() (ExtendedSecret, error) {
	if !k.private {
		return ExtendedSecret{}, fmt.Errorf("%w: key is public-only", ErrInvalidKey)
	}
	return k.secret, nil
}

// Neuter returns the public-only counterpart of k. Public keys are returned
// as a copy.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	return &ExtendedKey{
		pub:       k.pub,
		chainCode: k.chainCode,
		depth:     k.depth,
		index:     k.index,
	}
}

// Bytes serialises the key: kL||kR||cc for private keys, A||cc otherwise.
func (k *ExtendedKey) Bytes() []byte {
	if !k.private {
		out := make([]byte, 0, PublicKeySize)
		out = append(out, k.pub[:]...)
		return append(out, k.chainCode[:]...)
	}
	out := make([]byte, 0, PrivateKeySize)
	out = append(out, k.secret[:]...)
	return append(out, k.chainCode[:]...)
}

// Fingerprint returns a short display identifier of the public key.
func (k *ExtendedKey) Fingerprint() string {
	return crypto.Fingerprint(k.pub[:])
}

// KeyHash returns the Blake2b-224 hash of the public key.
func (k *ExtendedKey) KeyHash() KeyHash {
	return crypto.KeyHash(k.pub)
}

// Wipe zeroes the extended secret. The key is public-only afterwards.
func (k *ExtendedKey) Wipe() {
	memzero.Zero(k.secret[:])
	k.private = false
}

func (k *ExtendedKey) clone() *ExtendedKey {
	c := *k
	return &c
}
