package types

import "fmt"

const (
	ChainCodeSize      = 32
	ExtendedSecretSize = 64
	PublicKeySize      = 32
	SignatureSize      = 64
	KeyHashSize        = 28
)

// ChainCode is the auxiliary 32 bytes carried alongside an extended key.
type ChainCode [ChainCodeSize]byte

// Slice returns the chain code as a []byte.
func (c ChainCode) Slice() []byte { return c[:] }

// ExtendedSecret is an Ed25519 extended secret key kL||kR. kL is the signing
// scalar (little-endian), kR seeds deterministic nonces.
type ExtendedSecret [ExtendedSecretSize]byte

// Slice returns the secret as a []byte.
func (k ExtendedSecret) Slice() []byte { return k[:] }

// Left returns kL.
func (k *ExtendedSecret) Left() []byte { return k[:32] }

// Right returns kR.
func (k *ExtendedSecret) Right() []byte { return k[32:] }

// Ed25519Public is a compressed Edwards25519 point.
type Ed25519Public [PublicKeySize]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Signature is an Ed25519 signature R||S.
type Signature [SignatureSize]byte

// Slice returns the signature as a []byte.
func (s Signature) Slice() []byte { return s[:] }

// KeyHash is a Blake2b-224 digest of a public key.
type KeyHash [KeyHashSize]byte

// Slice returns the hash as a []byte.
func (h KeyHash) Slice() []byte { return h[:] }

// MustChainCode copies b into a ChainCode and panics on a length mismatch.
func MustChainCode(b []byte) ChainCode {
	if len(b) != ChainCodeSize {
		panic(fmt.Errorf("chain code: want %d bytes, got %d", ChainCodeSize, len(b)))
	}
	var out ChainCode
	copy(out[:], b)
	return out
}

// MustEd25519Public copies b into an Ed25519Public and panics on a length
// mismatch.
func MustEd25519Public(b []byte) Ed25519Public {
	if len(b) != PublicKeySize {
		panic(fmt.Errorf("Ed25519 public: want %d bytes, got %d", PublicKeySize, len(b)))
	}
	var out Ed25519Public
	copy(out[:], b)
	return out
}
