package hdkey

import "bip32ed25519/internal/domain"

// Type aliases expose the fixed-size key material types to callers.
type (
	ChainCode      = domain.ChainCode
	ExtendedSecret = domain.ExtendedSecret
	PublicKey      = domain.Ed25519Public
	Signature      = domain.Signature
	KeyHash        = domain.KeyHash
)

const (
	// PrivateKeySize is the serialised size of a private extended key:
	// kL||kR||chain code.
	PrivateKeySize = domain.ExtendedSecretSize + domain.ChainCodeSize

	// PublicKeySize is the serialised size of a public extended key:
	// A||chain code.
	PublicKeySize = domain.PublicKeySize + domain.ChainCodeSize

	// SignatureSize is the size of an Ed25519 signature.
	SignatureSize = domain.SignatureSize
)
