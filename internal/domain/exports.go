package domain

import (
	interfaces "bip32ed25519/internal/domain/interfaces"
	types "bip32ed25519/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ChainCode      = types.ChainCode
	ExtendedSecret = types.ExtendedSecret
	Ed25519Public  = types.Ed25519Public
	Signature      = types.Signature
	KeyHash        = types.KeyHash
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Curve = interfaces.Curve
)

// Constructors that copy checked-length slices into fixed-size types.
var (
	MustChainCode     = types.MustChainCode
	MustEd25519Public = types.MustEd25519Public
)

// Sizes of the fixed-size types, in bytes.
const (
	ChainCodeSize      = types.ChainCodeSize
	ExtendedSecretSize = types.ExtendedSecretSize
	PublicKeySize      = types.PublicKeySize
	SignatureSize      = types.SignatureSize
	KeyHashSize        = types.KeyHashSize
)
