package interfaces

import types "bip32ed25519/internal/domain/types"

// Curve is the set of curve operations the derivation engine relies on.
// Implementations must be stateless.
type Curve interface {
	// PublicKey returns [kL]B for the extended secret.
	PublicKey(secret *types.ExtendedSecret) types.Ed25519Public

	// AddScalarBase returns point + [tweak]B, where tweak is a
	// little-endian integer. It fails if point does not decode.
	AddScalarBase(point types.Ed25519Public, tweak [32]byte) (types.Ed25519Public, error)

	// ValidPoint reports whether point decodes to a curve point.
	ValidPoint(point types.Ed25519Public) bool

	// Sign produces a deterministic Ed25519 signature using the extended
	// secret directly, without hashing a seed first.
	Sign(secret *types.ExtendedSecret, pub types.Ed25519Public, msg []byte) types.Signature

	// Verify checks sig over msg. Malformed inputs report false.
	Verify(pub types.Ed25519Public, msg, sig []byte) bool
}
