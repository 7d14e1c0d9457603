package hdkey

import "fmt"

// Sign signs msg with the private key. Signatures are deterministic Ed25519
// signatures computed directly from the extended secret.
func Sign(key *ExtendedKey, msg []byte) (Signature, error) {
	if key == nil || !key.private {
		return Signature{}, fmt.Errorf("%w: signing needs a private key", ErrInvalidKey)
	}
	return curve.Sign(&key.secret, key.pub, msg), nil
}

// Verify reports whether sig is a valid signature of msg by key. Private
// keys verify against their public half. Malformed input returns false.
func Verify(key *ExtendedKey, msg, sig []byte) bool {
	if key == nil {
		return false
	}
	return curve.Verify(key.pub, msg, sig)
}

// VerifyPublicKey is Verify for a bare public key.
func VerifyPublicKey(pub PublicKey, msg, sig []byte) bool {
	return curve.Verify(pub, msg, sig)
}
