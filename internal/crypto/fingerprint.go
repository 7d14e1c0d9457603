package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"bip32ed25519/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:10])
}

// KeyHash returns the Blake2b-224 digest of a public key.
func KeyHash(pub domain.Ed25519Public) domain.KeyHash {
	h, err := blake2b.New(domain.KeyHashSize, nil)
	if err != nil {
		// Size is a valid constant and no key is used.
		panic(err)
	}
	h.Write(pub[:])
	var out domain.KeyHash
	copy(out[:], h.Sum(nil))
	return out
}
