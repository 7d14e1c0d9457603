// Package keystore persists hdkey extended keys on disk, sealed under a
// passphrase.
//
// Each key lives in its own JSON file inside the configured directory. The
// serialised key is encrypted with ChaCha20-Poly1305 under a key stretched
// from the passphrase with scrypt or Argon2id. The public key and its
// fingerprint are kept in clear so List works without a passphrase.
//
// All methods of FileStore are safe for concurrent use.
package keystore
