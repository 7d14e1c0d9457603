// Package crypto exposes the primitives used by the derivation engine.
//
// Contents
//
//   - An Edwards25519 curve backend (Edwards25519) implementing
//     domain.Curve: scalar base multiplication, point tweaking, and
//     Ed25519 signing/verification over extended secrets
//   - HMAC-SHA512/HMAC-SHA256 helpers over multiple input parts
//   - PBKDF2-HMAC-SHA512 for entropy based master keys
//   - Short public-key fingerprints and Blake2b-224 key hashes
//
// # Notes
//
// Scalars are reduced modulo the group order before use, so an extended
// secret whose kL is not a canonical scalar (every derived child) still
// yields the same point as the raw integer would. Callers should wipe
// returned secrets with memzero.Zero when practical.
package crypto
