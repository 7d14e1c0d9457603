// Package hdkey implements hierarchical deterministic key derivation over
// Ed25519 following BIP32-Ed25519 with the "V2" child derivation scheme
// (little-endian index serialisation).
//
// # Overview
//
// An ExtendedKey pairs key material with a 32-byte chain code. Private keys
// hold a 64-byte extended secret kL||kR; public keys hold only the point
// A = [kL]B. Derivation is a pure function of its inputs:
//
//   - DeriveMaster turns a 16..64 byte seed into a master key
//   - MasterFromEntropy and MasterFromMnemonic build Icarus style masters
//     from BIP39 entropy
//   - DeriveChild and ExtendedKey.Child step one level down the tree
//   - DerivePath and ExtendedKey.DerivePath walk a full Path
//   - Sign and Verify produce and check Ed25519 signatures
//
// # Hardened derivation
//
// Indices at or above HardenedKeyStart mix the parent's extended secret into
// the child, so they require a private parent. Soft indices only use the
// parent public key and may be derived from a neutered key; the result
// matches the public half of the private derivation.
//
// # Errors
//
// ErrInvalidSeedLength, ErrInvalidIndex and ErrInvalidKey cover all
// validation failures. Path derivation wraps the first failure in a
// *PathError naming the failing segment. Nothing is retried and no partial
// result is returned.
//
// All functions are safe for concurrent use. The package keeps no state
// besides its logger.
package hdkey
