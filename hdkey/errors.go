package hdkey

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeedLength is returned when a seed or entropy has a length
	// the master scheme does not accept.
	ErrInvalidSeedLength = errors.New("invalid seed length")

	// ErrInvalidIndex is returned when a child index does not fit in 31
	// bits once the hardened flag is taken out.
	ErrInvalidIndex = errors.New("invalid derivation index")

	// ErrInvalidKey is returned for malformed key material, and when an
	// operation needs a private key but got a public-only one.
	ErrInvalidKey = errors.New("invalid extended key")

	// ErrInvalidPath is returned when a textual path cannot be parsed.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrInvalidMnemonic is returned when a BIP39 mnemonic fails to
	// decode or its checksum does not match.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrKeyNotFound is returned by FindChild when the target key is not
	// within the scanned range.
	ErrKeyNotFound = errors.New("key not found in scanned range")
)

// PathError records the path segment at which derivation failed.
type PathError struct {
	// Depth is the zero-based position of the failing segment.
	Depth int

	// Segment is the segment that could not be derived.
	Segment Segment

	Err error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("derive path segment %d (%v): %v", e.Depth, e.Segment, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *PathError) Unwrap() error { return e.Err }
