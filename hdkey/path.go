package hdkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a derivation path. Index must be below 2^31; the
// hardened flag is carried separately.
type Segment struct {
	Index    uint32
	Hardened bool
}

// String renders the segment as "44'" or "0".
func (s Segment) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// Path is an ordered list of segments below the master key.
type Path []Segment

// String renders the path as "m/1852'/1815'/0'/0/0".
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, s := range p {
		sb.WriteByte('/')
		sb.WriteString(s.String())
	}
	return sb.String()
}

// HardenedIndex returns the raw index of hardened child i.
func HardenedIndex(i uint32) uint32 { return i + HardenedKeyStart }

// ParsePath parses paths of the form "m/44'/1815'/0'/0/3". A trailing ',
// h or H marks a hardened segment. "m" alone is the empty path.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for depth, part := range parts[1:] {
		seg := Segment{}
		if n := len(part); n > 0 {
			switch part[n-1] {
			case '\'', 'h', 'H':
				seg.Hardened = true
				part = part[:n-1]
			}
		}
		if part == "" || part[0] == '+' || part[0] == '-' {
			return nil, fmt.Errorf("%w: segment %d of %q is empty or signed",
				ErrInvalidPath, depth, s)
		}

		n, err := strconv.ParseUint(part, 10, 32)
		switch {
		case errors.Is(err, strconv.ErrRange):
			return nil, &PathError{Depth: depth, Segment: seg, Err: ErrInvalidIndex}
		case err != nil:
			return nil, fmt.Errorf("%w: segment %d of %q is not a number",
				ErrInvalidPath, depth, s)
		}
		seg.Index = uint32(n)
		if seg.Index >= HardenedKeyStart {
			return nil, &PathError{Depth: depth, Segment: seg, Err: ErrInvalidIndex}
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustParsePath is like ParsePath but panics on error. It is meant for
// constant paths.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// DerivePath derives the key at path below the master key of seed.
func DerivePath(seed []byte, path Path) (*ExtendedKey, error) {
	master, err := DeriveMaster(seed)
	if err != nil {
		return nil, err
	}
	defer master.Wipe()

	return master.DerivePath(path)
}

// DerivePath derives the key at path below k. It stops at the first segment
// that fails and returns a *PathError for it. Intermediate secrets are wiped;
// k itself is left untouched and an empty path yields a copy of k.
func (k *ExtendedKey) DerivePath(path Path) (*ExtendedKey, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKey)
	}

	cur := k
	for depth, seg := range path {
		next, err := DeriveChild(cur, seg.Index, seg.Hardened)
		if cur != k {
			cur.Wipe()
		}
		if err != nil {
			return nil, &PathError{Depth: depth, Segment: seg, Err: err}
		}
		cur = next
	}
	if cur == k {
		return k.clone(), nil
	}

	log.Tracef("Derived %v at %v", cur.Fingerprint(), path)

	return cur, nil
}
