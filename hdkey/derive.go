package hdkey

import (
	"encoding/binary"
	"fmt"

	"bip32ed25519/internal/crypto"
	"bip32ed25519/internal/util/memzero"
)

// HMAC domain separation tags for child derivation.
const (
	tagHardenedZ byte = 0x00
	tagHardenedC byte = 0x01
	tagSoftZ     byte = 0x02
	tagSoftC     byte = 0x03
)

// DeriveChild derives the child of parent at index. index must be below
// 2^31; hardened selects the hardened variant of that index. Hardened
// derivation needs a private parent.
func DeriveChild(parent *ExtendedKey, index uint32, hardened bool) (*ExtendedKey, error) {
	if index >= HardenedKeyStart {
		return nil, fmt.Errorf("%w: %d does not fit in 31 bits", ErrInvalidIndex, index)
	}
	if hardened {
		index += HardenedKeyStart
	}
	return parent.Child(index)
}

// Child derives the child at the raw index i. Indices at or above
// HardenedKeyStart are hardened.
//
// With Z = HMAC-SHA512(cc, tag||data||le32(i)):
//
//	kL' = kL + 8*trunc28(ZL)
//	kR' = kR + ZR  (mod 2^256)
//	A'  = A + [8*trunc28(ZL)]B
//
// and the child chain code is the right half of the second HMAC.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil parent", ErrInvalidKey)
	}
	hardened := i >= HardenedKeyStart
	if hardened && !k.private {
		return nil, fmt.Errorf("%w: hardened child %d needs a private parent",
			ErrInvalidKey, i-HardenedKeyStart)
	}

	var seri [4]byte
	binary.LittleEndian.PutUint32(seri[:], i)

	var z, c [64]byte
	if hardened {
		z = crypto.HMACSHA512(k.chainCode[:], []byte{tagHardenedZ}, k.secret[:], seri[:])
		c = crypto.HMACSHA512(k.chainCode[:], []byte{tagHardenedC}, k.secret[:], seri[:])
	} else {
		z = crypto.HMACSHA512(k.chainCode[:], []byte{tagSoftZ}, k.pub[:], seri[:])
		c = crypto.HMACSHA512(k.chainCode[:], []byte{tagSoftC}, k.pub[:], seri[:])
	}
	defer memzero.Zero(z[:])

	child := &ExtendedKey{
		depth:   k.depth + 1,
		index:   i,
		private: k.private,
	}
	copy(child.chainCode[:], c[32:])

	if k.private {
		left := add28Mul8(k.secret[:32], z[:32])
		right := add256(k.secret[32:], z[32:])
		copy(child.secret[:32], left[:])
		copy(child.secret[32:], right[:])
		memzero.Zero(left[:])
		memzero.Zero(right[:])
		child.pub = curve.PublicKey(&child.secret)
		return child, nil
	}

	var zero [32]byte
	tweak := add28Mul8(zero[:], z[:32])
	pub, err := curve.AddScalarBase(k.pub, tweak)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	child.pub = pub
	return child, nil
}

// add28Mul8 returns x + 8*y[0:28] as 32-byte little-endian integers, with
// the final carry dropped.
func add28Mul8(x, y []byte) [32]byte {
	var (
		out   [32]byte
		carry uint16
	)
	for i := 0; i < 28; i++ {
		r := uint16(x[i]) + uint16(y[i])<<3 + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	for i := 28; i < 32; i++ {
		r := uint16(x[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

// add256 returns x + y mod 2^256 for 32-byte little-endian integers.
func add256(x, y []byte) [32]byte {
	var (
		out   [32]byte
		carry uint16
	)
	for i := 0; i < 32; i++ {
		r := uint16(x[i]) + uint16(y[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}
