package crypto

import (
	"crypto/ed25519"
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"

	"bip32ed25519/internal/domain"
	"bip32ed25519/internal/util/memzero"
)

// ErrInvalidPoint is returned when bytes do not decode to a curve point.
var ErrInvalidPoint = errors.New("invalid Edwards25519 point")

// Edwards25519 is the curve backend used by the derivation engine.
var Edwards25519 domain.Curve = edwardsCurve{}

type edwardsCurve struct{}

// PublicKey returns [kL]B.
func (edwardsCurve) PublicKey(secret *domain.ExtendedSecret) domain.Ed25519Public {
	s := scalarFromLE(secret.Left())
	var pub domain.Ed25519Public
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return pub
}

// AddScalarBase returns point + [tweak]B.
func (edwardsCurve) AddScalarBase(point domain.Ed25519Public, tweak [32]byte) (domain.Ed25519Public, error) {
	var out domain.Ed25519Public
	p, err := new(edwards25519.Point).SetBytes(point[:])
	if err != nil {
		return out, ErrInvalidPoint
	}
	t := new(edwards25519.Point).ScalarBaseMult(scalarFromLE(tweak[:]))
	copy(out[:], new(edwards25519.Point).Add(p, t).Bytes())
	return out, nil
}

// ValidPoint reports whether point decodes.
func (edwardsCurve) ValidPoint(point domain.Ed25519Public) bool {
	_, err := new(edwards25519.Point).SetBytes(point[:])
	return err == nil
}

// Sign signs msg with the extended secret. It follows RFC 8032 except that
// kL and kR are taken as given instead of being expanded from a seed:
//
//	r = H(kR || M), R = [r]B, S = r + H(R || A || M) * kL  (mod l)
func (edwardsCurve) Sign(secret *domain.ExtendedSecret, pub domain.Ed25519Public, msg []byte) domain.Signature {
	a := scalarFromLE(secret.Left())

	h := sha512.New()
	h.Write(secret.Right())
	h.Write(msg)
	var digest [sha512.Size]byte
	r := mustUniform(h.Sum(digest[:0]))
	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(R)
	h.Write(pub[:])
	h.Write(msg)
	k := mustUniform(h.Sum(digest[:0]))
	memzero.Zero(digest[:])

	S := edwards25519.NewScalar().MultiplyAdd(k, a, r)

	var sig domain.Signature
	copy(sig[:32], R)
	copy(sig[32:], S.Bytes())
	return sig
}

// Verify checks sig over msg with pub.
func (edwardsCurve) Verify(pub domain.Ed25519Public, msg, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}

// scalarFromLE reduces a little-endian integer of up to 32 bytes mod l.
func scalarFromLE(b []byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], b)
	s := mustUniform(wide[:])
	memzero.Zero(wide[:])
	return s
}

func mustUniform(b []byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(b)
	if err != nil {
		// Only reachable with an input that is not 64 bytes long.
		panic(err)
	}
	return s
}
