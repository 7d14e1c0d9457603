package domain_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"bip32ed25519/internal/domain"
)

func TestMustConstructors(t *testing.T) {
	b := bytes.Repeat([]byte{0x5a}, 32)

	cc := domain.MustChainCode(b)
	require.Equal(t, b, cc.Slice())
	pub := domain.MustEd25519Public(b)
	require.Equal(t, b, pub.Slice())

	require.Panics(t, func() { domain.MustChainCode(b[:31]) })
	require.Panics(t, func() { domain.MustEd25519Public(append(b, 0)) })
}
