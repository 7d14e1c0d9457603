package hdkey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVector(t *testing.T) {
	key, err := DerivePath(make([]byte, 32), MustParsePath("m/0'"))
	require.NoError(t, err)

	sig, err := Sign(key, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t,
		"ef31e32093494de6cacf139e6942732dc2aee7cd39b56aeeadf19a2779a46ddf"+
			"d283190911727bb5700946d0581200cdd8f4b4dd7d7870aee4e2bbc4f3d1d809",
		hex.EncodeToString(sig[:]))
	require.True(t, Verify(key, []byte("hello"), sig[:]))
	require.True(t, Verify(key.Neuter(), []byte("hello"), sig[:]))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	master, err := DeriveMaster(make([]byte, 64))
	require.NoError(t, err)

	paths := []string{"m", "m/0", "m/0'", "m/1852'/1815'/0'/0/0", "m/44'/0/2147483647"}
	msgs := [][]byte{nil, {}, []byte("x"), make([]byte, 1024)}

	for _, p := range paths {
		key, err := master.DerivePath(MustParsePath(p))
		require.NoError(t, err)

		for _, msg := range msgs {
			sig, err := Sign(key, msg)
			require.NoError(t, err)
			require.True(t, Verify(key.Neuter(), msg, sig[:]), p)
			require.True(t, VerifyPublicKey(key.PublicKey(), msg, sig[:]), p)

			again, err := Sign(key, msg)
			require.NoError(t, err)
			require.Equal(t, sig, again)
		}
	}
}

func TestVerifyBitFlips(t *testing.T) {
	key, err := DerivePath(make([]byte, 32), MustParsePath("m/7'/3"))
	require.NoError(t, err)
	msg := []byte("the quick brown fox")

	sig, err := Sign(key, msg)
	require.NoError(t, err)

	for bit := 0; bit < SignatureSize*8; bit++ {
		bad := sig
		bad[bit/8] ^= 1 << (bit % 8)
		require.False(t, Verify(key, msg, bad[:]), "signature bit %d", bit)
	}
	for bit := 0; bit < len(msg)*8; bit++ {
		bad := append([]byte(nil), msg...)
		bad[bit/8] ^= 1 << (bit % 8)
		require.False(t, Verify(key, bad, sig[:]), "message bit %d", bit)
	}
}

func TestVerifyMalformed(t *testing.T) {
	key, err := DeriveMaster(make([]byte, 32))
	require.NoError(t, err)
	msg := []byte("m")
	sig, err := Sign(key, msg)
	require.NoError(t, err)

	require.False(t, Verify(key, msg, nil))
	require.False(t, Verify(key, msg, sig[:32]))
	require.False(t, Verify(key, msg, append(sig[:], 0)))
	require.False(t, Verify(nil, msg, sig[:]))

	other, err := DeriveMaster(make([]byte, 33))
	require.NoError(t, err)
	require.False(t, Verify(other, msg, sig[:]))
}

func TestSignPublicOnlyFails(t *testing.T) {
	key, err := DeriveMaster(make([]byte, 32))
	require.NoError(t, err)

	_, err = Sign(key.Neuter(), []byte("m"))
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = Sign(nil, []byte("m"))
	require.ErrorIs(t, err, ErrInvalidKey)

	key.Wipe()
	_, err = Sign(key, []byte("m"))
	require.ErrorIs(t, err, ErrInvalidKey)
}
