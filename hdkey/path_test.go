package hdkey

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
		str  string
	}{
		{in: "m", want: Path{}, str: "m"},
		{in: "m/0'", want: Path{{Index: 0, Hardened: true}}, str: "m/0'"},
		{
			in: "m/1852'/1815h/0H/2/7",
			want: Path{
				{Index: 1852, Hardened: true},
				{Index: 1815, Hardened: true},
				{Index: 0, Hardened: true},
				{Index: 2},
				{Index: 7},
			},
			str: "m/1852'/1815'/0'/2/7",
		},
		{
			in:   " m/2147483647 ",
			want: Path{{Index: 2147483647}},
			str:  "m/2147483647",
		},
	}

	for _, tc := range tests {
		got, err := ParsePath(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
		require.Equal(t, tc.str, got.String())
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"", "0/1", "M/0", "m/", "m//1", "m/x", "m/1'/'", "m/-1", "m/+1", "m/1''"} {
		_, err := ParsePath(in)
		require.ErrorIs(t, err, ErrInvalidPath, "%q", in)
	}

	indexErrs := []struct {
		in    string
		depth int
	}{
		{"m/2147483648", 0},
		{"m/0/4294967295'", 1},
		{"m/99999999999", 0},
		{"m/1/2/99999999999h", 2},
	}
	for _, tc := range indexErrs {
		_, err := ParsePath(tc.in)
		require.ErrorIs(t, err, ErrInvalidIndex, "%q", tc.in)

		var pathErr *PathError
		require.True(t, errors.As(err, &pathErr), "%q", tc.in)
		require.Equal(t, tc.depth, pathErr.Depth, "%q", tc.in)
	}

	_, err := ParsePath("m/0/2147483648'")
	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	require.Equal(t, 1, pathErr.Depth)
	require.Equal(t, uint32(2147483648), pathErr.Segment.Index)
}

func TestDerivePathZeroSeed(t *testing.T) {
	seed := make([]byte, 32)
	path := MustParsePath("m/0'")

	e, err := DerivePath(seed, path)
	require.NoError(t, err)
	require.Equal(t,
		"6880262f55ab9d7b9f6c65cdd78b57287dd73382950cb92d3b17d03a02188d53"+
			"ea349a9fc425d6c5335b64b8eb94a16de4a85d6cef54f9dae7ede2807d94a5e7",
		hex.EncodeToString(e.secret[:]))
	require.Equal(t,
		"d04e1a008e8dee169e40c4677edb09f8a1a532e4ec7cb3effaaa9f6d810a3077",
		hex.EncodeToString(e.chainCode[:]))
	require.Equal(t,
		"9a6df7c370491e6555d349a9a912658988187e4f3ae80f7626af363dcf16a586",
		hex.EncodeToString(e.pub[:]))

	for i := 0; i < 3; i++ {
		again, err := DerivePath(seed, path)
		require.NoError(t, err)
		require.Equal(t, e.Bytes(), again.Bytes())
	}
}

func TestDerivePathMatchesSteps(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a}, 64)
	path := MustParsePath("m/1852'/1815'/0'/0/4")

	got, err := DerivePath(seed, path)
	require.NoError(t, err)
	require.Equal(t, len(path), got.Depth())
	require.Equal(t, uint32(4), got.ChildIndex())

	cur, err := DeriveMaster(seed)
	require.NoError(t, err)
	for _, seg := range path {
		cur, err = DeriveChild(cur, seg.Index, seg.Hardened)
		require.NoError(t, err)
	}
	require.Equal(t, cur.Bytes(), got.Bytes())
}

func TestDerivePathEmptyReturnsCopy(t *testing.T) {
	m, err := DeriveMaster(make([]byte, 32))
	require.NoError(t, err)

	same, err := m.DerivePath(nil)
	require.NoError(t, err)
	require.Equal(t, m.Bytes(), same.Bytes())

	same.Wipe()
	require.True(t, m.IsPrivate())

	viaSeed, err := DerivePath(make([]byte, 32), Path{})
	require.NoError(t, err)
	require.Equal(t, m.Bytes(), viaSeed.Bytes())
}

func TestDerivePathSurfacesFailingSegment(t *testing.T) {
	seed := make([]byte, 32)
	path := Path{
		{Index: 44, Hardened: true},
		{Index: 1},
		{Index: HardenedKeyStart + 5, Hardened: true},
		{Index: 0},
	}

	_, err := DerivePath(seed, path)
	require.ErrorIs(t, err, ErrInvalidIndex)

	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	require.Equal(t, 2, pathErr.Depth)
	require.Equal(t, path[2], pathErr.Segment)
	require.Contains(t, pathErr.Error(), "segment 2")
}

func TestDerivePathPublicParent(t *testing.T) {
	m, err := DeriveMaster(make([]byte, 32))
	require.NoError(t, err)
	account, err := m.DerivePath(MustParsePath("m/1852'/1815'/0'"))
	require.NoError(t, err)

	soft := MustParsePath("m/0/9")
	priv, err := account.DerivePath(soft)
	require.NoError(t, err)
	pub, err := account.Neuter().DerivePath(soft)
	require.NoError(t, err)
	require.Equal(t, priv.PublicKey(), pub.PublicKey())

	_, err = account.Neuter().DerivePath(MustParsePath("m/0/1'"))
	require.ErrorIs(t, err, ErrInvalidKey)
	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	require.Equal(t, 1, pathErr.Depth)

	_, err = DerivePath(make([]byte, 8), soft)
	require.ErrorIs(t, err, ErrInvalidSeedLength)
}

func TestMustParsePathPanics(t *testing.T) {
	require.Panics(t, func() { MustParsePath("x") })
}
