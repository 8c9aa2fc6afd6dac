package cmpmap_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/graph-guard/cmpmap/pkg/cmpmap"
	"github.com/stretchr/testify/require"
)

func TestCompareStrings(t *testing.T) {
	for _, td := range []struct {
		a, b   string
		expect int
	}{
		{"", "", 0},
		{"lu", "lu", 0},
		{"lu", "Lu", 1},
		{"Lu", "lu", -1},
		{"a", "ab", -1},
		{"ab", "a", 1},
	} {
		t.Run(td.a+"_"+td.b, func(t *testing.T) {
			require.Equal(t, td.expect, cmpmap.CompareStrings(td.a, td.b))
		})
	}
}

func TestCompareStringsFold(t *testing.T) {
	for _, td := range []struct {
		a, b   string
		expect int
	}{
		{"", "", 0},
		{"lu", "Lu", 0},
		{"LU", "lu", 0},
		{"Lu Wang", "lU wANG", 0},
		{"ÄÖÜ", "äöü", 0},
		{"straße", "STRAßE", 0},
		{"a", "B", -1},
		{"B", "a", 1},
		{"a", "AB", -1},
		{"Ab", "a", 1},
		{"lu", "", 1},
		{"", "lu", -1},
		{"\xff", "\xfe", 1},
		{"\xfe", "\xff", -1},
		{"\xff", "\xff", 0},
		{"\xff", "\uFFFD", 1},
		{"\uFFFD", "\xff", -1},
		{"\uFFFD", "\uFFFD", 0},
		{"\xc3", "\u00e9", -1},
		{"A\xff", "a\xff", 0},
	} {
		t.Run(td.a+"_"+td.b, func(t *testing.T) {
			require.Equal(t, td.expect, cmpmap.CompareStringsFold(td.a, td.b))
		})
	}
}

func TestCompareStringsFoldNoAlloc(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		GI = cmpmap.CompareStringsFold("Hello, Wörld!", "hELLO, wÖRLD!")
	})
	require.Zero(t, allocs)
}

func TestCompareBytes(t *testing.T) {
	require.Equal(t, 0, cmpmap.CompareBytes([]byte("abc"), []byte("abc")))
	require.Equal(t, 0, cmpmap.CompareBytes(nil, []byte{}))
	require.NotEqual(t, 0, cmpmap.CompareBytes([]byte("abc"), []byte("abd")))
}

func TestCompareInts(t *testing.T) {
	require.Equal(t, 0, cmpmap.CompareInts(42, 42))
	require.Equal(t, -1, cmpmap.CompareInts(42, -42))
	require.Equal(t, 0, cmpmap.CompareInts[int8](math.MinInt8, math.MinInt8))
	require.Equal(t, -1, cmpmap.CompareInts[int64](math.MaxInt64, math.MinInt64))
}

func TestCompareUints(t *testing.T) {
	require.Equal(t, 0, cmpmap.CompareUints[uint](7, 7))
	require.Equal(t, -1, cmpmap.CompareUints[uint](7, 8))
	require.Equal(t, 0, cmpmap.CompareUints[uint64](math.MaxUint64, math.MaxUint64))
}

func TestCompareFloats(t *testing.T) {
	require.Equal(t, 0, cmpmap.CompareFloat32(1.5, 1.5))
	require.Equal(t, -1, cmpmap.CompareFloat32(1.5, 1.25))
	require.Equal(t, 0, cmpmap.CompareFloat64(0.1, 0.1))
	require.Equal(t, -1, cmpmap.CompareFloat64(0.1, 0.2))
	require.Equal(t, 0, cmpmap.CompareFloat64(0, math.Copysign(0, -1)))
	require.Equal(t, -1, cmpmap.CompareFloat64(math.NaN(), math.NaN()))
}

func TestComparePointers(t *testing.T) {
	a, b := new(int), new(int)
	require.Equal(t, 0, cmpmap.ComparePointers(a, a))
	require.Equal(t, -1, cmpmap.ComparePointers(a, b))
	require.Equal(t, 0, cmpmap.ComparePointers[int](nil, nil))
}

func TestCompareComparable(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	require.Equal(t, 0, cmpmap.CompareComparable(a, a))
	require.Equal(t, -1, cmpmap.CompareComparable(a, b))
}

func TestCaseInsensitiveKeys(t *testing.T) {
	m, err := cmpmap.New[string, string](2, cmpmap.CompareStringsFold)
	require.NoError(t, err)
	require.NoError(t, m.Set("lu", "Lu Wang"))
	require.NoError(t, m.Set("Lu", "Lucy"))
	require.Equal(t, 1, m.Len())
	HasVal(t, m, "LU", "Lucy")
	HasVal(t, m, "lu", "Lucy")
}

func TestCaseInsensitiveKeysInvalidUTF8(t *testing.T) {
	m, err := cmpmap.New[string, string](2, cmpmap.CompareStringsFold)
	require.NoError(t, err)
	require.NoError(t, m.Set("a\xff", "first"))
	require.NoError(t, m.Set("a\xfe", "second"))
	require.NoError(t, m.Set("a\uFFFD", "third"))
	require.NoError(t, m.Set("A\xff", "fourth"))
	require.Equal(t, 3, m.Len())
	HasVal(t, m, "a\xff", "fourth")
	HasVal(t, m, "a\xfe", "second")
	HasVal(t, m, "A\uFFFD", "third")
}

func TestCaseSensitiveKeys(t *testing.T) {
	m, err := cmpmap.New[string, string](2, cmpmap.CompareStrings)
	require.NoError(t, err)
	require.NoError(t, m.Set("lu", "Lu Wang"))
	require.NoError(t, m.Set("Lu", "Lucy"))
	require.Equal(t, 2, m.Len())
	HasVal(t, m, "lu", "Lu Wang")
	HasVal(t, m, "Lu", "Lucy")

	v, ok, err := m.Get("LU")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, v)
}

func TestPointerKeys(t *testing.T) {
	type payload struct{ name string }
	a, b := &payload{"same"}, &payload{"same"}

	m, err := cmpmap.New[*payload, int](0, cmpmap.ComparePointers[payload])
	require.NoError(t, err)
	require.NoError(t, m.Set(a, 1))
	require.NoError(t, m.Set(b, 2))
	require.Equal(t, 2, m.Len())
	HasVal(t, m, a, 1)
	HasVal(t, m, b, 2)
}

func TestUUIDKeys(t *testing.T) {
	m, err := cmpmap.New[uuid.UUID, string](
		0, cmpmap.CompareComparable[uuid.UUID],
	)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 32)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, m.Set(ids[i], ids[i].String()))
	}
	require.Equal(t, len(ids), m.Len())
	for _, id := range ids {
		HasVal(t, m, id, id.String())
	}
}

func TestFloatKeys(t *testing.T) {
	m, err := cmpmap.New[float64, string](0, cmpmap.CompareFloat64)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, "zero"))
	require.NoError(t, m.Set(math.Copysign(0, -1), "negative zero"))
	require.Equal(t, 1, m.Len())
	HasVal(t, m, 0.0, "negative zero")

	// NaN keys can be inserted but never found.
	require.NoError(t, m.Set(math.NaN(), "nan"))
	require.NoError(t, m.Set(math.NaN(), "nan"))
	require.Equal(t, 3, m.Len())
	_, ok, err := m.Get(math.NaN())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestByteSliceKeys(t *testing.T) {
	m, err := cmpmap.New[[]byte, int](0, cmpmap.CompareBytes)
	require.NoError(t, err)
	require.NoError(t, m.Set([]byte("key"), 1))
	require.NoError(t, m.Set([]byte("key"), 2))
	require.Equal(t, 1, m.Len())
	HasVal(t, m, []byte("key"), 2)
}
