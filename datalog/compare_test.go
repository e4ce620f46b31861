package datalog

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValuesEqualNumericKinds(t *testing.T) {
	// Go callers write int literals, the EDN parser produces int64
	assert.True(t, ValuesEqual(1979, int64(1979)))
	assert.True(t, ValuesEqual(int32(7), uint8(7)))
	assert.True(t, ValuesEqual(1979.0, 1979))
	assert.True(t, ValuesEqual(float32(2.5), 2.5))

	assert.False(t, ValuesEqual(1979, 1980))
	assert.False(t, ValuesEqual(1.5, 1))
	assert.False(t, ValuesEqual(math.NaN(), math.NaN()))
}

func TestValuesEqualAcrossTypes(t *testing.T) {
	tests := []struct {
		name  string
		a, b  interface{}
		equal bool
	}{
		{"same string", "Alien", "Alien", true},
		{"different string", "Alien", "Aliens", false},
		{"string vs int", "1", 1, false},
		{"keyword vs keyword", NewKeyword(":movie/title"), NewKeyword(":movie/title"), true},
		{"keyword vs string", NewKeyword(":movie/title"), ":movie/title", false},
		{"keyword pointer", NewKeyword(":a"), func() *Keyword { k := NewKeyword(":a"); return &k }(), true},
		{"bools", true, true, true},
		{"bool vs int", true, 1, false},
		{"nil vs nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"bytes", []byte("abc"), []byte("abc"), true},
		{"bytes vs string", []byte("abc"), "abc", false},
		{"time zones", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, ValuesEqual(tt.a, tt.b))
			assert.Equal(t, tt.equal, ValuesEqual(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestIndexKeyAgreesWithValuesEqual(t *testing.T) {
	values := []interface{}{
		1, int64(1), 1.0, 2, 2.5, "1", "a", NewKeyword("a"), true, false, nil,
		[]byte("a"), []byte("b"),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("X", 3600)),
		struct{ X int }{1},
		[]int{1, 2},
		uint64(1 << 63), uint64(1<<63 + 1), uint64(math.MaxUint64),
		float64(1 << 63), math.Pow(2, 64), uint(math.MaxInt64),
		struct{ X interface{} }{[]int{1}},
		struct{ X interface{} }{1},
		[2]interface{}{1, []int{2}},
	}

	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, ValuesEqual(a, b), IndexKey(a) == IndexKey(b),
				"IndexKey mismatch for %#v and %#v", a, b)
		}
	}
}

func TestLargeUnsignedValues(t *testing.T) {
	big := uint64(1 << 63)

	assert.False(t, ValuesEqual(big, big+1), "values above MaxInt64 keep full precision")
	assert.NotEqual(t, IndexKey(big), IndexKey(big+1))
	assert.True(t, ValuesEqual(big, float64(big)), "an integral float equals the integer it holds")
	assert.True(t, ValuesEqual(uint(math.MaxInt64), int64(math.MaxInt64)))
	assert.False(t, ValuesEqual(uint64(math.MaxUint64), math.Pow(2, 64)))

	assert.Equal(t, -1, CompareValues(big, big+1))
	assert.Equal(t, 1, CompareValues(big, int64(math.MaxInt64)))
	assert.Equal(t, -1, CompareValues(int64(-5), big))
	assert.Equal(t, 1, CompareValues(big, 2.5))
	assert.Equal(t, -1, CompareValues(uint64(math.MaxUint64), math.Pow(2, 64)))
	assert.Equal(t, 1, CompareValues(math.Pow(2, 64), uint64(math.MaxUint64)))
	assert.Equal(t, 0, CompareValues(float64(big), big))
}

func TestIndexKeyUnhashableFields(t *testing.T) {
	type wrapped struct{ X interface{} }

	index := map[interface{}]int{}
	assert.NotPanics(t, func() {
		index[IndexKey(wrapped{X: []int{1}})]++
		index[IndexKey(wrapped{X: []int{1}})]++
		index[IndexKey(wrapped{X: "a"})]++
	})
	assert.Equal(t, 2, index[IndexKey(wrapped{X: []int{1}})])
	assert.True(t, ValuesEqual(wrapped{X: []int{1}}, wrapped{X: []int{1}}))
	assert.False(t, ValuesEqual(wrapped{X: []int{1}}, wrapped{X: []int{2}}))
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, CompareValues(1, 2))
	assert.Equal(t, 0, CompareValues(int64(2), 2.0))
	assert.Equal(t, 1, CompareValues(2.5, 2))
	assert.Equal(t, -1, CompareValues("a", "b"))
	assert.Equal(t, -1, CompareValues(nil, 0), "nil sorts first")
	assert.Equal(t, -1, CompareValues(100, "1"), "numbers sort before strings")
	assert.Equal(t, 1, CompareValues(NewKeyword(":b"), NewKeyword(":a")))
	assert.Equal(t, 0, CompareValues(false, false))
	assert.Equal(t, -1, CompareValues(false, true))
}
