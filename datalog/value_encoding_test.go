package datalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTriple(t *testing.T) {
	when := time.Date(1979, 5, 25, 0, 0, 0, 500, time.UTC)
	triples := []Triple{
		NewTriple(1, "movie/title", "Alien"),
		NewTriple(int64(-7), NewKeyword(":movie/year"), 1979),
		NewTriple("e", "ratio", 0.25),
		NewTriple("e", "flag", true),
		NewTriple("e", "released", when),
		NewTriple("e", "blob", []byte{0, 1, 2}),
		NewTriple("e", "missing", nil),
		NewTriple("e", "big", uint64(1<<63+1)),
	}

	for _, triple := range triples {
		data, err := EncodeTriple(triple)
		require.NoError(t, err)

		decoded, err := DecodeTriple(data)
		require.NoError(t, err)
		assert.True(t, triple.Equal(decoded), "round trip changed %v into %v", triple, decoded)
	}
}

func TestEncodeLargeUnsigned(t *testing.T) {
	data, err := EncodeTriple(NewTriple(uint64(1<<63+1), "a", uint64(1<<63)))
	require.NoError(t, err)

	decoded, err := DecodeTriple(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63+1), decoded.E)
	assert.Equal(t, uint64(1<<63), decoded.V)
}

func TestDecodeTripleErrors(t *testing.T) {
	data, err := EncodeTriple(NewTriple(1, "a", "b"))
	require.NoError(t, err)

	_, err = DecodeTriple(data[:len(data)-1])
	assert.Error(t, err, "truncated payload")

	_, err = DecodeTriple(append(data, 0))
	assert.Error(t, err, "trailing bytes")

	_, err = ValueFromBytes(ValueType(99), nil)
	assert.Error(t, err)
}

func TestEncodeUnsupportedType(t *testing.T) {
	_, err := EncodeTriple(NewTriple(1, "a", struct{}{}))
	assert.Error(t, err)
}
