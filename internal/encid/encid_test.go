package encid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey = DefaultKey
	testIV  = DefaultIV
)

func TestNewCodec_Validation(t *testing.T) {
	_, err := NewCodec("short", testIV)
	assert.Error(t, err)

	_, err = NewCodec(testKey, "short")
	assert.Error(t, err)

	codec, err := NewCodec(testKey, testIV)
	require.NoError(t, err)
	assert.NotNil(t, codec)
}

func TestRoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey, testIV)
	require.NoError(t, err)

	ids := []string{"58368", "1", "1024", "999999999", "EMP-2041"}
	for _, id := range ids {
		encoded, err := codec.Encode(id)
		require.NoError(t, err, id)
		assert.NotEqual(t, id, encoded)

		decoded, err := codec.Decode(encoded)
		require.NoError(t, err, id)
		assert.Equal(t, id, decoded)
	}
}

func TestKnownVector(t *testing.T) {
	codec, err := NewCodec(testKey, testIV)
	require.NoError(t, err)

	// This ciphertext begins with a zero byte, which the base62 number
	// round trip drops; decoding must restore the block alignment.
	encoded, err := codec.Encode("58368")
	require.NoError(t, err)
	assert.Equal(t, "1PsUzS2cQQ7Lmt0i6FClX", encoded)

	decoded, err := codec.Decode("1PsUzS2cQQ7Lmt0i6FClX")
	require.NoError(t, err)
	assert.Equal(t, "58368", decoded)
}

func TestEncode_Deterministic(t *testing.T) {
	codec, err := NewCodec(testKey, testIV)
	require.NoError(t, err)

	a, err := codec.Encode("58368")
	require.NoError(t, err)
	b, err := codec.Encode("58368")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecode_Errors(t *testing.T) {
	codec, err := NewCodec(testKey, testIV)
	require.NoError(t, err)

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"invalid character", "abc$def"},
		{"not ciphertext", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.encoded)
			assert.Error(t, err)
		})
	}

	// A well formed base62 string that does not decrypt to valid
	// padding must be rejected rather than returning garbage.
	other, err := NewCodec("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", testIV)
	require.NoError(t, err)
	encoded, err := codec.Encode("58368")
	require.NoError(t, err)
	_, err = other.Decode(encoded)
	assert.Error(t, err)
}

func TestResolveUserID(t *testing.T) {
	// A numeric ID passes through untouched.
	id, err := ResolveUserID("58368")
	require.NoError(t, err)
	assert.Equal(t, "58368", id)

	// The encrypted link form decodes to the numeric ID.
	id, err = ResolveUserID("1PsUzS2cQQ7Lmt0i6FClX")
	require.NoError(t, err)
	assert.Equal(t, "58368", id)

	_, err = ResolveUserID("")
	assert.Error(t, err)

	_, err = ResolveUserID("not-a-token-$$")
	assert.Error(t, err)
}
