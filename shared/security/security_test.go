package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	ok, err := VerifyPassword("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordEmptyHash(t *testing.T) {
	ok, err := VerifyPassword("anything", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	require.Len(t, code, 6)

	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
	}
}

func TestHashAndVerifyCode(t *testing.T) {
	encoded, err := HashCode("042319")
	require.NoError(t, err)
	assert.NotContains(t, encoded, "042319")

	ok, err := VerifyCode("042319", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyCode("999999", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}
