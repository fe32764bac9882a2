package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotContains(t, hash, "correct horse")

		assert.NoError(t, CheckPassword("correct horse battery staple", hash))
		assert.ErrorIs(t, CheckPassword("wrong password", hash), ErrInvalidPassword)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", MinPasswordLength-1))
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects over-long passwords", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		h1, err := HashPassword("same password here")
		require.NoError(t, err)
		h2, err := HashPassword("same password here")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestGenerateRecoveryToken(t *testing.T) {
	tok, err := GenerateRecoveryToken()
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	other, err := GenerateRecoveryToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
