package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestHashPasswordUsesBcrypt(t *testing.T) {
	hash, err := HashPassword("same password")
	require.NoError(t, err)
	other, err := HashPassword("same password")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so equal inputs never hash equal.
	assert.NotEqual(t, hash, other)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, VerifyPassword("same password", hash))
	assert.True(t, VerifyPassword("same password", other))
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
}
