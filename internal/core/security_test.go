// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	valid, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)

	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-hash")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafeNilHash(t *testing.T) {
	// Simulates the unknown-username path: a nil hash still performs a
	// full verification against the dummy hash and always fails.
	valid, rehash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, rehash)
}

func TestVerifyPasswordTimingSafeRealHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	valid, _, err := VerifyPasswordTimingSafe("s3cret", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, _, err = VerifyPasswordTimingSafe("nope", &hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword()
	require.NoError(t, err)

	assert.Len(t, password, generatedPasswordLength)
	assert.True(t, strings.ContainsAny(password, passwordLower))
	assert.True(t, strings.ContainsAny(password, passwordUpper))
	assert.True(t, strings.ContainsAny(password, passwordDigits))
	assert.True(t, strings.ContainsAny(password, passwordSymbols))
}

func TestGeneratePasswordUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 20 {
		password, err := GeneratePassword()
		require.NoError(t, err)
		assert.False(t, seen[password])
		seen[password] = true
	}
}
