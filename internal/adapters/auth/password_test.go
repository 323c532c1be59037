package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64)

	hash, err := hasher.Hash(salt, "password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	require.NoError(t, hasher.Compare(hash, salt, "password123"))
	require.Error(t, hasher.Compare(hash, salt, "wrongpass"))
}

func TestBcryptHasher_SaltChangesHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	saltA, err := hasher.GenerateSalt()
	require.NoError(t, err)
	saltB, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	hash, err := hasher.Hash(saltA, "password123")
	require.NoError(t, err)
	require.Error(t, hasher.Compare(hash, saltB, "password123"))
}
