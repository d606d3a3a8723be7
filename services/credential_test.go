package services

import (
	"Storefront/apperr"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialService_HashVerify(t *testing.T) {
	t.Parallel()
	creds := NewCredentialService(bcrypt.MinCost)

	first, err := creds.Hash("pw1")
	require.NoError(t, err)
	second, err := creds.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", first)
	assert.NotEqual(t, first, second)
	assert.True(t, creds.Verify("pw1", first))
	assert.True(t, creds.Verify("pw1", second))
	assert.False(t, creds.Verify("pw2", first))
	assert.False(t, creds.Verify("pw1", "not-a-hash"))
}

func TestCredentialService_RotateIfProvided(t *testing.T) {
	t.Parallel()
	creds := NewCredentialService(bcrypt.MinCost)
	existing, err := creds.Hash("pw1")
	require.NoError(t, err)

	t.Run("empty keeps hash", func(t *testing.T) {
		got, err := creds.RotateIfProvided(existing, "")
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("same password keeps hash", func(t *testing.T) {
		got, err := creds.RotateIfProvided(existing, "pw1")
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("new password rotates", func(t *testing.T) {
		got, err := creds.RotateIfProvided(existing, "pw2")
		require.NoError(t, err)
		assert.NotEqual(t, existing, got)
		assert.True(t, creds.Verify("pw2", got))
		assert.False(t, creds.Verify("pw1", got))
	})
}

func TestNewCredentialService_DefaultCost(t *testing.T) {
	t.Parallel()
	creds := NewCredentialService(0)

	hash, err := creds.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCredentialService_PasswordTooLong(t *testing.T) {
	t.Parallel()
	creds := NewCredentialService(bcrypt.MinCost)

	//40個字元但佔80位元組
	long := strings.Repeat("é", 40)
	_, err := creds.Hash(long)
	assert.Equal(t, apperr.KindInvalidPayload, apperr.KindOf(err))

	_, err = creds.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)

	existing, err := creds.Hash("pw1")
	require.NoError(t, err)
	_, err = creds.RotateIfProvided(existing, long)
	assert.Equal(t, apperr.KindInvalidPayload, apperr.KindOf(err))
}
