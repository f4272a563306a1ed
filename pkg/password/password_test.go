package password_test

import (
	"strings"
	"testing"

	"storefront/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)

	for _, plain := range []string{"password1", "correct horse battery", "12345678", "pässwörd-ünïcode"} {
		hash, err := hasher.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash)
		assert.True(t, hasher.Verify(plain, hash), "expected %q to verify", plain)
		assert.False(t, hasher.Verify(plain+"x", hash))
		assert.False(t, hasher.Verify(strings.ToUpper(plain), hash))
	}
}

func TestHasher_HashIsSalted(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)

	first, err := hasher.Hash("password1")
	require.NoError(t, err)
	second, err := hasher.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("password1", first))
	assert.True(t, hasher.Verify("password1", second))
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)
	assert.False(t, hasher.Verify("password1", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("password1", ""))
}

func TestHasher_RejectsOverlongPassword(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)
	_, err := hasher.Hash(strings.Repeat("a", password.MaxLength+1))
	assert.Error(t, err)
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MaxCost + 1)
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}
