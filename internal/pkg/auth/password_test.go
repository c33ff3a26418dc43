package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", hashed)

	assert.True(t, CheckPassword(hashed, "Secret123!"))
	assert.False(t, CheckPassword(hashed, "secret123!"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("Secret123!")
	require.NoError(t, err)
	second, err := HashPassword("Secret123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
