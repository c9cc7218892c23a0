package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.Error(t, h.Compare(hash, "battery staple"))
}

func TestBcryptCostIsClamped(t *testing.T) {
	assert.Equal(t, 4, NewBcryptPasswordHasherWithCost(1).Cost())
	assert.Equal(t, 31, NewBcryptPasswordHasherWithCost(99).Cost())
	assert.Equal(t, 10, NewBcryptPasswordHasher().Cost())
}
