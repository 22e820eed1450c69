package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-panda")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-panda", hash)

	ok, err := VerifyPassword(hash, "s3cret-panda")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-panda")
	assert.NoError(t, err)

	ok, err := VerifyPassword(hash, "not-the-password")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("not-an-encoded-hash", "whatever")
	assert.Error(t, err)
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	first, err := HashPassword("s3cret-panda")
	assert.NoError(t, err)
	second, err := HashPassword("s3cret-panda")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
