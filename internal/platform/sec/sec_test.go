// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkstone/internal/platform/sec"
)

/*
TestHashPassword verifies that hashing never stores the plain text and that
every call salts independently.
*/
func TestHashPassword(t *testing.T) {
	password := "s3cret-passw0rd"

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	// 1. The hash must not contain the plain text
	assert.NotEqual(t, password, hash)
	assert.NotContains(t, hash, password)

	// 2. bcrypt salts per call, so two hashes of the same input differ
	secondHash, err := sec.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, secondHash)
}

/*
TestCheckPasswordHash verifies the password comparison against stored hashes.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct_password", "correct-horse", true},
		{"wrong_password", "battery-staple", false},
		{"empty_password", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CheckPasswordHash(tt.password, hash))
		})
	}
}

/*
TestGenerateSecureToken checks token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 random bytes hex-encode to 64 characters
	assert.Len(t, token, 64)

	other, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

/*
TestHashToken verifies that the keyed digest is deterministic per secret and
changes with either input.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("secret-a", "token-1")

	// 1. Deterministic for the same inputs
	assert.Equal(t, digest, sec.HashToken("secret-a", "token-1"))

	// 2. Different token, different digest
	assert.NotEqual(t, digest, sec.HashToken("secret-a", "token-2"))

	// 3. Different secret, different digest
	assert.NotEqual(t, digest, sec.HashToken("secret-b", "token-1"))

	// 4. The raw token never appears in the digest
	assert.NotContains(t, digest, "token-1")
}
