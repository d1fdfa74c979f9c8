// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives for identity management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, session
// token generation) from the domain logic. It is an Infrastructure service
// injected into the Application layer via constructors.
package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random, hex-encoded token.
//
// # Parameters
//   - byteLength: The number of random bytes to draw (the hex string is twice as long).
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashToken computes a keyed HMAC-SHA256 digest of a client-held token.
//
// Session records are stored under the digest, never under the raw token,
// so a leaked session store cannot be replayed against the server.
func HashToken(secret, token string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
