// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidVoterToken = errors.New("invalid voter token")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based admin key for an election
// This is deterministic and verifiable
func GenerateAdminKey(electionID, salt string) string {
	return hmacKey(electionID, salt)
}

// ValidateAdminKey checks if the provided admin key is valid for the election
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken creates an HMAC-based token for a registered voter.
// Deterministic like the admin key: the same identity and salt always yield
// the same token, so an operator can re-derive a lost token without touching
// the database.
func GenerateVoterToken(identity, salt string) string {
	return hmacKey("voter:"+identity, salt)
}

// ValidateVoterToken checks if the provided token belongs to the identity
func ValidateVoterToken(identity, token, salt string) error {
	expected := GenerateVoterToken(identity, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidVoterToken
	}
	return nil
}

// hmacKey produces a URL-safe base64 HMAC-SHA256 of msg under salt
func hmacKey(msg, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
