// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same election ID and salt always produce the same key. This allows
validation without storing the key in the database: any operator who holds
ADMIN_KEY_SALT can derive the key from the election ID shown by GET /election.

# Voter Tokens

Voter tokens follow the same HMAC construction, keyed on the voter identity:

	token := auth.GenerateVoterToken(identity, salt)
	err := auth.ValidateVoterToken(identity, token, salt)

A token is issued when the administrator registers a voter and is presented
by the voter on every proposal or vote submission. Because tokens are
deterministic, a lost token can be re-derived by the operator without any
database lookup.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving audit trails:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
