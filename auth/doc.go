// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Session Tokens

Tokens are HS256 JWTs carrying the user's id, username and role:

	token, err := auth.IssueToken(secret, user.ID, user.Username, user.Role, 24*time.Hour)
	claims, err := auth.ParseToken(secret, token)

Every token has exp, iat and a random jti. ParseToken rejects other signing
methods, expired tokens and tokens without an expiry with ErrInvalidToken.

# Bearer Header

	token, err := auth.BearerToken(r.Header.Get("Authorization"))

The scheme is matched case-insensitively.
*/
package auth
