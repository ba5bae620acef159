// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and bearer token utilities.

# Password Hashing

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(password, storedHash)

CheckPassword returns ErrInvalidCredentials on mismatch. Handlers return
the same 401 whether the username or the password was wrong.

# Bearer Tokens

Session tokens are HS256 JWTs with the username as subject:

	token, err := auth.SignToken(username, secret, 30*time.Minute)
	username, err := auth.ParseToken(token, secret)

The signing secret is always passed in explicitly from configuration;
nothing in this package reads the environment. ParseToken collapses every
failure mode (bad signature, malformed payload, expiry) into
ErrInvalidToken.

Tokens are opaque to every other component: handlers resolve them to a
user row once per request and pass the user around from there.
*/
package auth
