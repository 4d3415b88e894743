// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth turns an email and password into an admin Identity.
//
// The Verifier is the only entry point handlers use. Every failure, whether
// the account is unknown, the password is wrong, the stored hash is corrupt or
// the lookup timed out, comes back as ErrInvalidCredentials so callers cannot
// leak which one happened. Unknown accounts are checked against a dummy hash
// so they cost the same as a real comparison.
//
// Stored hashes are PHC-encoded argon2id strings. bcrypt hashes written by
// older seeds still verify, and NeedsRehash tells the login handler to
// replace them (and argon2id hashes with outdated cost parameters) once the
// plaintext is known.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Cost parameters for new hashes: the OWASP argon2id profile for hosts with
// little memory (m=19 MiB, t=2, p=1).
const (
	hashTime    = 2
	hashMemory  = 19 * 1024
	hashThreads = 1
	hashKeyLen  = 32
	hashSaltLen = 16
)

// errMalformedHash is wrapped by every parse failure of a stored hash.
var errMalformedHash = errors.New("malformed password hash")

// argonHash is a decoded $argon2id$v=19$m=..,t=..,p=..$salt$key string.
type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (h argonHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key))
}

// current reports whether h was made with today's cost parameters.
func (h argonHash) current() bool {
	return h.memory == hashMemory && h.time == hashTime &&
		h.threads == hashThreads && len(h.key) == hashKeyLen
}

func parseArgonHash(encoded string) (argonHash, error) {
	var h argonHash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return h, fmt.Errorf("%w: want 6 fields", errMalformedHash)
	}
	if parts[1] != "argon2id" {
		return h, fmt.Errorf("%w: unsupported algorithm %q", errMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return h, fmt.Errorf("%w: version: %w", errMalformedHash, err)
	}
	if version != argon2.Version {
		return h, fmt.Errorf("%w: argon2 version %d", errMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return h, fmt.Errorf("%w: parameters: %w", errMalformedHash, err)
	}
	if h.time == 0 || h.threads == 0 {
		return h, fmt.Errorf("%w: zero cost parameter", errMalformedHash)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return h, fmt.Errorf("%w: salt: %w", errMalformedHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return h, fmt.Errorf("%w: key: %w", errMalformedHash, err)
	}
	if len(h.key) == 0 {
		return h, fmt.Errorf("%w: empty key", errMalformedHash)
	}
	return h, nil
}

// HashPassword returns a new argon2id hash of password with a random salt.
func HashPassword(password string) (string, error) {
	h := argonHash{memory: hashMemory, time: hashTime, threads: hashThreads, salt: make([]byte, hashSaltLen)}
	if _, err := rand.Read(h.salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	h.key = argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, hashKeyLen)
	return h.String(), nil
}

// CheckPassword compares password with a stored argon2id or bcrypt hash in
// constant time. A hash that cannot be parsed is an error, not a mismatch.
func CheckPassword(password, encodedHash string) (bool, error) {
	if IsBcrypt(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: %w", errMalformedHash, err)
		}
	}

	h, err := parseArgonHash(encodedHash)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(key, h.key) == 1, nil
}

// NeedsRehash reports whether a stored hash should be replaced after a
// successful login: bcrypt, unreadable, or argon2id with other parameters.
func NeedsRehash(encodedHash string) bool {
	h, err := parseArgonHash(encodedHash)
	return err != nil || !h.current()
}

// IsBcrypt reports whether encodedHash is a bcrypt hash ($2a$, $2b$ or $2y$).
func IsBcrypt(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2a$") ||
		strings.HasPrefix(encodedHash, "$2b$") ||
		strings.HasPrefix(encodedHash, "$2y$")
}
