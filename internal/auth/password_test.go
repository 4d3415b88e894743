// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword_Argon2(t *testing.T) {
	hash, err := HashPassword("Admin123!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	valid, err := CheckPassword("Admin123!", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("Correct password was rejected")
	}

	valid, err = CheckPassword("admin123!", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("Wrong password was accepted")
	}
}

func TestCheckPassword_Bcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	hash := string(raw)

	if !IsBcrypt(hash) {
		t.Fatalf("IsBcrypt(%q) = false", hash)
	}

	valid, err := CheckPassword("Admin123!", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("Correct password was rejected by bcrypt hash")
	}

	valid, err = CheckPassword("wrong", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("Wrong password was accepted by bcrypt hash")
	}
}

func TestCheckPassword_Malformed(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$argon2id$v=19$broken", "$2b$10$short"} {
		valid, err := CheckPassword("x", hash)
		if valid {
			t.Errorf("CheckPassword(%q) accepted a malformed hash", hash)
		}
		if err == nil {
			t.Errorf("CheckPassword(%q) expected error", hash)
		}
	}
}

func TestParseArgonHash(t *testing.T) {
	encoded, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h, err := parseArgonHash(encoded)
	if err != nil {
		t.Fatalf("parseArgonHash(%q): %v", encoded, err)
	}
	if !h.current() {
		t.Errorf("fresh hash not current: %+v", h)
	}
	if h.String() != encoded {
		t.Errorf("String() = %q, want %q", h.String(), encoded)
	}

	for _, bad := range []string{
		"argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA$",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$",
	} {
		if _, err := parseArgonHash(bad); !errors.Is(err, errMalformedHash) {
			t.Errorf("parseArgonHash(%q) error = %v, want errMalformedHash", bad, err)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	current, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"current params", current, false},
		{"old argon2 params", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", true},
		{"bcrypt", string(bcryptHash), true},
		{"garbage", "nope", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsRehash(tt.hash); got != tt.want {
				t.Errorf("NeedsRehash() = %v, want %v", got, tt.want)
			}
		})
	}
}
