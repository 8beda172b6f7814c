package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestHashPassword_Deterministic(t *testing.T) {
	salt := "00112233445566778899aabbccddeeff"

	first := HashPassword("hunter2", salt)
	second := HashPassword("hunter2", salt)

	if first != second {
		t.Errorf("same password and salt produced different hashes: %s vs %s", first, second)
	}

	if len(first) != 64 {
		t.Errorf("expected 64 hex chars for a 256-bit digest, got %d", len(first))
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Errorf("hash is not valid hex: %v", err)
	}
}

func TestHashPassword_SaltChangesHash(t *testing.T) {
	a := HashPassword("hunter2", "00112233445566778899aabbccddeeff")
	b := HashPassword("hunter2", "ffeeddccbbaa99887766554433221100")

	if a == b {
		t.Error("different salts produced identical hashes")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, salt, err := HashPasswordWithNewSalt("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPasswordWithNewSalt failed: %v", err)
	}

	if !VerifyPassword("correct horse battery staple", hash, salt) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("correct horse battery stapl", hash, salt) {
		t.Error("wrong password should not verify")
	}
	if VerifyPassword("", hash, salt) {
		t.Error("empty password should not verify")
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 32; i++ {
		salt, err := GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt failed: %v", err)
		}
		if len(salt) != SaltLength*2 {
			t.Fatalf("expected %d hex chars, got %d", SaltLength*2, len(salt))
		}
		if seen[salt] {
			t.Fatalf("salt %s repeated", salt)
		}
		seen[salt] = true
	}
}

func TestHashPassword_NotSingleRound(t *testing.T) {
	// Guard against regressing to a plain unstretched digest.
	salt := "00112233445566778899aabbccddeeff"
	stretched := HashPassword("hunter2", salt)

	single := sha256.Sum256([]byte("hunter2" + salt))
	if stretched == hex.EncodeToString(single[:]) {
		t.Error("hash equals a single unstretched digest")
	}
}
