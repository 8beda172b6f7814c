package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const (
	// SaltLength is the number of random bytes in a generated salt.
	SaltLength = 16

	// HashIterations is the stretch round count. Raising it invalidates
	// every stored hash, so treat it as part of the credential format.
	HashIterations = 10000
)

// GenerateSalt returns a fresh hex-encoded random salt.
func GenerateSalt() (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives the stretched hash of password under the given
// hex-encoded salt. The first round digests password||salt; every later
// round digests the previous digest followed by the original
// password||salt bytes. Deterministic for a fixed (password, salt) pair.
func HashPassword(password, saltHex string) string {
	base := []byte(password + saltHex)

	sum := sha256.Sum256(base)
	for i := 1; i < HashIterations; i++ {
		round := make([]byte, 0, len(sum)+len(base))
		round = append(round, sum[:]...)
		round = append(round, base...)
		sum = sha256.Sum256(round)
	}

	return hex.EncodeToString(sum[:])
}

// HashPasswordWithNewSalt generates a salt and hashes password under it.
func HashPasswordWithNewSalt(password string) (hashHex, saltHex string, err error) {
	saltHex, err = GenerateSalt()
	if err != nil {
		return "", "", err
	}
	return HashPassword(password, saltHex), saltHex, nil
}

// VerifyPassword recomputes the stretched hash and compares it to the
// stored hex value in constant time.
func VerifyPassword(password, hashHex, saltHex string) bool {
	computed := HashPassword(password, saltHex)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashHex)) == 1
}
