package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := NewTokenService(testSecret, 24*time.Hour)

	token, err := ts.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.NotEmpty(t, claims.PrincipalID)
	assert.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_FreshPrincipalIDPerIssue(t *testing.T) {
	ts := NewTokenService(testSecret, 24*time.Hour)

	first, err := ts.Issue("admin")
	require.NoError(t, err)
	second, err := ts.Issue("admin")
	require.NoError(t, err)

	claimsA, err := ts.Verify(first)
	require.NoError(t, err)
	claimsB, err := ts.Verify(second)
	require.NoError(t, err)

	assert.NotEqual(t, claimsA.PrincipalID, claimsB.PrincipalID)
}

func TestTokenService_TamperedTokenRejected(t *testing.T) {
	ts := NewTokenService(testSecret, 24*time.Hour)

	token, err := ts.Issue("admin")
	require.NoError(t, err)

	// Flip one character in the signature segment.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = ts.Verify(string(tampered))
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenService_PayloadTamperRejected(t *testing.T) {
	ts := NewTokenService(testSecret, 24*time.Hour)

	token, err := ts.Issue("admin")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Swap the payload for one from a second token; signature no longer matches.
	other, err := ts.Issue("admin")
	require.NoError(t, err)
	otherParts := strings.Split(other, ".")

	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]
	_, err = ts.Verify(spliced)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	ts := NewTokenService(testSecret, -time.Second)

	token, err := ts.Issue("admin")
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenService(testSecret, 24*time.Hour)
	verifier := NewTokenService("a-completely-different-secret-value!", 24*time.Hour)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
