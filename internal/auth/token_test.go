package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	svc := NewTokenService(Config{Secret: "test-secret", ExpireMinutes: 30})

	token, err := svc.Issue(42)
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	svc := NewTokenService(Config{Secret: "test-secret"})
	_, err = svc.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(Config{Secret: "secret-a"})
	verifier := NewTokenService(Config{Secret: "secret-b"})

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewTokenService(Config{Secret: "test-secret"})

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Parse(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	svc := NewTokenService(Config{Secret: "test-secret"})
	_, err = svc.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
