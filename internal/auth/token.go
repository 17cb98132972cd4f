package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Config struct {
	// Secret signs access tokens (HS256). Deployment configuration.
	Secret string
	// ExpireMinutes is the access-token lifetime. Defaults to 30.
	ExpireMinutes int
}

// ConfigFromEnv reads token config from environment variables.
func ConfigFromEnv() Config {
	expire := 30
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			expire = parsed
		}
	}
	return Config{Secret: os.Getenv("JWT_SECRET"), ExpireMinutes: expire}
}

// TokenService issues and validates signed, time-limited bearer tokens
// carrying an admin id as subject. Tokens are never persisted.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(cfg Config) *TokenService {
	expire := cfg.ExpireMinutes
	if expire <= 0 {
		expire = 30
	}
	return &TokenService{secret: []byte(cfg.Secret), expiry: time.Duration(expire) * time.Minute}
}

// Issue signs a token with sub/iat/exp for the given admin id.
func (s *TokenService) Issue(subject int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subject, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Parse verifies signature and expiry and returns the subject admin id.
// Every failure mode (bad signature, malformed payload, expired, missing or
// non-numeric subject) collapses to ErrInvalidToken.
func (s *TokenService) Parse(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	if claims.Subject == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
