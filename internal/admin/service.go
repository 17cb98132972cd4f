package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumeboard/feedback-service/internal/admin/entity"
	"github.com/lumeboard/feedback-service/internal/admin/repo"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrBadCredentials  = errors.New("invalid credentials")
	ErrEmailTaken      = errors.New("user already exists")
	ErrBootstrapSecret = errors.New("invalid bootstrap secret")
	ErrBootstrapUsed   = errors.New("bootstrap already used")
)

// PasswordHasher defines the minimal hashing interface (abstract so we can
// swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Store is the persistence surface the service needs. Lookups return nil when
// the row is absent; Create returns repo.ErrDuplicateEmail on a taken email.
type Store interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Config struct {
	// BootstrapSecret guards the one-time first-admin creation. Empty
	// disables bootstrap entirely.
	BootstrapSecret string
}

// ConfigFromEnv reads admin config from environment variables.
func ConfigFromEnv() Config {
	return Config{BootstrapSecret: os.Getenv("ADMIN_BOOTSTRAP_SECRET")}
}

// Service orchestrates admin account lifecycle and password authentication.
type Service struct {
	store  Store
	hasher PasswordHasher
	cfg    Config
}

func NewService(store Store, hasher PasswordHasher, cfg Config) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{store: store, hasher: hasher, cfg: cfg}
}

// Authenticate verifies email/password. Unknown email and wrong password both
// return ErrBadCredentials so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// Create registers a new admin account with a hashed password.
func (s *Service) Create(ctx context.Context, email, password string) (*entity.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: normalizeEmail(email), PasswordHash: hash}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Bootstrap creates the very first admin account. It requires the configured
// secret and succeeds at most once: any call after an admin exists fails,
// regardless of secret correctness. The secret check happens first so the
// caller-visible failure reason is precise, but both paths surface as
// Forbidden at the transport layer.
func (s *Service) Bootstrap(ctx context.Context, secret, email, password string) (*entity.User, error) {
	if s.cfg.BootstrapSecret == "" || !constantTimeEqual(secret, s.cfg.BootstrapSecret) {
		return nil, ErrBootstrapSecret
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrBootstrapUsed
	}
	return s.Create(ctx, email, password)
}

// Delete removes an admin account or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether an admin account with the given id is still present.
// The access gate uses this to reject tokens for deleted accounts.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
