package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

// Config holds password hashing settings.
type Config struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Service registers and authenticates admins.
type Service struct {
	repo   Repository
	tokens *jwt.Service
	now    func() time.Time
	cost   int
}

// NewService creates a Service.
func NewService(repo Repository, tokens *jwt.Service, cfg Config) *Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, cost: cost, now: time.Now}
}

// Register creates an admin. It issues no token.
func (s *Service) Register(ctx context.Context, username, password, email string) (Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return Admin{}, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), s.cost)
	if err != nil {
		return Admin{}, errors.Join(ErrHashPassword, err)
	}

	a := Admin{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// LoginResult is a signed token and the admin it was issued to.
type LoginResult struct {
	Token string
	Admin Admin
}

// Login verifies the password and issues a 24h token.
// An unknown username and a wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, ErrMissingLogin
	}

	a, err := s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrAdminNotFound):
		return LoginResult{}, ErrInvalidCredentials
	case err != nil:
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), passwordKey(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	claims := &Claims{ID: a.ID.String(), Username: a.Username}
	s.tokens.Stamp(&claims.StandardClaims)
	token, err := s.tokens.Generate(claims)
	if err != nil {
		return LoginResult{}, errors.Join(ErrIssueToken, err)
	}
	return LoginResult{Token: token, Admin: a}, nil
}

// Profile returns the admin identified by id.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (Admin, error) {
	return s.repo.FindByID(ctx, id)
}

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// passwordKey is the bcrypt input for password. Bytes past the limit are
// ignored, so long passwords register and log in like they did with the
// existing hashes instead of failing with bcrypt.ErrPasswordTooLong.
func passwordKey(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
