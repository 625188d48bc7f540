// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexisarthi/api/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrAdminReserved      = errors.New("administrator address is reserved")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	DigestOptIn  bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
		digestOptIn bool,
	) (*UserInfo, error)
}

type Service struct {
	tokens *TokenManager
	users  UserProvider
}

func NewService(tokens *TokenManager, users UserProvider) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
	}
}

// Signup registers a new account and returns a fresh identity token. The
// reserved administrator address can never be registered here; that account
// is provisioned out of band.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*TokenResponse, error) {
	email := core.NormalizeEmail(req.Email)

	if s.tokens.IsAdminEmail(email) {
		return nil, ErrAdminReserved
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, passwordHash, req.Name, req.DigestOptIn)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueToken(user)
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password produce the same error, with a dummy hash verification on
// the missing-user path so response timing gives nothing away. Previously
// issued tokens stay valid until they expire.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, core.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // enumeration resistance; result is discarded
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user *UserInfo) (*TokenResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: time.Now().Add(s.tokens.config.TokenExpire),
	}, nil
}
