// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/lexisarthi/api/internal/config"
	"github.com/lexisarthi/api/internal/core"
	"github.com/lexisarthi/api/internal/middleware"
)

// TokenManager issues and verifies the signed, time-limited identity tokens.
// Tokens are stateless: there is no server-side session or revocation list,
// so a token stays valid until expiry or until the signing secret rotates.
type TokenManager struct {
	key        jwk.Key
	config     config.JWTConfig
	adminEmail string
}

func NewTokenManager(
	cfg config.JWTConfig,
	adminEmail string,
) (*TokenManager, error) {
	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{
		key:        key,
		config:     cfg,
		adminEmail: core.NormalizeEmail(adminEmail),
	}, nil
}

// Issue builds a signed token bound to the subject's id and email. The role
// claim is resolved here, once, from the configured administrator address.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(m.config.TokenExpire)).
		NotBefore(now).
		Claim("email", email).
		Claim("role", m.resolveRole(email)).
		Claim("type", "access").
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Verify checks signature and validity window and returns the embedded
// identity. Pure computation; it never touches a store.
func (m *TokenManager) Verify(
	ctx context.Context,
	tokenString string,
) (*middleware.Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != "access" {
		return nil, fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var email string
	if err := token.Get("email", &email); err != nil || email == "" {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.Claims{
		UserID: subject,
		Email:  email,
		Role:   m.resolveRole(email),
	}, nil
}

func (m *TokenManager) resolveRole(email string) string {
	if core.NormalizeEmail(email) == m.adminEmail {
		return middleware.RoleAdmin
	}
	return middleware.RoleUser
}

// IsAdminEmail reports whether the address is the reserved administrator
// identity; signup uses this to refuse registration of that address.
func (m *TokenManager) IsAdminEmail(email string) bool {
	return core.NormalizeEmail(email) == m.adminEmail
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
