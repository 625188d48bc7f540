// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type SignupRequest struct {
	Name        string `json:"name"     validate:"required,min=1,max=100"`
	Email       string `json:"email"    validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DigestOptIn bool   `json:"digest_opt_in"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
