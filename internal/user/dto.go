// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

// ProfileResponse is the read model for a user. The password hash is never
// part of any response shape.
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	DigestOptIn bool      `json:"digest_opt_in"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DigestOptInResponse struct {
	DigestOptIn bool   `json:"digest_opt_in"`
	Message     string `json:"message"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		DigestOptIn: u.DigestOptIn,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
