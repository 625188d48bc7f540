// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexisarthi/api/internal/auth"
	"github.com/lexisarthi/api/internal/core"
	"github.com/lexisarthi/api/internal/digest"
)

var ErrAdminReserved = errors.New("administrator address is reserved")

type Service struct {
	repo       Repository
	adminEmail string
}

func NewService(repo Repository, adminEmail string) *Service {
	return &Service{
		repo:       repo,
		adminEmail: core.NormalizeEmail(adminEmail),
	}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
	digestOptIn bool,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        core.NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		DigestOptIn:  digestOptIn,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile applies only the supplied fields. A new password goes
// through the same hashing discipline as signup; plaintext never reaches
// the store.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update profile: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Email != nil {
		email := core.NormalizeEmail(*req.Email)
		if email == s.adminEmail {
			return nil, ErrAdminReserved
		}
		user.Email = email
	}

	if req.Password != nil {
		hash, hashErr := core.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ToggleDigestOptIn(
	ctx context.Context,
	userID string,
) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("toggle digest opt-in: %w", core.ErrUnauthorized)
	}

	return s.repo.ToggleDigestOptIn(ctx, userID)
}

// DeleteProfile removes the record. Tokens already issued for the subject
// stay structurally valid until expiry; every store-backed operation after
// this point reports not-found.
func (s *Service) DeleteProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete profile: %w", core.ErrUnauthorized)
	}

	return s.repo.Delete(ctx, userID)
}

func (s *Service) DigestSubscribers(
	ctx context.Context,
) ([]digest.Subscriber, error) {
	users, err := s.repo.ListDigestSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	subs := make([]digest.Subscriber, 0, len(users))
	for _, u := range users {
		subs = append(subs, digest.Subscriber{
			Email: u.Email,
			Name:  u.Name,
		})
	}

	return subs, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		DigestOptIn:  u.DigestOptIn,
	}
}

var (
	_ auth.UserProvider       = (*Service)(nil)
	_ digest.SubscriberSource = (*Service)(nil)
)
