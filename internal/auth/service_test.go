// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisarthi/api/internal/core"
)

type fakeUserProvider struct {
	byEmail map[string]*UserInfo
	nextID  int
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{byEmail: make(map[string]*UserInfo)}
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name string,
	digestOptIn bool,
) (*UserInfo, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	f.nextID++
	user := &UserInfo{
		ID:           fmt.Sprintf("user-%d", f.nextID),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		DigestOptIn:  digestOptIn,
	}
	f.byEmail[email] = user
	return user, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserProvider) {
	t.Helper()

	manager, err := NewTokenManager(testJWTConfig(), "admin@example.com")
	require.NoError(t, err)

	users := newFakeUserProvider()
	return NewService(manager, users), users
}

func TestSignup(t *testing.T) {
	svc, users := newTestService(t)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Name:        "Asha",
		Email:       "Asha@Example.COM",
		Password:    "s3cret-password",
		DigestOptIn: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)

	stored, ok := users.byEmail["asha@example.com"]
	require.True(t, ok, "email must be stored normalized")
	assert.True(t, stored.DigestOptIn)
	assert.NotEqual(t, "s3cret-password", stored.PasswordHash)
}

func TestSignupRejectsAdminEmail(t *testing.T) {
	svc, users := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Mallory",
		Email:    "ADMIN@example.com",
		Password: "s3cret-password",
	})
	require.ErrorIs(t, err, ErrAdminReserved)
	assert.Empty(t, users.byEmail)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	req := SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "s3cret-password",
	}

	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ASHA@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials,
		"unknown email and wrong password must be indistinguishable")
}
