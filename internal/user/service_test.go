// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisarthi/api/internal/core"
)

type fakeRepository struct {
	byID map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*User)}
}

func (f *fakeRepository) Create(_ context.Context, user *User) error {
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (f *fakeRepository) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepository) Update(_ context.Context, user *User) error {
	stored, ok := f.byID[user.ID]
	if !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	for id, existing := range f.byID {
		if id != user.ID && existing.Email == user.Email {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
	}
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.Name = user.Name
	return nil
}

func (f *fakeRepository) ToggleDigestOptIn(
	_ context.Context,
	id string,
) (bool, error) {
	user, ok := f.byID[id]
	if !ok {
		return false, fmt.Errorf("toggle digest opt-in: %w", core.ErrNotFound)
	}
	user.DigestOptIn = !user.DigestOptIn
	return user.DigestOptIn, nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepository) ListDigestSubscribers(
	_ context.Context,
) ([]User, error) {
	var users []User
	for _, user := range f.byID {
		if user.DigestOptIn {
			users = append(users, *user)
		}
	}
	return users, nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	return NewService(repo, "admin@example.com"), repo
}

func mustCreate(t *testing.T, svc *Service, email string) string {
	t.Helper()

	hash, err := core.HashPassword("s3cret-password")
	require.NoError(t, err)

	user, err := svc.Create(context.Background(), email, hash, "Asha", false)
	require.NoError(t, err)
	return user.ID
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc, repo := newTestService(t)

	id := mustCreate(t, svc, "  Asha@Example.COM ")

	stored := repo.byID[id]
	require.NotNil(t, stored)
	assert.Equal(t, "asha@example.com", stored.Email)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	svc, repo := newTestService(t)
	id := mustCreate(t, svc, "asha@example.com")

	newName := "Asha K"
	updated, err := svc.UpdateProfile(context.Background(), id,
		UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email,
		"untouched fields keep their values")
	assert.Equal(t, repo.byID[id].Name, "Asha K")
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	id := mustCreate(t, svc, "asha@example.com")

	oldHash := repo.byID[id].PasswordHash

	newPassword := "brand-new-password"
	_, err := svc.UpdateProfile(context.Background(), id,
		UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)

	newHash := repo.byID[id].PasswordHash
	assert.NotEqual(t, oldHash, newHash)
	assert.NotEqual(t, newPassword, newHash)

	valid, err := core.VerifyPassword(newPassword, newHash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = core.VerifyPassword("s3cret-password", newHash)
	require.NoError(t, err)
	assert.False(t, valid, "old password stops working after the change")
}

func TestUpdateProfileRejectsAdminEmail(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustCreate(t, svc, "asha@example.com")

	adminEmail := "Admin@Example.com"
	_, err := svc.UpdateProfile(context.Background(), id,
		UpdateProfileRequest{Email: &adminEmail})
	require.ErrorIs(t, err, ErrAdminReserved)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Nobody"
	_, err := svc.UpdateProfile(context.Background(), "missing-id",
		UpdateProfileRequest{Name: &name})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestToggleDigestOptInRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustCreate(t, svc, "asha@example.com")

	on, err := svc.ToggleDigestOptIn(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := svc.ToggleDigestOptIn(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, off, "a second toggle restores the original state")
}

func TestDeleteProfile(t *testing.T) {
	svc, repo := newTestService(t)
	id := mustCreate(t, svc, "asha@example.com")

	require.NoError(t, svc.DeleteProfile(context.Background(), id))
	assert.Empty(t, repo.byID)

	err := svc.DeleteProfile(context.Background(), id)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestDigestSubscribers(t *testing.T) {
	svc, _ := newTestService(t)

	idA := mustCreate(t, svc, "a@example.com")
	mustCreate(t, svc, "b@example.com")

	_, err := svc.ToggleDigestOptIn(context.Background(), idA)
	require.NoError(t, err)

	subs, err := svc.DigestSubscribers(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a@example.com", subs[0].Email)
}
