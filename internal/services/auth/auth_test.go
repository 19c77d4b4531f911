package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsers implements UsersStorage in memory, keyed by id with a
// unique-email guard like the real table.
type fakeUsers struct {
	users map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUsers) Insert(_ context.Context, email, fullName string, passwordHash []byte, roles []models.Role, verified bool) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, storage.ErrConflict
		}
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Roles:        roles,
		Verified:     verified,
	}
	f.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(recipient string, _ string, _ any) error {
	f.sent = append(f.sent, recipient)
	return nil
}

// syncExecutor runs tasks inline so tests can observe their effects.
type syncExecutor struct{}

func (syncExecutor) Add(task func()) { task() }

func newTestService(users *fakeUsers, mailer *fakeMailer) *AuthService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, users, mailer, syncExecutor{}, "test-secret", time.Hour, false)
}

func TestSignup(t *testing.T) {
	users := newFakeUsers()
	mailer := &fakeMailer{}
	svc := newTestService(users, mailer)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user, err := svc.Signup(ctx, "john@example.com", "John Doe", "password123")
		require.NoError(t, err)
		assert.Equal(t, []models.Role{models.RoleUser}, user.Roles)
		assert.False(t, user.Verified)
		assert.NotEqual(t, "password123", string(user.PasswordHash))
		assert.Contains(t, mailer.sent, "john@example.com")
	})
	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Signup(ctx, "john@example.com", "John Again", "password123")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users, &fakeMailer{})
	ctx := context.Background()
	_, err := svc.Signup(ctx, "john@example.com", "John Doe", "password123")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		tokens, err := svc.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "john@example.com", "nope-nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users, &fakeMailer{})
	ctx := context.Background()
	user, err := svc.Signup(ctx, "john@example.com", "John Doe", "password123")
	require.NoError(t, err)
	tokens, err := svc.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid token resolves bearer", func(t *testing.T) {
		authenticated, err := svc.Authenticate(ctx, tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, authenticated.ID)
		assert.Equal(t, user.Email, authenticated.Email)
	})
	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("token signed with another secret", func(t *testing.T) {
		other := New(slog.New(slog.NewTextHandler(io.Discard, nil)), users, &fakeMailer{}, syncExecutor{}, "other-secret", time.Hour, false)
		foreign, err := other.newToken(user)
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("deleted bearer", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, user.ID))
		_, err := svc.Authenticate(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestEditUser(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users, &fakeMailer{})
	ctx := context.Background()
	user, err := svc.Signup(ctx, "john@example.com", "John Doe", "password123")
	require.NoError(t, err)

	t.Run("promote to admin", func(t *testing.T) {
		updated, err := svc.EditUser(ctx, user.ID, EditUserParams{Roles: []models.Role{models.RoleUser, models.RoleAdmin}})
		require.NoError(t, err)
		assert.True(t, updated.HasRole(models.RoleAdmin))
	})
	t.Run("not found", func(t *testing.T) {
		_, err := svc.EditUser(ctx, uuid.New(), EditUserParams{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users, &fakeMailer{})
	ctx := context.Background()
	owner, err := svc.Signup(ctx, "owner@example.com", "Owner", "password123")
	require.NoError(t, err)
	other, err := svc.Signup(ctx, "other@example.com", "Other", "password123")
	require.NoError(t, err)

	t.Run("cannot delete someone else's account", func(t *testing.T) {
		err := svc.DeleteUser(ctx, other, owner.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
	t.Run("owner deletes own account", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, owner, owner.ID))
		_, err := svc.GetUser(ctx, owner.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
	t.Run("admin deletes anyone", func(t *testing.T) {
		admin := &models.User{ID: uuid.New(), Roles: []models.Role{models.RoleAdmin}}
		require.NoError(t, svc.DeleteUser(ctx, admin, other.ID))
	})
}
