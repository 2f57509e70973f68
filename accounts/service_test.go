package accounts_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/pkg/jwt"
)

// memRepo enforces unique usernames like the admins_username_key index.
type memRepo struct {
	mu     sync.Mutex
	admins map[string]accounts.Admin
}

func newMemRepo() *memRepo {
	return &memRepo{admins: map[string]accounts.Admin{}}
}

func (r *memRepo) Create(_ context.Context, a accounts.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[a.Username]; ok {
		return accounts.ErrUsernameTaken
	}
	r.admins[a.Username] = a
	return nil
}

func (r *memRepo) FindByUsername(_ context.Context, username string) (accounts.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[username]
	if !ok {
		return accounts.Admin{}, accounts.ErrAdminNotFound
	}
	return a, nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (accounts.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return accounts.Admin{}, accounts.ErrAdminNotFound
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, a accounts.Admin) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (accounts.Admin, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(accounts.Admin), args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (accounts.Admin, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(accounts.Admin), args.Error(1)
}

func newTokens(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewFromString("test-secret-key-at-least-32-bytes!")
	require.NoError(t, err)
	return svc
}

func newService(t *testing.T, repo accounts.Repository) (*accounts.Service, *jwt.Service) {
	t.Helper()
	tokens := newTokens(t)
	return accounts.NewService(repo, tokens, accounts.Config{BcryptCost: bcrypt.MinCost}), tokens
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("stores bcrypt hash", func(t *testing.T) {
		t.Parallel()
		repo := newMemRepo()
		svc, _ := newService(t, repo)

		a, err := svc.Register(context.Background(), " root ", "s3cret", "root@example.com")
		require.NoError(t, err)
		assert.Equal(t, "root", a.Username)
		assert.NotEqual(t, uuid.Nil, a.ID)
		assert.False(t, a.CreatedAt.IsZero())

		stored, err := repo.FindByUsername(context.Background(), "root")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", stored.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t, newMemRepo())
		for _, in := range [][3]string{{"", "p", "e@x.com"}, {"u", "", "e@x.com"}, {"u", "p", " "}} {
			_, err := svc.Register(context.Background(), in[0], in[1], in[2])
			require.ErrorIs(t, err, accounts.ErrMissingFields)
		}
	})

	t.Run("duplicate keeps existing hash", func(t *testing.T) {
		t.Parallel()
		repo := newMemRepo()
		svc, _ := newService(t, repo)

		_, err := svc.Register(context.Background(), "root", "first", "a@x.com")
		require.NoError(t, err)
		before, _ := repo.FindByUsername(context.Background(), "root")

		_, err = svc.Register(context.Background(), "root", "second", "b@x.com")
		require.ErrorIs(t, err, accounts.ErrUsernameTaken)

		after, _ := repo.FindByUsername(context.Background(), "root")
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
		assert.Equal(t, "a@x.com", after.Email)
	})
}

func TestService_LongPassword(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc, tokens := newService(t, repo)
	long := strings.Repeat("a", 100)

	_, err := svc.Register(context.Background(), "root", long, "root@example.com")
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "root", long)
	require.NoError(t, err)
	require.NoError(t, tokens.Parse(res.Token, &accounts.Claims{}))

	// Only the first 72 bytes take part in the hash.
	_, err = svc.Login(context.Background(), "root", strings.Repeat("a", 72)+"different tail")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "root", strings.Repeat("a", 71))
	require.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc, tokens := newService(t, repo)
	registered, err := svc.Register(context.Background(), "root", "s3cret", "root@example.com")
	require.NoError(t, err)

	t.Run("token round trip", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Login(context.Background(), "root", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, res.Admin.ID)

		var claims accounts.Claims
		require.NoError(t, tokens.Parse(res.Token, &claims))
		assert.Equal(t, registered.ID.String(), claims.ID)
		assert.Equal(t, "root", claims.Username)
		require.NotNil(t, claims.ExpiresAt)
		require.NotNil(t, claims.IssuedAt)
		assert.Equal(t, 24*60*60.0, claims.ExpiresAt.Sub(claims.IssuedAt.Time).Seconds())

		id, err := claims.AdminID()
		require.NoError(t, err)
		assert.Equal(t, registered.ID, id)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Login(context.Background(), "root", "nope")
		require.ErrorIs(t, err, accounts.ErrInvalidCredentials)
		assert.Empty(t, res.Token)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Login(context.Background(), "ghost", "s3cret")
		require.ErrorIs(t, err, accounts.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Login(context.Background(), "root", "")
		require.ErrorIs(t, err, accounts.ErrMissingLogin)
	})
}

func TestService_StorageErrors(t *testing.T) {
	t.Parallel()

	down := errors.Join(accounts.ErrStorageUnavailable, errors.New("connection refused"))

	repo := &mockRepo{}
	repo.On("FindByUsername", mock.Anything, "root").Return(accounts.Admin{}, down)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(accounts.Admin{}, accounts.ErrAdminNotFound)
	svc, _ := newService(t, repo)

	_, err := svc.Login(context.Background(), "root", "s3cret")
	require.ErrorIs(t, err, accounts.ErrStorageUnavailable)

	_, err = svc.Profile(context.Background(), uuid.New())
	require.ErrorIs(t, err, accounts.ErrAdminNotFound)
	repo.AssertExpectations(t)
}
