package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/subscription-portal/internal/config"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/password"
	"github.com/magabrotheeeer/subscription-portal/internal/migrations"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/storage"
)

type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStoreMock) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

type planCacheStub struct {
	ids []int64
}

func (p *planCacheStub) Invalidate(_ context.Context, id int64) error {
	p.ids = append(p.ids, id)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var testCfg = config.Bootstrap{
	AdminUsername: "admin",
	AdminEmail:    "admin@example.com",
	AdminPassword: "admin123",
}

func TestEnsureAdmin_Creates(t *testing.T) {
	users := new(UserStoreMock)
	users.On("GetUserByUsername", mock.Anything, "admin").
		Return(nil, fmt.Errorf("storage.GetUserByUsername: %w", storage.ErrNotFound)).Once()
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "admin" &&
			u.Email == "admin@example.com" &&
			u.Role == models.RoleAdmin &&
			password.CompareHash(u.PasswordHash, "admin123") == nil
	})).Return(models.User{ID: 1}, nil).Once()

	require.NoError(t, EnsureAdmin(context.Background(), users, testCfg, newNoopLogger()))
	users.AssertExpectations(t)
}

func TestEnsureAdmin_Existing(t *testing.T) {
	users := new(UserStoreMock)
	users.On("GetUserByUsername", mock.Anything, "admin").
		Return(&models.User{ID: 1, Username: "admin"}, nil).Once()

	require.NoError(t, EnsureAdmin(context.Background(), users, testCfg, newNoopLogger()))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestEnsureAdmin_ConcurrentCreate(t *testing.T) {
	users := new(UserStoreMock)
	users.On("GetUserByUsername", mock.Anything, "admin").Return(nil, storage.ErrNotFound).Once()
	users.On("CreateUser", mock.Anything, mock.Anything).Return(models.User{}, storage.ErrAlreadyExists).Once()
	users.On("GetUserByUsername", mock.Anything, "admin").Return(&models.User{ID: 1, Username: "admin"}, nil).Once()

	require.NoError(t, EnsureAdmin(context.Background(), users, testCfg, newNoopLogger()))
	users.AssertExpectations(t)
}

func TestEnsureAdmin_EmailTakenByOtherUser(t *testing.T) {
	users := new(UserStoreMock)
	users.On("GetUserByUsername", mock.Anything, "admin").Return(nil, storage.ErrNotFound).Twice()
	users.On("CreateUser", mock.Anything, mock.Anything).Return(models.User{}, storage.ErrAlreadyExists).Once()

	err := EnsureAdmin(context.Background(), users, testCfg, newNoopLogger())

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	users.AssertExpectations(t)
}

func TestEnsureAdmin_LookupError(t *testing.T) {
	users := new(UserStoreMock)
	users.On("GetUserByUsername", mock.Anything, "admin").Return(nil, errors.New("db down")).Once()

	require.Error(t, EnsureAdmin(context.Background(), users, testCfg, newNoopLogger()))
}

func setupStorage(t *testing.T) *storage.Storage {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	st, err := storage.New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, migrations.Run(st.DB))
	return st
}

func TestRun_SeedsOnce(t *testing.T) {
	st := setupStorage(t)
	ctx := context.Background()
	cache := &planCacheStub{}
	cfg := testCfg
	cfg.SeedDemo = true

	require.NoError(t, Run(ctx, st, cfg, cache, newNoopLogger()))
	require.NoError(t, Run(ctx, st, cfg, cache, newNoopLogger()))

	admins, err := st.CountUsersByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, admins)

	seller, err := st.GetUserByUsername(ctx, DemoSellerUsername)
	require.NoError(t, err)
	assert.NoError(t, password.CompareHash(seller.PasswordHash, DemoSellerPassword))

	plans, err := st.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
	assert.Len(t, cache.ids, 2, "plan cache invalidated only on the first run")

	customers, err := st.ListCustomersBySeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	orders, err := st.ListOrdersBySeller(ctx, seller.ID, 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, models.StatusActive, o.Status)
		assert.Equal(t, 30, int(o.EndDate.Sub(o.StartDate).Hours()/24))
	}
}

func TestRun_WithoutDemo(t *testing.T) {
	st := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, st, testCfg, &planCacheStub{}, newNoopLogger()))

	_, err := st.GetUserByUsername(ctx, DemoSellerUsername)
	require.ErrorIs(t, err, storage.ErrNotFound)

	plans, err := st.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
