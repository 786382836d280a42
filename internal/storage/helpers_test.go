package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/subscription-portal/internal/migrations"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// TestDataFactory создаёт тестовые записи через методы Storage.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создаёт фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создаёт пользователя с ролью role.
func (f *TestDataFactory) CreateUser(t *testing.T, username string, role models.Role) models.User {
	u, err := f.storage.CreateUser(context.Background(), models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

// CreateCustomer создаёт клиента продавца.
func (f *TestDataFactory) CreateCustomer(t *testing.T, sellerID int64, name, email string) models.Customer {
	c, err := f.storage.CreateCustomer(context.Background(), models.Customer{
		Name:     name,
		Email:    email,
		SellerID: sellerID,
	})
	require.NoError(t, err)
	return c
}

// CreatePlan создаёт тарифный план.
func (f *TestDataFactory) CreatePlan(t *testing.T, name, price string, days int) models.Plan {
	p, err := f.storage.CreatePlan(context.Background(), models.Plan{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		DurationDays: days,
	})
	require.NoError(t, err)
	return p
}

// CreateOrder создаёт заказ от имени продавца-владельца клиента.
func (f *TestDataFactory) CreateOrder(t *testing.T, seller models.User, customerID int64, plan models.Plan, start time.Time) models.Order {
	o, err := f.storage.CreateOrderForSeller(context.Background(), seller.ID, models.Order{
		CustomerID: customerID,
		PlanID:     plan.ID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, plan.DurationDays),
		Status:     models.StatusActive,
		CreatedBy:  seller.ID,
	})
	require.NoError(t, err)
	return o
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	require.NoError(t, migrations.Run(storage.DB), "Failed to apply migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}
