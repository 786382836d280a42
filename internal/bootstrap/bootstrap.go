// Package bootstrap создаёт администратора по умолчанию и, по желанию, демонстрационные данные.
// Оба шага идемпотентны и выполняются при старте после миграций.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-portal/internal/config"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/password"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/lifecycle"
	"github.com/magabrotheeeer/subscription-portal/internal/storage"
)

// Учётная запись демонстрационного продавца.
const (
	DemoSellerUsername = "testseller"
	DemoSellerEmail    = "seller@example.com"
	DemoSellerPassword = "seller123"
)

// UserStore хранилище пользователей.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// PlanCache сбрасывает кэш тарифных планов.
type PlanCache interface {
	Invalidate(ctx context.Context, id int64) error
}

// Run создаёт администратора и, если включено в настройках, демонстрационные данные.
func Run(ctx context.Context, st *storage.Storage, cfg config.Bootstrap, plans PlanCache, log *slog.Logger) error {
	const op = "bootstrap.Run"

	if err := EnsureAdmin(ctx, st, cfg, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !cfg.SeedDemo {
		return nil
	}
	seeded, err := SeedDemo(ctx, st, log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range seeded {
		if err := plans.Invalidate(ctx, p.ID); err != nil {
			log.Warn("failed to invalidate plan cache", slog.String("op", op), sl.Err(err))
		}
	}
	return nil
}

// EnsureAdmin создаёт администратора из настроек, если пользователя с таким именем ещё нет.
func EnsureAdmin(ctx context.Context, users UserStore, cfg config.Bootstrap, log *slog.Logger) error {
	const op = "bootstrap.EnsureAdmin"

	_, err := users.GetUserByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		log.Debug("admin already exists", slog.String("username", cfg.AdminUsername))
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = users.CreateUser(ctx, models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		// Конфликт по имени означает, что админа создал параллельный экземпляр.
		// Иначе email занят другим пользователем, и админа нет.
		if _, lookupErr := users.GetUserByUsername(ctx, cfg.AdminUsername); lookupErr == nil {
			log.Debug("admin created concurrently", slog.String("username", cfg.AdminUsername))
			return nil
		}
		return fmt.Errorf("%s: admin %q not created, email %q is taken: %w", op, cfg.AdminUsername, cfg.AdminEmail, err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("default admin created", slog.String("username", cfg.AdminUsername))
	return nil
}

// SeedDemo в одной транзакции создаёт продавца testseller, планы Basic и Premium,
// двух клиентов и по заказу на каждого. Если продавец уже есть, ничего не делает.
// Возвращает созданные планы.
func SeedDemo(ctx context.Context, st *storage.Storage, log *slog.Logger) ([]models.Plan, error) {
	const op = "bootstrap.SeedDemo"

	_, err := st.GetUserByUsername(ctx, DemoSellerUsername)
	if err == nil {
		log.Debug("demo data already present")
		return nil, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(DemoSellerPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var plans []models.Plan
	err = st.InTx(ctx, func(tx *storage.Storage) error {
		seller, err := tx.CreateUser(ctx, models.User{
			Username:     DemoSellerUsername,
			Email:        DemoSellerEmail,
			PasswordHash: hash,
			Role:         models.RoleSeller,
		})
		if err != nil {
			return err
		}

		for _, p := range demoPlans() {
			created, err := tx.CreatePlan(ctx, p)
			if err != nil {
				return err
			}
			plans = append(plans, created)
		}

		var customers []models.Customer
		for _, c := range demoCustomers(seller.ID) {
			created, err := tx.CreateCustomer(ctx, c)
			if err != nil {
				return err
			}
			customers = append(customers, created)
		}

		today := lifecycle.Today(time.Now())
		starts := []time.Time{today, today.AddDate(0, 0, -15)}
		for i, c := range customers {
			order := models.Order{
				CustomerID: c.ID,
				PlanID:     plans[i].ID,
				StartDate:  starts[i],
				Status:     models.StatusActive,
				CreatedBy:  seller.ID,
			}
			lifecycle.ComputeEndDate(&order, &plans[i])
			if _, err := tx.CreateOrderForSeller(ctx, seller.ID, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("demo data created",
		slog.String("seller", DemoSellerUsername),
		slog.Int("plans", len(plans)),
	)
	return plans, nil
}

func demoPlans() []models.Plan {
	return []models.Plan{
		{
			Name:         "Basic",
			Description:  "Basic subscription plan",
			Price:        decimal.RequireFromString("29.99"),
			DurationDays: 30,
		},
		{
			Name:         "Premium",
			Description:  "Premium subscription plan with all features",
			Price:        decimal.RequireFromString("49.99"),
			DurationDays: 30,
		},
	}
}

func demoCustomers(sellerID int64) []models.Customer {
	return []models.Customer{
		{
			Name:     "John Doe",
			Email:    "john@example.com",
			Phone:    "1234567890",
			Address:  "123 Main St, City",
			SellerID: sellerID,
		},
		{
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Phone:    "0987654321",
			Address:  "456 Oak Ave, Town",
			SellerID: sellerID,
		},
	}
}
