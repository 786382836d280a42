// Package admin реализует сводные отчёты администратора по всем продавцам и создание продавцов.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/password"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/validate"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/storage"
)

const (
	// SellersPageSize число продавцов на странице.
	SellersPageSize = 10
	// RecentOrdersLimit число заказов на главной странице администратора.
	RecentOrdersLimit = 5

	// MsgSellerRequired сообщение при незаполненных полях формы продавца.
	MsgSellerRequired = "Username, email and password are required fields"
	// MsgSellerExists сообщение при занятом имени пользователя или email.
	MsgSellerExists = "Username or email already exists"
)

// Repository хранилище для отчётов администратора.
type Repository interface {
	CountUsersByRole(ctx context.Context, role models.Role) (int, error)
	ListUsersByRole(ctx context.Context, role models.Role, limit, offset int) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	CountCustomers(ctx context.Context) (int, error)
	ListAllCustomers(ctx context.Context) ([]models.CustomerWithSeller, error)
	CountOrders(ctx context.Context) (int, error)
	ListAllOrders(ctx context.Context, limit int) ([]models.OrderView, error)
}

// Refresher приводит статусы прочитанных заказов к текущей дате.
type Refresher interface {
	Refresh(ctx context.Context, orders []models.OrderView)
}

// Service операции администратора. Только чтение, кроме AddSeller.
type Service struct {
	repo      Repository
	refresher Refresher
	sellers   prometheus.Counter
	validate  *validate.Validator
	log       *slog.Logger
}

// New создаёт Service. sellersCreated считает созданных продавцов.
func New(repo Repository, refresher Refresher, sellersCreated prometheus.Counter, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		refresher: refresher,
		sellers:   sellersCreated,
		validate:  validate.New(),
		log:       log,
	}
}

// Dashboard возвращает количество продавцов, клиентов, заказов и последние заказы.
func (s *Service) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	const op = "admin.Dashboard"

	sellers, err := s.repo.CountUsersByRole(ctx, models.RoleSeller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recent, err := s.repo.ListAllOrders(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.refresher.Refresh(ctx, recent)

	return &models.AdminDashboard{
		TotalSellers:   sellers,
		TotalCustomers: customers,
		TotalOrders:    orders,
		RecentOrders:   recent,
	}, nil
}

// ListSellers возвращает страницу page списка продавцов по SellersPageSize.
// page < 1 считается первой страницей, страница за концом списка пуста.
func (s *Service) ListSellers(ctx context.Context, page int) (*models.SellerPage, error) {
	const op = "admin.ListSellers"

	if page < 1 {
		page = 1
	}
	total, err := s.repo.CountUsersByRole(ctx, models.RoleSeller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.SellerPage{
		Sellers:  []models.User{},
		Page:     page,
		PageSize: SellersPageSize,
		Total:    total,
	}
	// Номер страницы проверяется до вычисления смещения, (page-1)*size переполняется.
	if page > result.Pages() {
		return result, nil
	}

	sellers, err := s.repo.ListUsersByRole(ctx, models.RoleSeller, SellersPageSize, (page-1)*SellersPageSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Sellers = sellers
	return result, nil
}

// ListCustomers возвращает всех клиентов с именами продавцов.
func (s *Service) ListCustomers(ctx context.Context) ([]models.CustomerWithSeller, error) {
	const op = "admin.ListCustomers"

	customers, err := s.repo.ListAllCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return customers, nil
}

// ListOrders возвращает все заказы, новые первыми, с актуальными статусами.
func (s *Service) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	const op = "admin.ListOrders"

	orders, err := s.repo.ListAllOrders(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.refresher.Refresh(ctx, orders)
	return orders, nil
}

// AddSeller создаёт продавца. Роль всегда seller, пароль сохраняется только в виде bcrypt-хэша.
// Занятые username или email возвращаются как models.ErrDuplicate.
func (s *Service) AddSeller(ctx context.Context, in models.NewSeller) (models.User, error) {
	const op = "admin.AddSeller"

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validate.Check(in, MsgSellerRequired); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.CreateUser(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleSeller,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.User{}, fmt.Errorf("%s: %w", op, models.ErrDuplicate)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.sellers.Inc()
	s.log.Info("seller created", slog.String("op", op), slog.Int64("user_id", user.ID))
	return user, nil
}
