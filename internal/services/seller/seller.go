// Package seller реализует операции продавца. Все чтения и записи ограничены
// клиентами, принадлежащими продавцу.
package seller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/validate"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/lifecycle"
	"github.com/magabrotheeeer/subscription-portal/internal/storage"
)

// RecentOrdersLimit число заказов на главной странице продавца.
const RecentOrdersLimit = 5

// Сообщения об ошибках форм.
const (
	MsgCustomerRequired = "Name and email are required fields"
	MsgCustomerExists   = "A customer with this email already exists"
	MsgOrderRequired    = "All fields are required"
	MsgInvalidCustomer  = "Invalid customer selected"
	MsgInvalidPlan      = "Invalid subscription plan selected"
	MsgInvalidDate      = "Invalid date format"
)

// Repository хранилище данных продавца.
type Repository interface {
	ListCustomersBySeller(ctx context.Context, sellerID int64) ([]models.Customer, error)
	CountCustomersBySeller(ctx context.Context, sellerID int64) (int, error)
	GetCustomerForSeller(ctx context.Context, sellerID, customerID int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	CountOrdersBySeller(ctx context.Context, sellerID int64) (int, error)
	ListOrdersBySeller(ctx context.Context, sellerID int64, limit int) ([]models.OrderView, error)
	CreateOrderForSeller(ctx context.Context, sellerID int64, o models.Order) (models.Order, error)
}

// Plans справочник тарифных планов.
type Plans interface {
	List(ctx context.Context) ([]models.Plan, error)
	Get(ctx context.Context, id int64) (*models.Plan, error)
}

// Refresher приводит статусы прочитанных заказов к текущей дате.
type Refresher interface {
	Refresh(ctx context.Context, orders []models.OrderView)
}

// Counters счётчики созданных записей.
type Counters struct {
	Customers prometheus.Counter
	Orders    prometheus.Counter
}

// Service операции продавца.
type Service struct {
	repo      Repository
	plans     Plans
	refresher Refresher
	counters  Counters
	validate  *validate.Validator
	log       *slog.Logger
}

// New создаёт Service.
func New(repo Repository, plans Plans, refresher Refresher, counters Counters, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		plans:     plans,
		refresher: refresher,
		counters:  counters,
		validate:  validate.New(),
		log:       log,
	}
}

// ListCustomers возвращает клиентов продавца.
func (s *Service) ListCustomers(ctx context.Context, sellerID int64) ([]models.Customer, error) {
	const op = "seller.ListCustomers"

	customers, err := s.repo.ListCustomersBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return customers, nil
}

// CountCustomers считает клиентов продавца.
func (s *Service) CountCustomers(ctx context.Context, sellerID int64) (int, error) {
	const op = "seller.CountCustomers"

	n, err := s.repo.CountCustomersBySeller(ctx, sellerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountOrders считает заказы клиентов продавца.
func (s *Service) CountOrders(ctx context.Context, sellerID int64) (int, error) {
	const op = "seller.CountOrders"

	n, err := s.repo.CountOrdersBySeller(ctx, sellerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListOrders возвращает все заказы клиентов продавца, новые первыми, с актуальными статусами.
func (s *Service) ListOrders(ctx context.Context, sellerID int64) ([]models.OrderView, error) {
	return s.orders(ctx, "seller.ListOrders", sellerID, 0)
}

// RecentOrders возвращает limit последних заказов продавца.
func (s *Service) RecentOrders(ctx context.Context, sellerID int64, limit int) ([]models.OrderView, error) {
	return s.orders(ctx, "seller.RecentOrders", sellerID, limit)
}

func (s *Service) orders(ctx context.Context, op string, sellerID int64, limit int) ([]models.OrderView, error) {
	orders, err := s.repo.ListOrdersBySeller(ctx, sellerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.refresher.Refresh(ctx, orders)
	return orders, nil
}

// Dashboard собирает сводку для главной страницы продавца.
func (s *Service) Dashboard(ctx context.Context, sellerID int64) (*models.SellerDashboard, error) {
	const op = "seller.Dashboard"

	customers, err := s.CountCustomers(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	orders, err := s.CountOrders(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recent, err := s.RecentOrders(ctx, sellerID, RecentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.SellerDashboard{
		CustomerCount: customers,
		OrderCount:    orders,
		RecentOrders:  recent,
	}, nil
}

// CreateCustomer добавляет клиента продавцу sellerID.
// Ошибки данных возвращаются как *models.ValidationError, повтор email как models.ErrDuplicate.
func (s *Service) CreateCustomer(ctx context.Context, sellerID int64, in models.NewCustomer) (models.Customer, error) {
	const op = "seller.CreateCustomer"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	if err := s.validate.Check(in, MsgCustomerRequired); err != nil {
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	customer, err := s.repo.CreateCustomer(ctx, models.Customer{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		SellerID: sellerID,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.Customer{}, fmt.Errorf("%s: %w", op, models.ErrDuplicate)
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	s.counters.Customers.Inc()
	s.log.Info("customer created",
		slog.String("op", op),
		slog.Int64("seller_id", sellerID),
		slog.Int64("customer_id", customer.ID),
	)
	return customer, nil
}

// CreateOrder создаёт заказ для клиента продавца. Дата окончания вычисляется по плану,
// статус Active, автор sellerID. Чужой и несуществующий клиент дают одно и то же сообщение.
func (s *Service) CreateOrder(ctx context.Context, sellerID int64, in models.NewOrder) (models.Order, error) {
	const op = "seller.CreateOrder"

	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.PlanID = strings.TrimSpace(in.PlanID)
	in.StartDate = strings.TrimSpace(in.StartDate)

	if err := s.validate.Check(in, MsgOrderRequired); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	customerID, err := strconv.ParseInt(in.CustomerID, 10, 64)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, models.NewValidationError(MsgInvalidCustomer))
	}
	if _, err := s.repo.GetCustomerForSeller(ctx, sellerID, customerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Order{}, fmt.Errorf("%s: %w", op, models.NewValidationError(MsgInvalidCustomer))
		}
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	planID, err := strconv.ParseInt(in.PlanID, 10, 64)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, models.NewValidationError(MsgInvalidPlan))
	}
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Order{}, fmt.Errorf("%s: %w", op, models.NewValidationError(MsgInvalidPlan))
		}
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	start, err := time.Parse(models.DateLayout, in.StartDate)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, models.NewValidationError(MsgInvalidDate))
	}

	order := models.Order{
		CustomerID: customerID,
		PlanID:     plan.ID,
		StartDate:  start,
		Status:     models.StatusActive,
		CreatedBy:  sellerID,
	}
	lifecycle.ComputeEndDate(&order, plan)

	created, err := s.repo.CreateOrderForSeller(ctx, sellerID, order)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Order{}, fmt.Errorf("%s: %w", op, models.NewValidationError(MsgInvalidCustomer))
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.counters.Orders.Inc()
	s.log.Info("order created",
		slog.String("op", op),
		slog.Int64("seller_id", sellerID),
		slog.Int64("order_id", created.ID),
		slog.String("end_date", created.EndDate.Format(models.DateLayout)),
	)
	return created, nil
}

// OrderFormOptions возвращает клиентов продавца и все планы для формы заказа.
func (s *Service) OrderFormOptions(ctx context.Context, sellerID int64) (*models.OrderFormOptions, error) {
	const op = "seller.OrderFormOptions"

	customers, err := s.ListCustomers(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.OrderFormOptions{Customers: customers, Plans: plans}, nil
}
