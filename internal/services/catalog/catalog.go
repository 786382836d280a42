// Package catalog отдаёт справочник тарифных планов с кэшированием в Redis.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

const allPlansKey = "plans:all"

// PlanRepository источник тарифных планов.
type PlanRepository interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	GetPlan(ctx context.Context, id int64) (*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Service читает планы из кэша, при промахе из хранилища.
// Ошибки кэша не прерывают запрос: они логируются, данные берутся из хранилища.
type Service struct {
	repo  PlanRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создаёт Service.
func New(repo PlanRepository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, log: log}
}

// List возвращает все планы.
func (s *Service) List(ctx context.Context) ([]models.Plan, error) {
	const op = "catalog.List"

	var plans []models.Plan
	found, err := s.cache.Get(ctx, allPlansKey, &plans)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
	}
	if found {
		return plans, nil
	}

	plans, err = s.repo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, allPlansKey, plans, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("op", op), sl.Err(err))
	}
	return plans, nil
}

// Get возвращает план по id. Отсутствующий план возвращается ошибкой хранилища (storage.ErrNotFound).
func (s *Service) Get(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "catalog.Get"

	key := planKey(id)
	var plan models.Plan
	found, err := s.cache.Get(ctx, key, &plan)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
	}
	if found {
		return &plan, nil
	}

	p, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, p, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("op", op), sl.Err(err))
	}
	return p, nil
}

// Invalidate сбрасывает кэш списка и плана id.
func (s *Service) Invalidate(ctx context.Context, id int64) error {
	const op = "catalog.Invalidate"

	if err := s.cache.Invalidate(ctx, allPlansKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, planKey(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func planKey(id int64) string {
	return "plan:" + strconv.FormatInt(id, 10)
}
