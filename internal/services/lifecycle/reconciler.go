package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// ExpiryStore сохраняет переходы заказов в Expired.
type ExpiryStore interface {
	MarkExpired(ctx context.Context, ids []int64) (int64, error)
}

// Reconciler обновляет статусы прочитанных заказов и сохраняет изменения одним запросом.
type Reconciler struct {
	store   ExpiryStore
	expired prometheus.Counter
	log     *slog.Logger
	now     func() time.Time
}

// NewReconciler создаёт Reconciler. expired считает заказы, переведённые в Expired.
func NewReconciler(store ExpiryStore, expired prometheus.Counter, log *slog.Logger) *Reconciler {
	return &Reconciler{store: store, expired: expired, log: log, now: time.Now}
}

// Refresh приводит статусы orders к текущему моменту UTC: заказ истекает, как только
// момент чтения позже EndDate. Ошибка сохранения только логируется, запись повторится
// при следующем чтении.
func (r *Reconciler) Refresh(ctx context.Context, orders []models.OrderView) {
	const op = "lifecycle.Refresh"

	ids := RefreshAll(orders, r.now().UTC())
	if len(ids) == 0 {
		return
	}
	n, err := r.store.MarkExpired(ctx, ids)
	if err != nil {
		r.log.Warn("failed to persist expired orders", slog.String("op", op), sl.Err(err))
		return
	}
	r.expired.Add(float64(n))
	r.log.Debug("orders expired", slog.String("op", op), slog.Int64("count", n))
}

// Today возвращает полночь UTC даты t.
func Today(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
