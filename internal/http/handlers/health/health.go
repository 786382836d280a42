// Package health отдаёт состояние сервиса в JSON.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-portal/internal/http/response"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
)

// Checker проверяет доступность зависимости.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler обрабатывает GET /health.
type Handler struct {
	log     *slog.Logger
	db      Checker
	started time.Time
}

// New создаёт Handler. Время старта отсчитывается от вызова New.
func New(log *slog.Logger, db Checker) *Handler {
	return &Handler{
		log:     log,
		db:      db,
		started: time.Now(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	uptime := time.Since(h.started).Round(time.Second).String()
	if err := h.db.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
		"uptime": uptime,
	}))
}
