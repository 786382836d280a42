// Package dashboard показывает главную страницу администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Reporter собирает сводку по всем продавцам.
type Reporter interface {
	Dashboard(ctx context.Context) (*models.AdminDashboard, error)
}

// Handler обрабатывает GET /admin/dashboard.
type Handler struct {
	log     *slog.Logger
	service Reporter
	view    *view.Renderer
}

// New создаёт Handler.
func New(log *slog.Logger, service Reporter, view *view.Renderer) *Handler {
	return &Handler{log: log, service: service, view: view}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

	data, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.log.Error("failed to build dashboard",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin/dashboard", "Admin Dashboard", data)
}
