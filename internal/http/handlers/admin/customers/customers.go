// Package customers показывает администратору всех клиентов.
package customers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Lister возвращает клиентов вместе с продавцами.
type Lister interface {
	ListCustomers(ctx context.Context) ([]models.CustomerWithSeller, error)
}

// Handler обрабатывает GET /admin/customers.
type Handler struct {
	log     *slog.Logger
	service Lister
	view    *view.Renderer
}

// New создаёт Handler.
func New(log *slog.Logger, service Lister, view *view.Renderer) *Handler {
	return &Handler{log: log, service: service, view: view}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.customers"

	list, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.log.Error("failed to list customers",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin/customers", "All Customers", list)
}
