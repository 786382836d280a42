// Package customers показывает клиентов продавца.
package customers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Lister возвращает клиентов продавца.
type Lister interface {
	ListCustomers(ctx context.Context, sellerID int64) ([]models.Customer, error)
}

// Handler обрабатывает GET /seller/customers.
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
	const op = "handlers.seller.customers"

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
		return
	}

	list, err := h.service.ListCustomers(r.Context(), identity.UserID)
	if err != nil {
		h.log.Error("failed to list customers",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int64("seller_id", identity.UserID),
			sl.Err(err),
		)
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}
	h.view.Render(w, r, http.StatusOK, "seller/customers", "My Customers", list)
}
