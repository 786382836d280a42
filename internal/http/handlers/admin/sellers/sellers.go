// Package sellers показывает постраничный список продавцов.
package sellers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Lister возвращает страницу продавцов.
type Lister interface {
	ListSellers(ctx context.Context, page int) (*models.SellerPage, error)
}

// Handler обрабатывает GET /admin/sellers?page=N.
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
	const op = "handlers.admin.sellers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	data, err := h.service.ListSellers(r.Context(), page)
	if err != nil {
		log.Error("failed to list sellers", slog.Int("page", page), sl.Err(err))
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin/sellers", "Sellers", data)
}
