// Package addcustomer обрабатывает форму добавления клиента продавцом.
package addcustomer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/seller"
)

const (
	formPath = "/seller/customer/add"
	listPath = "/seller/customers"

	// MsgCreated сообщение после добавления клиента.
	MsgCreated = "Customer added successfully!"
)

// Creator добавляет клиента продавцу.
type Creator interface {
	CreateCustomer(ctx context.Context, sellerID int64, in models.NewCustomer) (models.Customer, error)
}

// Handler обрабатывает GET и POST /seller/customer/add.
type Handler struct {
	log      *slog.Logger
	service  Creator
	sessions *session.Manager
	view     *view.Renderer
}

// New создаёт Handler.
func New(log *slog.Logger, service Creator, sessions *session.Manager, view *view.Renderer) *Handler {
	return &Handler{log: log, service: service, sessions: sessions, view: view}
}

// Form показывает пустую форму.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "seller/add_customer", "Add Customer", nil)
}

// Submit добавляет клиента текущему продавцу.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.seller.addcustomer.Submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form", sl.Err(err))
		h.view.Error(w, r, http.StatusBadRequest)
		return
	}

	_, err := h.service.CreateCustomer(r.Context(), identity.UserID, models.NewCustomer{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Address: r.PostForm.Get("address"),
	})
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Info("invalid customer form", slog.String("reason", validationErr.Message))
		h.sessions.SetFlash(w, r, session.CategoryDanger, validationErr.Message)
		http.Redirect(w, r, formPath, http.StatusSeeOther)
		return
	case errors.Is(err, models.ErrDuplicate):
		h.sessions.SetFlash(w, r, session.CategoryDanger, seller.MsgCustomerExists)
		http.Redirect(w, r, formPath, http.StatusSeeOther)
		return
	case err != nil:
		log.Error("failed to add customer", slog.Int64("seller_id", identity.UserID), sl.Err(err))
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}

	h.sessions.SetFlash(w, r, session.CategorySuccess, MsgCreated)
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
