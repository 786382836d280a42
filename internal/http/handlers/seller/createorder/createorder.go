// Package createorder обрабатывает форму создания заказа.
package createorder

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
)

const (
	formPath = "/seller/order/create"
	listPath = "/seller/orders"

	// MsgCreated сообщение после создания заказа.
	MsgCreated = "Order created successfully!"
)

// Service операции продавца, нужные форме заказа.
type Service interface {
	OrderFormOptions(ctx context.Context, sellerID int64) (*models.OrderFormOptions, error)
	CreateOrder(ctx context.Context, sellerID int64, in models.NewOrder) (models.Order, error)
}

// Handler обрабатывает GET и POST /seller/order/create.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions *session.Manager
	view     *view.Renderer
}

// New создаёт Handler.
func New(log *slog.Logger, service Service, sessions *session.Manager, view *view.Renderer) *Handler {
	return &Handler{log: log, service: service, sessions: sessions, view: view}
}

// Form показывает форму с клиентами продавца и всеми планами.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.seller.createorder.Form"

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
		return
	}

	options, err := h.service.OrderFormOptions(r.Context(), identity.UserID)
	if err != nil {
		h.log.Error("failed to load order form options",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int64("seller_id", identity.UserID),
			sl.Err(err),
		)
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}
	h.view.Render(w, r, http.StatusOK, "seller/create_order", "Create Order", options)
}

// Submit создаёт заказ для клиента текущего продавца.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.seller.createorder.Submit"

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

	_, err := h.service.CreateOrder(r.Context(), identity.UserID, models.NewOrder{
		CustomerID: r.PostForm.Get("customer_id"),
		PlanID:     r.PostForm.Get("plan_id"),
		StartDate:  r.PostForm.Get("start_date"),
	})
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Info("invalid order form",
			slog.Int64("seller_id", identity.UserID),
			slog.String("reason", validationErr.Message),
		)
		h.sessions.SetFlash(w, r, session.CategoryDanger, validationErr.Message)
		http.Redirect(w, r, formPath, http.StatusSeeOther)
		return
	case err != nil:
		log.Error("failed to create order", slog.Int64("seller_id", identity.UserID), sl.Err(err))
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}

	h.sessions.SetFlash(w, r, session.CategorySuccess, MsgCreated)
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
