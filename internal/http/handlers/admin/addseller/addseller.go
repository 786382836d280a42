// Package addseller обрабатывает форму создания продавца.
package addseller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/admin"
)

const (
	formPath = "/admin/sellers/add"
	listPath = "/admin/sellers"
)

// Creator создаёт продавца.
type Creator interface {
	AddSeller(ctx context.Context, in models.NewSeller) (models.User, error)
}

// Handler обрабатывает GET и POST /admin/sellers/add.
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
	h.view.Render(w, r, http.StatusOK, "admin/add_seller", "Add Seller", nil)
}

// Submit создаёт продавца и перенаправляет на список продавцов.
// Ошибки формы возвращают на форму с сообщением.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.addseller.Submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form", sl.Err(err))
		h.view.Error(w, r, http.StatusBadRequest)
		return
	}

	user, err := h.service.AddSeller(r.Context(), models.NewSeller{
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	})
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Info("invalid seller form", slog.String("reason", validationErr.Message))
		h.sessions.SetFlash(w, r, session.CategoryDanger, validationErr.Message)
		http.Redirect(w, r, formPath, http.StatusSeeOther)
		return
	case errors.Is(err, models.ErrDuplicate):
		log.Info("seller already exists")
		h.sessions.SetFlash(w, r, session.CategoryDanger, admin.MsgSellerExists)
		http.Redirect(w, r, formPath, http.StatusSeeOther)
		return
	case err != nil:
		log.Error("failed to add seller", sl.Err(err))
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}

	h.sessions.SetFlash(w, r, session.CategorySuccess, fmt.Sprintf("New seller account created for %s!", user.Username))
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
