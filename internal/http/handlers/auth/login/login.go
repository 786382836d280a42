// Package login обрабатывает форму входа в портал.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/home"
	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/auth"
)

// MsgInvalidCredentials сообщение при неудачном входе.
const MsgInvalidCredentials = "Invalid username or password"

// Authenticator проверяет учётные данные и выпускает токен.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (string, models.Identity, error)
}

// Handler обрабатывает GET и POST /login.
type Handler struct {
	log      *slog.Logger
	auth     Authenticator
	sessions *session.Manager
	view     *view.Renderer
}

// New создаёт Handler.
func New(log *slog.Logger, auth Authenticator, sessions *session.Manager, view *view.Renderer) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		sessions: sessions,
		view:     view,
	}
}

// Form показывает форму входа. Уже вошедший пользователь уходит на свою главную страницу.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	if _, ok := middlewarectx.IdentityFrom(r.Context()); ok {
		http.Redirect(w, r, home.DashboardPath(r), http.StatusSeeOther)
		return
	}
	h.view.Render(w, r, http.StatusOK, "login", "Log in", nil)
}

// Submit проверяет учётные данные и записывает токен в cookie сессии.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.login.Submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form", sl.Err(err))
		h.view.Error(w, r, http.StatusBadRequest)
		return
	}

	token, identity, err := h.auth.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("login failed")
		h.sessions.SetFlash(w, r, session.CategoryDanger, MsgInvalidCredentials)
		http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Error("failed to log in", sl.Err(err))
		h.view.Error(w, r, http.StatusInternalServerError)
		return
	}

	h.sessions.SetToken(w, token)
	log.Info("user logged in", slog.Int64("user_id", identity.UserID), slog.String("role", string(identity.Role)))

	r = r.WithContext(middlewarectx.WithIdentity(r.Context(), identity))
	http.Redirect(w, r, home.DashboardPath(r), http.StatusSeeOther)
}
