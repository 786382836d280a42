// Package logout завершает сессию пользователя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
)

// MsgLoggedOut сообщение после выхода.
const MsgLoggedOut = "You have been logged out."

// Handler обрабатывает POST /logout.
type Handler struct {
	log      *slog.Logger
	sessions *session.Manager
}

// New создаёт Handler.
func New(log *slog.Logger, sessions *session.Manager) *Handler {
	return &Handler{log: log, sessions: sessions}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if identity, ok := middlewarectx.IdentityFrom(r.Context()); ok {
		h.log.Info("user logged out",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int64("user_id", identity.UserID),
		)
	}
	h.sessions.ClearToken(w)
	h.sessions.SetFlash(w, r, session.CategoryInfo, MsgLoggedOut)
	http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
}
