// Package middlewarectx содержит HTTP middleware портала: разбор сессии,
// проверку аутентификации и роли, ограничение частоты попыток входа.
//
// Authenticate кладёт models.Identity в контекст, если cookie сессии содержит валидный токен.
// RequireAuth и RequireRole перенаправляют на /login с flash-сообщением, когда доступ запрещён.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey ключ пользователя сессии в контексте.
const IdentityKey Key = "identity"

// LoginPath страница входа, на которую перенаправляются неавторизованные запросы.
const LoginPath = "/login"

// Сообщения при отказе в доступе.
const (
	MsgLoginRequired    = "Please log in to access this page."
	MsgPermissionDenied = "You do not have permission to access this page."
)

// TokenValidator описывает проверку токена сессии.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (models.Identity, error)
}

// WithIdentity возвращает контекст с пользователем сессии.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// IdentityFrom возвращает пользователя сессии из контекста.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(models.Identity)
	return identity, ok
}

// Authenticate разбирает cookie сессии. Невалидный токен удаляется, запрос продолжается анонимно.
func Authenticate(validator TokenValidator, sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			token, ok := sessions.Token(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			identity, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				log.Debug("invalid session token",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				sessions.ClearToken(w)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAuth пропускает только аутентифицированные запросы.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFrom(r.Context()); !ok {
				sessions.SetFlash(w, r, session.CategoryInfo, MsgLoginRequired)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole пропускает только пользователей с ролью role. Ставится после RequireAuth.
func RequireRole(role models.Role, sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok || identity.Role != role {
				log.Warn("access denied",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("role", string(identity.Role)),
				)
				sessions.SetFlash(w, r, session.CategoryWarning, MsgPermissionDenied)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
