// Package home перенаправляет с корня на главную страницу роли пользователя.
package home

import (
	"net/http"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Handler обрабатывает GET /.
type Handler struct{}

// New создаёт Handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DashboardPath(r), http.StatusSeeOther)
}

// DashboardPath главная страница пользователя запроса, /login для анонимного.
func DashboardPath(r *http.Request) string {
	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		return middlewarectx.LoginPath
	}
	switch identity.Role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleSeller:
		return "/seller/dashboard"
	default:
		return middlewarectx.LoginPath
	}
}
