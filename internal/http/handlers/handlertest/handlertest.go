// Package handlertest содержит общие помощники для тестов HTTP-обработчиков.
package handlertest

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

var (
	// Admin тестовый администратор.
	Admin = models.Identity{UserID: 1, Username: "admin", Role: models.RoleAdmin}
	// Seller тестовый продавец.
	Seller = models.Identity{UserID: 2, Username: "testseller", Role: models.RoleSeller}
)

// NoopLogger логгер, который ничего не пишет.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Setup возвращает менеджер сессий и рендерер встроенных шаблонов.
func Setup(t *testing.T) (*session.Manager, *view.Renderer) {
	t.Helper()
	sessions := session.New(time.Hour, false)
	renderer, err := view.New(sessions, NoopLogger())
	require.NoError(t, err)
	return sessions, renderer
}

// Get строит GET-запрос от имени identity, nil означает анонимный запрос.
func Get(target string, identity *models.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return withIdentity(req, identity)
}

// PostForm строит POST-запрос с полями формы от имени identity.
func PostForm(target string, form url.Values, identity *models.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withIdentity(req, identity)
}

func withIdentity(req *http.Request, identity *models.Identity) *http.Request {
	if identity == nil {
		return req
	}
	return req.WithContext(middlewarectx.WithIdentity(req.Context(), *identity))
}

// Flashes возвращает flash-сообщения, записанные в ответ.
func Flashes(t *testing.T, rr *httptest.ResponseRecorder) []session.Flash {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name != session.FlashCookie || c.Value == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(c.Value)
		require.NoError(t, err)
		var flashes []session.Flash
		require.NoError(t, json.Unmarshal(raw, &flashes))
		return flashes
	}
	return nil
}

// Cookie возвращает cookie ответа с именем name или nil.
func Cookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
