// Package session хранит токен сессии и одноразовые flash-сообщения в cookie.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const (
	// TokenCookie имя cookie с JWT сессии.
	TokenCookie = "session"
	// FlashCookie имя cookie с flash-сообщениями.
	FlashCookie = "flash"

	flashTTL = 5 * time.Minute
)

// Категории flash-сообщений.
const (
	CategorySuccess = "success"
	CategoryWarning = "warning"
	CategoryDanger  = "danger"
	CategoryInfo    = "info"
)

// Flash сообщение, показываемое один раз на следующей странице.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Manager выставляет и читает cookie сессии.
type Manager struct {
	ttl    time.Duration
	secure bool
}

// New создаёт Manager. ttl время жизни cookie сессии, secure выставляет атрибут Secure.
func New(ttl time.Duration, secure bool) *Manager {
	return &Manager{ttl: ttl, secure: secure}
}

// SetToken сохраняет токен сессии в HttpOnly cookie.
func (m *Manager) SetToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(TokenCookie, token, m.ttl))
}

// ClearToken удаляет cookie сессии.
func (m *Manager) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(TokenCookie, "", -1))
}

// Token возвращает токен сессии из запроса.
func (m *Manager) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(TokenCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// SetFlash добавляет сообщение к пришедшим в запросе и ещё не показанным.
func (m *Manager) SetFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	flashes := append(m.peek(r), Flash{Category: category, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, m.cookie(FlashCookie, base64.RawURLEncoding.EncodeToString(raw), flashTTL))
}

// PopFlashes возвращает сообщения из запроса и удаляет cookie.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	flashes := m.peek(r)
	if len(flashes) > 0 {
		http.SetCookie(w, m.cookie(FlashCookie, "", -1))
	}
	return flashes
}

func (m *Manager) peek(r *http.Request) []Flash {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}

func (m *Manager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	} else {
		c.MaxAge = int(ttl.Seconds())
	}
	return c
}
