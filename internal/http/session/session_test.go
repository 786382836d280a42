package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestToken(t *testing.T) {
	m := New(time.Hour, true)

	rr := httptest.NewRecorder()
	m.SetToken(rr, "abc")
	c := findCookie(rr, TokenCookie)
	require.NotNil(t, c)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, 3600, c.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	token, ok := m.Token(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	rr = httptest.NewRecorder()
	m.ClearToken(rr)
	c = findCookie(rr, TokenCookie)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)

	_, ok = m.Token(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestFlash_RoundTrip(t *testing.T) {
	m := New(time.Hour, false)

	rr := httptest.NewRecorder()
	m.SetFlash(rr, httptest.NewRequest(http.MethodPost, "/", nil), CategoryWarning, "Invalid date format")
	c := findCookie(rr, FlashCookie)
	require.NotNil(t, c)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rr = httptest.NewRecorder()
	flashes := m.PopFlashes(rr, req)

	require.Len(t, flashes, 1)
	assert.Equal(t, Flash{Category: CategoryWarning, Message: "Invalid date format"}, flashes[0])
	cleared := findCookie(rr, FlashCookie)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestFlash_Appends(t *testing.T) {
	m := New(time.Hour, false)

	rr := httptest.NewRecorder()
	m.SetFlash(rr, httptest.NewRequest(http.MethodGet, "/", nil), CategoryInfo, "first")
	first := findCookie(rr, FlashCookie)
	require.NotNil(t, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(first)
	rr = httptest.NewRecorder()
	m.SetFlash(rr, req, CategorySuccess, "second")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(findCookie(rr, FlashCookie))
	flashes := m.PopFlashes(httptest.NewRecorder(), req)
	require.Len(t, flashes, 2)
	assert.Equal(t, "second", flashes[1].Message)
}

func TestFlash_GarbageIgnored(t *testing.T) {
	m := New(time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookie, Value: "not-base64!"})

	assert.Empty(t, m.PopFlashes(httptest.NewRecorder(), req))
}
