package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(0.001, 2)
	h := middlewarectx.RateLimitMiddleware(limiter, session.New(time.Hour, false), newNoopLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001").Code)

	rr := send("10.0.0.1:1002")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, middlewarectx.LoginPath, rr.Header().Get("Location"))
	flashes := flashMessages(t, rr)
	if assert.Len(t, flashes, 1) {
		assert.Equal(t, middlewarectx.MsgTooManyAttempts, flashes[0].Message)
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code, "other clients are not limited")
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(0.001, 1)
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))
}
