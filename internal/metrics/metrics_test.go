package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/admin/sellers", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for range 3 {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/sellers?page=2", nil))
		require.Equal(t, http.StatusTeapot, rr.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("/admin/sellers", http.MethodGet, "418"))
	assert.Equal(t, float64(3), got)
}

func TestHandler_ExposesDomainCounters(t *testing.T) {
	m := New()
	m.OrdersCreated.Inc()
	m.LoginFailures.Add(2)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "portal_orders_created_total 1"))
	assert.True(t, strings.Contains(body, "portal_login_failures_total 2"))
	assert.True(t, strings.Contains(body, "portal_customers_created_total 0"))
}
