package orders_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/orders"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Mock for Lister
type ListerMock struct {
	mock.Mock
}

func (m *ListerMock) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderView), args.Error(1)
}

func TestOrders(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("shows seller and creator", func(t *testing.T) {
		_, renderer := handlertest.Setup(t)
		svc := new(ListerMock)
		svc.On("ListOrders", mock.Anything).Return([]models.OrderView{{
			Order: models.Order{
				ID: 1, StartDate: start, EndDate: start.AddDate(0, 0, 30),
				Status: models.StatusExpired, CreatedAt: start,
			},
			CustomerName: "John Doe", PlanName: "Basic",
			SellerUsername: "owner_seller", CreatorUsername: "creator_seller",
		}}, nil)

		rr := httptest.NewRecorder()
		orders.New(handlertest.NoopLogger(), svc, renderer).
			ServeHTTP(rr, handlertest.Get("/admin/orders", &handlertest.Admin))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		for _, want := range []string{"John Doe", "Basic", "owner_seller", "creator_seller", "2024-01-31", "Expired"} {
			assert.Contains(t, body, want)
		}
	})

	t.Run("service error", func(t *testing.T) {
		_, renderer := handlertest.Setup(t)
		svc := new(ListerMock)
		svc.On("ListOrders", mock.Anything).Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		orders.New(handlertest.NoopLogger(), svc, renderer).
			ServeHTTP(rr, handlertest.Get("/admin/orders", &handlertest.Admin))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
