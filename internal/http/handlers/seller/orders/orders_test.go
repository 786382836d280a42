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

	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/orders"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Mock for Lister
type ListerMock struct {
	mock.Mock
}

func (m *ListerMock) ListOrders(ctx context.Context, sellerID int64) ([]models.OrderView, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderView), args.Error(1)
}

func TestOrders(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("lists own orders", func(t *testing.T) {
		_, renderer := handlertest.Setup(t)
		svc := new(ListerMock)
		svc.On("ListOrders", mock.Anything, handlertest.Seller.UserID).Return([]models.OrderView{{
			Order:        models.Order{ID: 4, StartDate: start, EndDate: start.AddDate(0, 0, 30), Status: models.StatusActive},
			CustomerName: "Jane Smith",
			PlanName:     "Premium",
		}}, nil).Once()

		rr := httptest.NewRecorder()
		orders.New(handlertest.NoopLogger(), svc, renderer).
			ServeHTTP(rr, handlertest.Get("/seller/orders", &handlertest.Seller))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		for _, want := range []string{"Jane Smith", "Premium", "2024-01-01", "2024-01-31", "status-Active"} {
			assert.Contains(t, body, want)
		}
		svc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		_, renderer := handlertest.Setup(t)
		svc := new(ListerMock)
		svc.On("ListOrders", mock.Anything, handlertest.Seller.UserID).Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		orders.New(handlertest.NoopLogger(), svc, renderer).
			ServeHTTP(rr, handlertest.Get("/seller/orders", &handlertest.Seller))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
