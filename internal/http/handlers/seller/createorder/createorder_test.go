package createorder_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/createorder"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/seller"
)

// Mock for Service
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) OrderFormOptions(ctx context.Context, sellerID int64) (*models.OrderFormOptions, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderFormOptions), args.Error(1)
}

func (m *ServiceMock) CreateOrder(ctx context.Context, sellerID int64, in models.NewOrder) (models.Order, error) {
	args := m.Called(ctx, sellerID, in)
	return args.Get(0).(models.Order), args.Error(1)
}

func TestForm(t *testing.T) {
	t.Run("lists customers and plans", func(t *testing.T) {
		sessions, renderer := handlertest.Setup(t)
		svc := new(ServiceMock)
		svc.On("OrderFormOptions", mock.Anything, handlertest.Seller.UserID).Return(&models.OrderFormOptions{
			Customers: []models.Customer{{ID: 7, Name: "John Doe", Email: "john@example.com"}},
			Plans:     []models.Plan{{ID: 3, Name: "Basic", Price: decimal.RequireFromString("29.99"), DurationDays: 30}},
		}, nil)

		rr := httptest.NewRecorder()
		createorder.New(handlertest.NoopLogger(), svc, sessions, renderer).
			Form(rr, handlertest.Get("/seller/order/create", &handlertest.Seller))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `<option value="7">John Doe`)
		assert.Contains(t, body, "Basic (29.99, 30 days)")
	})

	t.Run("no customers", func(t *testing.T) {
		sessions, renderer := handlertest.Setup(t)
		svc := new(ServiceMock)
		svc.On("OrderFormOptions", mock.Anything, handlertest.Seller.UserID).Return(&models.OrderFormOptions{
			Plans: []models.Plan{{ID: 3, Name: "Basic"}},
		}, nil)

		rr := httptest.NewRecorder()
		createorder.New(handlertest.NoopLogger(), svc, sessions, renderer).
			Form(rr, handlertest.Get("/seller/order/create", &handlertest.Seller))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "You have no customers yet.")
	})

	t.Run("service error", func(t *testing.T) {
		sessions, renderer := handlertest.Setup(t)
		svc := new(ServiceMock)
		svc.On("OrderFormOptions", mock.Anything, handlertest.Seller.UserID).Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		createorder.New(handlertest.NoopLogger(), svc, sessions, renderer).
			Form(rr, handlertest.Get("/seller/order/create", &handlertest.Seller))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestSubmit(t *testing.T) {
	in := models.NewOrder{CustomerID: "7", PlanID: "3", StartDate: "2024-01-01"}
	form := url.Values{"customer_id": {in.CustomerID}, "plan_id": {in.PlanID}, "start_date": {in.StartDate}}

	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantLocation string
		wantCategory string
		wantFlash    string
	}{
		{
			name:         "created",
			wantCode:     http.StatusSeeOther,
			wantLocation: "/seller/orders",
			wantCategory: session.CategorySuccess,
			wantFlash:    createorder.MsgCreated,
		},
		{
			name:         "foreign customer",
			err:          fmt.Errorf("seller.CreateOrder: %w", models.NewValidationError(seller.MsgInvalidCustomer)),
			wantCode:     http.StatusSeeOther,
			wantLocation: "/seller/order/create",
			wantCategory: session.CategoryDanger,
			wantFlash:    seller.MsgInvalidCustomer,
		},
		{
			name:         "bad date",
			err:          fmt.Errorf("seller.CreateOrder: %w", models.NewValidationError(seller.MsgInvalidDate)),
			wantCode:     http.StatusSeeOther,
			wantLocation: "/seller/order/create",
			wantCategory: session.CategoryDanger,
			wantFlash:    seller.MsgInvalidDate,
		},
		{
			name:     "unexpected error",
			err:      errors.New("db down"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, renderer := handlertest.Setup(t)
			svc := new(ServiceMock)
			svc.On("CreateOrder", mock.Anything, handlertest.Seller.UserID, in).Return(models.Order{ID: 1}, tt.err).Once()

			rr := httptest.NewRecorder()
			createorder.New(handlertest.NoopLogger(), svc, sessions, renderer).
				Submit(rr, handlertest.PostForm("/seller/order/create", form, &handlertest.Seller))

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantFlash != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
				flashes := handlertest.Flashes(t, rr)
				require.Len(t, flashes, 1)
				assert.Equal(t, tt.wantCategory, flashes[0].Category)
				assert.Equal(t, tt.wantFlash, flashes[0].Message)
			}
			svc.AssertExpectations(t)
		})
	}
}
