package sellers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/sellers"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Mock for Lister
type ListerMock struct {
	mock.Mock
}

func (m *ListerMock) ListSellers(ctx context.Context, page int) (*models.SellerPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SellerPage), args.Error(1)
}

func TestSellers_PageParam(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantPage int
	}{
		{name: "no page", target: "/admin/sellers", wantPage: 1},
		{name: "explicit page", target: "/admin/sellers?page=3", wantPage: 3},
		{name: "not a number", target: "/admin/sellers?page=abc", wantPage: 1},
		{name: "negative passed through", target: "/admin/sellers?page=-2", wantPage: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, renderer := handlertest.Setup(t)
			svc := new(ListerMock)
			svc.On("ListSellers", mock.Anything, tt.wantPage).Return(&models.SellerPage{
				Sellers: []models.User{}, Page: 1, PageSize: 10,
			}, nil).Once()

			rr := httptest.NewRecorder()
			sellers.New(handlertest.NoopLogger(), svc, renderer).
				ServeHTTP(rr, handlertest.Get(tt.target, &handlertest.Admin))

			assert.Equal(t, http.StatusOK, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestSellers_Render(t *testing.T) {
	_, renderer := handlertest.Setup(t)
	svc := new(ListerMock)
	svc.On("ListSellers", mock.Anything, 2).Return(&models.SellerPage{
		Sellers:  []models.User{{ID: 12, Username: "seller_11", Email: "s11@example.com"}},
		Page:     2,
		PageSize: 10,
		Total:    11,
	}, nil)

	rr := httptest.NewRecorder()
	sellers.New(handlertest.NoopLogger(), svc, renderer).
		ServeHTTP(rr, handlertest.Get("/admin/sellers?page=2", &handlertest.Admin))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "seller_11")
	assert.Contains(t, body, "Page 2 of 2")
	assert.Contains(t, body, "page=1")
	assert.NotContains(t, body, "page=3")
}

func TestSellers_Error(t *testing.T) {
	_, renderer := handlertest.Setup(t)
	svc := new(ListerMock)
	svc.On("ListSellers", mock.Anything, 1).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	sellers.New(handlertest.NoopLogger(), svc, renderer).
		ServeHTTP(rr, handlertest.Get("/admin/sellers", &handlertest.Admin))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
