package portal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/addseller"
	admincustomers "github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/customers"
	admindashboard "github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/dashboard"
	adminorders "github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/orders"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/admin/sellers"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/home"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/addcustomer"
	"github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/createorder"
	sellercustomers "github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/customers"
	sellerdashboard "github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/dashboard"
	sellerorders "github.com/magabrotheeeer/subscription-portal/internal/http/handlers/seller/orders"
	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// RegisterRoutes регистрирует все маршруты портала.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		s.Metrics.Middleware,
		middlewarectx.Authenticate(s.Auth, s.Sessions, logger),
	)

	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", s.Metrics.Handler())
	r.Get("/", home.New().ServeHTTP)

	loginHandler := login.New(logger, s.Auth, s.Sessions, s.View)
	r.Get("/login", loginHandler.Form)
	r.With(middlewarectx.RateLimitMiddleware(s.Limiter, s.Sessions, logger)).Post("/login", loginHandler.Submit)
	r.Post("/logout", logout.New(logger, s.Sessions).ServeHTTP)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth(s.Sessions))
		r.Use(middlewarectx.RequireRole(models.RoleAdmin, s.Sessions, logger))

		addSeller := addseller.New(logger, s.Admin, s.Sessions, s.View)
		r.Get("/dashboard", admindashboard.New(logger, s.Admin, s.View).ServeHTTP)
		r.Get("/sellers", sellers.New(logger, s.Admin, s.View).ServeHTTP)
		r.Get("/sellers/add", addSeller.Form)
		r.Post("/sellers/add", addSeller.Submit)
		r.Get("/customers", admincustomers.New(logger, s.Admin, s.View).ServeHTTP)
		r.Get("/orders", adminorders.New(logger, s.Admin, s.View).ServeHTTP)
	})

	r.Route("/seller", func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth(s.Sessions))
		r.Use(middlewarectx.RequireRole(models.RoleSeller, s.Sessions, logger))

		addCustomer := addcustomer.New(logger, s.Seller, s.Sessions, s.View)
		createOrder := createorder.New(logger, s.Seller, s.Sessions, s.View)
		r.Get("/dashboard", sellerdashboard.New(logger, s.Seller, s.View).ServeHTTP)
		r.Get("/customers", sellercustomers.New(logger, s.Seller, s.View).ServeHTTP)
		r.Get("/customer/add", addCustomer.Form)
		r.Post("/customer/add", addCustomer.Submit)
		r.Get("/orders", sellerorders.New(logger, s.Seller, s.View).ServeHTTP)
		r.Get("/order/create", createOrder.Form)
		r.Post("/order/create", createOrder.Submit)
	})
}
