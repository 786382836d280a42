// Package portal собирает зависимости портала и запускает HTTP-сервер.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subscription-portal/internal/bootstrap"
	"github.com/magabrotheeeer/subscription-portal/internal/cache"
	"github.com/magabrotheeeer/subscription-portal/internal/config"
	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/http/view"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/metrics"
	"github.com/magabrotheeeer/subscription-portal/internal/migrations"
	"github.com/magabrotheeeer/subscription-portal/internal/services/admin"
	"github.com/magabrotheeeer/subscription-portal/internal/services/auth"
	"github.com/magabrotheeeer/subscription-portal/internal/services/catalog"
	"github.com/magabrotheeeer/subscription-portal/internal/services/lifecycle"
	"github.com/magabrotheeeer/subscription-portal/internal/services/seller"
	"github.com/magabrotheeeer/subscription-portal/internal/storage"
)

const (
	tokenIssuer     = "subscription-portal"
	shutdownTimeout = 15 * time.Second
)

// App HTTP-сервер портала со всеми зависимостями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []io.Closer
}

// Services сервисы, которые обслуживают маршруты портала.
type Services struct {
	Auth     *auth.AuthService
	Seller   *seller.Service
	Admin    *admin.Service
	Health   *storage.Storage
	Sessions *session.Manager
	View     *view.Renderer
	Metrics  *metrics.Metrics
	Limiter  *middlewarectx.RateLimiter
}

// New подключается к базе, применяет миграции, выполняет первичную настройку и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "portal.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{logger: logger, db: db}

	if err := migrations.Run(db.DB); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var planCache catalog.Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache)
		planCache = redisCache
	} else {
		logger.Info("redis address is empty, plan cache disabled")
	}

	m := metrics.New()
	plans := catalog.New(db, planCache, cfg.PlanTTL, logger)
	reconciler := lifecycle.NewReconciler(db, m.OrdersExpired, logger)

	if err := bootstrap.Run(ctx, db, cfg.Bootstrap, plans, logger); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessions := session.New(cfg.SessionTTL, cfg.SecureCookie)
	renderer, err := view.New(sessions, logger)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	services := Services{
		Auth: auth.NewAuthService(db, jwt.NewJWTMaker(cfg.SecretKey, tokenIssuer, cfg.SessionTTL), m.LoginFailures, logger),
		Seller: seller.New(db, plans, reconciler, seller.Counters{
			Customers: m.CustomersCreated,
			Orders:    m.OrdersCreated,
		}, logger),
		Admin:    admin.New(db, reconciler, m.SellersCreated, logger),
		Health:   db,
		Sessions: sessions,
		View:     renderer,
		Metrics:  m,
		Limiter:  middlewarectx.NewRateLimiter(cfg.LoginLimit.RPS, cfg.LoginLimit.Burst),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
