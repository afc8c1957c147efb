package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	carthandler "storefront/internal/handlers/cart"
	cataloghandler "storefront/internal/handlers/catalog"
	checkouthandler "storefront/internal/handlers/checkout"
	dashboardhandler "storefront/internal/handlers/dashboard"
	orderhandler "storefront/internal/handlers/orders"
	userhandler "storefront/internal/handlers/users"
	"storefront/internal/middleware/auth"
	"storefront/internal/routes"
	cartservice "storefront/internal/service/cart"
	catalogservice "storefront/internal/service/catalog"
	checkoutservice "storefront/internal/service/checkout"
	dashboardservice "storefront/internal/service/dashboard"
	orderservice "storefront/internal/service/orders"
	userservice "storefront/internal/service/users"
	"storefront/pkg/config"
)

type Storage interface {
	catalogservice.ProductStorage
	cartservice.CartItemStorage
	checkoutservice.OrderStorage
	orderservice.OrderStorage
	userservice.UserStorage
	dashboardservice.StatsStorage
}

type App struct {
	log    *slog.Logger
	server *http.Server
}

// New wires services, handlers and routes. publisher may be nil.
func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	storage Storage,
	payments checkoutservice.PaymentGateway,
	publisher checkoutservice.EventPublisher,
) *App {
	catalogService := catalogservice.New(log, storage)
	cartService := cartservice.New(log, storage)
	checkoutService := checkoutservice.New(log, storage, payments, publisher)
	orderService := orderservice.New(log, storage)
	userService := userservice.New(log, storage)
	dashboardService := dashboardservice.New(log, storage)

	mux := http.NewServeMux()
	routes.New(
		auth.New(log, userService),
		cataloghandler.New(log, catalogService),
		carthandler.New(log, cartService),
		checkouthandler.New(log, checkoutService),
		orderhandler.New(log, orderService),
		userhandler.New(log, userService),
		dashboardhandler.New(log, dashboardService),
	).Register(mux)

	return &App{
		log: log,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

// Run serves until Shutdown is called.
func (a *App) Run() error {
	const op = "app.Run"

	a.log.Info("http server started", slog.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	const op = "app.Shutdown"

	a.log.Info("stopping http server")
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
