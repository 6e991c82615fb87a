package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/backend"
	"hmade-storefront/internal/cart"
	"hmade-storefront/internal/chat"
	"hmade-storefront/internal/checkout"
	"hmade-storefront/internal/config"
	"hmade-storefront/internal/handler"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/metrics"
	"hmade-storefront/internal/order"
	"hmade-storefront/internal/product"
	"hmade-storefront/internal/search"
	"hmade-storefront/internal/viewstate"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, prometheus.NewRegistry())
	if err != nil {
		logger.L().Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		logger.L().Info("storefront BFF listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.BackendURL),
			zap.String("env", cfg.AppEnv),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// newServer wires every component. The view sweepers run until ctx is done
// and close all mounted views on the way out.
func newServer(ctx context.Context, cfg *config.Config, reg *prometheus.Registry) (*http.Server, error) {
	m := metrics.New(reg)

	api, err := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, m)
	if err != nil {
		return nil, err
	}

	catalog := product.NewCatalog(api, cfg.ProductCacheTTL)
	addresses := address.NewService(api, cfg.LocationCacheTTL)
	orders := order.NewService(api)
	searcher := search.NewSearcher(api, search.Options{
		Debounce: cfg.SearchDebounce,
		Limit:    cfg.SearchLimit,
		CacheTTL: cfg.SearchCacheTTL,
	})

	carts := viewstate.New[*cart.View]("cart", cfg.ViewIdleTTL, m)
	flows := viewstate.New[*checkout.Flow]("checkout", cfg.ViewIdleTTL, m)
	sweepEvery := cfg.ViewIdleTTL / 2
	go carts.Run(ctx, sweepEvery)
	go flows.Run(ctx, sweepEvery)

	dialer := chat.NewWebsocketDialer()
	chatOpts := chat.Options{
		URL:            cfg.ChatURL,
		ReconnectDelay: cfg.ChatReconnectDelay,
		HistoryLimit:   cfg.ChatHistoryLimit,
		Metrics:        m,
	}

	h := handler.New(handler.Deps{
		Cart:      api,
		Catalog:   catalog,
		Checkout:  api,
		Addresses: addresses,
		Orders:    orders,
		Search:    searcher,
		Carts:     carts,
		Flows:     flows,
		NewChat: func() *chat.Client {
			return chat.NewClient(dialer, chatOpts)
		},
		ShippingWeight: cfg.ShippingWeight,
		AllowedOrigin:  cfg.AllowedOrigin,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),

		JWTSecret:         []byte(cfg.JWTSecret),
		AccessTokenCookie: cfg.AccessTokenCookie,
	})

	return &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
