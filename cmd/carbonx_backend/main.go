package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/adapters/database/pgsql"
	"github.com/SscSPs/carbonx_exchange/internal/adapters/memory"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	"github.com/SscSPs/carbonx_exchange/internal/core/services"
	"github.com/SscSPs/carbonx_exchange/internal/handlers"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/SscSPs/carbonx_exchange/internal/notifier"
	"github.com/SscSPs/carbonx_exchange/internal/platform/config"
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
	"github.com/SscSPs/carbonx_exchange/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title CarbonX Exchange API
// @version 1.0
// @description Carbon credit marketplace: listings, purchases, wallets and a live update stream.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New()
	changeNotifier := notifier.New(repos.LedgerStore,
		notifier.WithQueueSize(cfg.NotifierQueueSize),
		notifier.WithDeliveryTimeout(cfg.NotifierDeliveryTimeout),
		notifier.WithRecentTransactions(cfg.RecentTransactionsWindow),
		notifier.WithLogger(logger.With(slog.String("component", "notifier"))),
		notifier.WithMetrics(m),
	)

	container, err := services.NewServiceContainer(repos, changeNotifier, m, services.DefaultCompanySeeds())
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.New(corsConfig(cfg)))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, m); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// hijacked websocket connections are not covered by Shutdown
		changeNotifier.Close()
		return err
	})
	return g.Wait()
}

// openStore selects the ledger store backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver != config.StoreDriverPostgres {
		store := memory.NewLedgerStore(memory.WithDefaultBalance(cfg.DefaultWalletBalance))
		logger.Info("Using in-memory ledger store")
		return portsrepo.RepositoryProvider{LedgerStore: store}, func() {}, nil
	}

	logger.Info("Running database migrations...")
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool, cfg.DefaultWalletBalance), func() { database.ClosePgxPool(dbPool) }, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 || slices.Contains(cfg.CORSAllowedOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}
