package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/cache"
	"github.com/projectblurimedia/Veggie-Tracker/internal/database"
	"github.com/projectblurimedia/Veggie-Tracker/internal/handler"
	"github.com/projectblurimedia/Veggie-Tracker/internal/logger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
	"github.com/projectblurimedia/Veggie-Tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	log := logger.WithComponent("server")

	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	closers := make([]func() error, 0, 2)
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, sqlDB.Close)
	}

	statsCache := cache.StatsCache(cache.NoopStatsCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisStatsCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using noop stats cache")
		} else {
			statsCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Info().Str("addr", cfg.RedisAddr).Msg("stats cache: redis")
		}
	} else {
		log.Info().Msg("stats cache: noop")
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:      []byte(cfg.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookie:   cfg.ReleaseMode,
	}, handler.Services{
		Customers: service.NewCustomerService(customerRepo, orderRepo),
		Orders:    service.NewOrderService(orderRepo, customerRepo, txManager, statsCache, cfg.StatsCacheTTL),
		Expenses:  service.NewExpenseService(expenseRepo, txManager, statsCache, cfg.StatsCacheTTL),
		Items:     service.NewItemService(repository.NewItemRepository(db)),
		Users:     service.NewUserService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL),
	})

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Address()).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Error().Err(err).Msg("close error")
		}
	}

	log.Info().Msg("server stopped")
	return nil
}
