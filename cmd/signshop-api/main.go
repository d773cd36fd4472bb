package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/config"
	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/handlers"
	"github.com/dimitrije/signshop-api/internal/logging"
	"github.com/dimitrije/signshop-api/internal/middleware"
	"github.com/dimitrije/signshop-api/internal/ratelimit"
	"github.com/dimitrije/signshop-api/internal/server"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/internal/sse"
	"github.com/dimitrije/signshop-api/internal/watcher"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	registry, err := catalog.NewRegistry(catalog.DirLoader(cfg.TemplatesDir), logger.Named("catalog"))
	if err != nil {
		logger.Fatal("failed to load templates", zap.String("dir", cfg.TemplatesDir), zap.Error(err))
	}

	hub := sse.NewHub()
	go hub.Run(ctx)

	registry.OnReload(func(c *catalog.Catalog) {
		hub.BroadcastCatalogReloaded(c.Len())
	})

	if cfg.TemplatesWatch {
		w, err := watcher.New(watcher.DefaultConfig(cfg.TemplatesDir), logger.Named("watcher"))
		if err != nil {
			logger.Fatal("failed to create template watcher", zap.Error(err))
		}
		changes, err := w.Start()
		if err != nil {
			logger.Fatal("failed to start template watcher", zap.Error(err))
		}
		defer func() { _ = w.Stop() }()
		go registry.Watch(ctx, changes)
		logger.Info("watching templates for changes", zap.String("dir", cfg.TemplatesDir))
	}

	var rdb redis.Cmdable
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, quote rate limiting will fail open", zap.Error(err))
		}
		rdb = client
	} else {
		logger.Info("REDIS_URL not set, quote rate limiting disabled")
	}
	quoteLimiter := ratelimit.New(rdb, "quotes", cfg.Quotes.RateLimit, cfg.Quotes.RateWindow)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	emailService := services.NewEmailService(cfg.SMTP)
	templateService := services.NewTemplateService(registry)
	productService := services.NewProductService(db, cfg.ProductCacheTTL)
	quoteService := services.NewQuoteService(db)
	designService := services.NewDesignService(db)

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService, logger.Named("auth"))
	go authHandler.StartCleanup(ctx)
	userHandler := handlers.NewUserHandler(userService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	productHandler := handlers.NewProductHandler(productService, logger.Named("products"))
	quoteHandler := handlers.NewQuoteHandler(quoteService, templateService, emailService, hub,
		cfg.Quotes.NotifyEmail, logger.Named("quotes"))
	designHandler := handlers.NewDesignHandler(designService, templateService)
	sseHandler := handlers.NewSSEHandler(hub)

	router := server.NewRouter(server.Handlers{
		Auth:     authHandler,
		User:     userHandler,
		Template: templateHandler,
		Product:  productHandler,
		Quote:    quoteHandler,
		Design:   designHandler,
		SSE:      sseHandler,
	}, server.Options{
		Production:     cfg.IsProduction(),
		JWT:            jwtService,
		QuoteLimiter:   quoteLimiter,
		TrustedProxies: proxies,
		TemplateCount:  templateService.Count,
		Logger:         logger,
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := tokenService.CleanupExpired(ctx)
				if err != nil {
					logger.Warn("refresh token cleanup failed", zap.Error(err))
					continue
				}
				logger.Debug("refresh token cleanup", zap.Int64("removed", removed))
			}
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Int("templates", templateService.Count()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
