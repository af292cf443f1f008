package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestao-municipal/painel/config"
	"github.com/gestao-municipal/painel/internal/auth"
	authmw "github.com/gestao-municipal/painel/internal/auth/middleware"
	"github.com/gestao-municipal/painel/internal/auth/repository"
	authservice "github.com/gestao-municipal/painel/internal/auth/service"
	"github.com/gestao-municipal/painel/internal/bootstrap"
	"github.com/gestao-municipal/painel/internal/logging"
	painelservice "github.com/gestao-municipal/painel/internal/painel/service"
	"github.com/gestao-municipal/painel/internal/painel/upstream"
	"go.uber.org/zap"
)

// sessionStore is what the server needs from either repository.
type sessionStore interface {
	authservice.Store
	Ping(ctx context.Context) error
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	if cfg.App.Version != "" && version == "dev" {
		version = cfg.App.Version
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	views := painelservice.NewViewState()
	limiter := authmw.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	scheduler := bootstrap.NewScheduler(logger)

	var store sessionStore
	if cfg.Session.RedisAddr != "" {
		client, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		store = repository.NewSessionRepository(client)
		logger.Info("session store: redis", zap.String("addr", cfg.Session.RedisAddr))
	} else {
		mem := repository.NewMemoryRepository()
		if err := scheduler.Add(cfg.Session.SweepSchedule, bootstrap.Job{Name: "expired_sessions", Run: mem.Sweep}); err != nil {
			return err
		}
		store = mem
		logger.Warn("REDIS_ADDR not set, sessions are kept in memory")
	}

	if err := scheduler.Add(cfg.Session.SweepSchedule, bootstrap.Job{
		Name: "idle_views",
		Run:  func() int { return views.Sweep(cfg.Session.TTL) },
	}); err != nil {
		return err
	}
	if err := scheduler.Add(cfg.Session.SweepSchedule, bootstrap.Job{Name: "login_limiters", Run: limiter.Reset}); err != nil {
		return err
	}

	api := upstream.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sessions := authservice.NewSessionService(store, api, cfg.Session.TTL)

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "painel",
		Version:     version,
		Logger:      logger,
		Cookie: auth.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Server.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		CORSOrigins: cfg.Server.CORSOrigins,
		Sessions:    sessions,
		Store:       store,
		Upstream:    api,
		Views:       views,
		Limiter:     limiter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("api", cfg.API.BaseURL),
			zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
