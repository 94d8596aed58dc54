package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/coffeeshop-api/internal/auth"
	"github.com/example/coffeeshop-api/internal/config"
	"github.com/example/coffeeshop-api/internal/drinks"
	"github.com/example/coffeeshop-api/internal/management"
	"github.com/example/coffeeshop-api/internal/server"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("api exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := drinks.OpenStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	keyProvider := auth.NewCachingJWKSProvider(cfg.JWKSURL(), cfg.JWKSCacheTTL)
	validator, err := auth.NewValidator(keyProvider, cfg.IssuerURL(), cfg.APIAudience)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := server.NewRouter(server.Dependencies{
		Logger:         log,
		Auth:           auth.NewMiddleware(validator),
		Drinks:         drinks.NewHandler(store, log),
		Management:     management.NewHandler(management.NewClient(ctx, cfg), cfg.BaristaRoleID, log),
		FrontendOrigin: cfg.FrontendOrigin,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
