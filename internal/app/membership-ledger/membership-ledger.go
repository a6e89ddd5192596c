// Package membershipledger собирает основное HTTP-приложение реестра абонементов.
package membershipledger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/membership-ledger/internal/cache"
	"github.com/magabrotheeeer/membership-ledger/internal/config"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/membership-ledger/internal/migrations"
	authservice "github.com/magabrotheeeer/membership-ledger/internal/services/auth"
	duesservice "github.com/magabrotheeeer/membership-ledger/internal/services/dues"
	memberservice "github.com/magabrotheeeer/membership-ledger/internal/services/member"
	paymentservice "github.com/magabrotheeeer/membership-ledger/internal/services/payment"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	memberService := memberservice.NewMemberService(db, cacheRedis, logger)
	duesService := duesservice.NewDuesService(db, cacheRedis, logger)
	paymentService := paymentservice.NewPaymentService(db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, memberService, duesService, paymentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
