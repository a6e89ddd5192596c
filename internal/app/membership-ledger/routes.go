// Package membershipledger предоставляет маршруты для основного приложения.
package membershipledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/auth/register"
	dueslist "github.com/magabrotheeeer/membership-ledger/internal/http/handlers/dues/list"
	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/dues/revenue"
	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/member/create"
	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/member/health"
	memberlist "github.com/magabrotheeeer/membership-ledger/internal/http/handlers/member/list"
	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/member/read"
	"github.com/magabrotheeeer/membership-ledger/internal/http/handlers/payment/update"
	"github.com/magabrotheeeer/membership-ledger/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/membership-ledger/internal/services/auth"
	duesservice "github.com/magabrotheeeer/membership-ledger/internal/services/dues"
	memberservice "github.com/magabrotheeeer/membership-ledger/internal/services/member"
	paymentservice "github.com/magabrotheeeer/membership-ledger/internal/services/payment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	memberService *memberservice.MemberService,
	duesService *duesservice.DuesService,
	paymentService *paymentservice.PaymentService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/members", create.New(logger, memberService).ServeHTTP)
			r.Get("/members", memberlist.New(logger, memberService).ServeHTTP)
			// Фиксированные пути должны идти раньше параметра {id}
			r.Get("/members/dues", dueslist.New(logger, duesService).ServeHTTP)
			r.Get("/members/revenue", revenue.New(logger, duesService).ServeHTTP)
			r.Get("/members/{id}", read.New(logger, memberService).ServeHTTP)
			r.Post("/members/{id}/payment", update.New(logger, paymentService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
