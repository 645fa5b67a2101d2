// Package accessgate предоставляет маршруты и жизненный цикл основного приложения.
package accessgate

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/access-gate/internal/http/handlers/access/status"
	adminaccounts "github.com/magabrotheeeer/access-gate/internal/http/handlers/admin/accounts"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/billing/webhook"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/health"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/onboarding/complete"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/portal/home"
	"github.com/magabrotheeeer/access-gate/internal/http/handlers/subscription/current"
	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	accessservice "github.com/magabrotheeeer/access-gate/internal/services/access"
	accountservice "github.com/magabrotheeeer/access-gate/internal/services/account"
	authservice "github.com/magabrotheeeer/access-gate/internal/services/auth"
	subservice "github.com/magabrotheeeer/access-gate/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	accessService *accessservice.AccessService,
	accountService *accountservice.AccountService,
	subscriptionService *subservice.SubscriptionService,
	webhookSecret string,
) {
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

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Информационные точки: отдают факты, ничего не блокируют
			r.Get("/access/status", status.New(logger, accessService).ServeHTTP)
			r.Get("/subscription", current.New(logger, subscriptionService).ServeHTTP)
			r.Post("/onboarding/complete", complete.New(logger, accountService).ServeHTTP)

			// Административная панель: роль проверяет сам обработчик
			r.Get("/admin/accounts", adminaccounts.New(logger, accountService).ServeHTTP)

			// Точки за комбинированным гейтом
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireFullAccess(logger, accessService))
				r.Get("/portal", home.New(logger).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации, подпись проверяет обработчик)
		r.Post("/webhooks/billing", webhook.New(logger, subscriptionService, webhookSecret).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
