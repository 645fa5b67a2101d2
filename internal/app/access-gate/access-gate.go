package accessgate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/access-gate/internal/cache"
	"github.com/magabrotheeeer/access-gate/internal/config"
	"github.com/magabrotheeeer/access-gate/internal/lib/jwt"
	"github.com/magabrotheeeer/access-gate/internal/migrations"
	"github.com/magabrotheeeer/access-gate/internal/rabbitmq"
	accessservice "github.com/magabrotheeeer/access-gate/internal/services/access"
	accountservice "github.com/magabrotheeeer/access-gate/internal/services/account"
	authservice "github.com/magabrotheeeer/access-gate/internal/services/auth"
	subservice "github.com/magabrotheeeer/access-gate/internal/services/subscription"
	"github.com/magabrotheeeer/access-gate/internal/storage/repository"

	"github.com/streadway/amqp"
)

// App держит собранное приложение и его разделяемые ресурсы.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	cache    *cache.Cache
	amqpConn *amqp.Connection
}

// New собирает приложение: хранилище, миграции, кеш, брокер, сервисы и маршруты.
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

	amqpConn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.RetriesRabbitMQ, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetAccountEventQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(amqpChannel)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	accessService := accessservice.NewAccessService(db, cacheRedis, logger)
	accountService := accountservice.NewAccountService(db, publisher, logger)
	subscriptionService := subservice.NewSubscriptionService(db, publisher, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger,
		authService, accessService, accountService, subscriptionService,
		cfg.Billing.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		cache:    cacheRedis,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		a.db.DB.Close()
		if cerr := a.amqpConn.Close(); cerr != nil {
			a.logger.Warn("failed to close amqp connection", slog.Any("err", cerr))
		}
		return err
	}
}
