package main

import (
	"context"
	"net/http"
	"time"

	"github.com/captainblair/vertex/internal/api"
	apimiddleware "github.com/captainblair/vertex/internal/api/middleware"
	v1 "github.com/captainblair/vertex/internal/api/v1"
	apivalidator "github.com/captainblair/vertex/internal/api/validator"
	"github.com/captainblair/vertex/internal/config"
	"github.com/captainblair/vertex/internal/metrics"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/captainblair/vertex/pkg/httpclient"
	"github.com/captainblair/vertex/pkg/mysql"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			NewFiber,
			NewRequestValidator,
			NewRepositories,
			NewDarajaClient,

			service.NewPaymentService,
			service.NewReconcilerService,
			service.NewStatusService,
			service.NewOrderService,

			v1.NewHandler,
		),
		fx.Invoke(startServer, startMetricsServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, m *metrics.Metrics, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("api server exited", zap.Error(err))
				}
			}()
			logger.Info("api server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func startMetricsServer(m *metrics.Metrics, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	server := &http.Server{Addr: cfg.Metrics.Port, Handler: m.Handler()}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server exited", zap.Error(err))
				}
			}()
			logger.Info("metrics server started", zap.String("port", cfg.Metrics.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

func NewFiber() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apimiddleware.ErrorHandler()})
}

func NewRequestValidator() apivalidator.XValidator {
	return apivalidator.NewXValidator(validator.New())
}

func NewRepositories(cfg *config.Config, logger *zap.Logger) (repository.TransactionRepository,
	repository.OrderRepository, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory storage, transactions vanish on restart")
		return repository.NewMemoryTransactionRepository(), repository.NewMemoryOrderRepository(), nil
	}

	db, err := mysql.NewConnection(context.Background(), cfg.Database.MySQL, logger)
	if err != nil {
		return nil, nil, err
	}

	return repository.NewTransactionRepository(db), repository.NewOrderRepository(db), nil
}

func NewDarajaClient(cfg *config.Config, logger *zap.Logger) daraja.Client {
	if cfg.Daraja.Mode == daraja.ModeLive {
		client := httpclient.NewHTTPClient(cfg.Daraja.Timeout)
		return daraja.NewClient(cfg.Daraja, client, logger)
	}

	return daraja.NewSimulator(500*time.Millisecond, logger)
}
