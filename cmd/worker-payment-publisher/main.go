package main

import (
	"context"
	"time"

	"github.com/captainblair/vertex/internal/config"
	"github.com/captainblair/vertex/internal/publishers"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/mq"
	"github.com/captainblair/vertex/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewTransactionRepository,

			service.NewPaymentEventsService,

			publishers.NewPaymentCompletedPublisher,
		),
		fx.Invoke(runPaymentPublisher),
	).Run()
}

func runPaymentPublisher(cfg *config.Config, publisher publishers.PaymentCompletedPublisher,
	logger *zap.Logger, broker *mq.Broker, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := broker.DeclareTopology(); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go func() {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish payment events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("payment publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment publisher")
			cancel()
			return broker.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database.MySQL, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.Broker, error) {
	return mq.Connect(cfg.RabbitMQ, logger)
}

func NewMQPublisher(broker *mq.Broker) (mq.Publisher, error) {
	return broker.Publisher()
}
