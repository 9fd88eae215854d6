package main

import (
	"context"

	"github.com/captainblair/vertex/internal/config"
	"github.com/captainblair/vertex/internal/consumers"
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
			NewMQConsumer,

			repository.NewOrderRepository,

			service.NewOrderService,

			consumers.NewPaymentCompletedConsumer,
		),
		fx.Invoke(runOrdersConsumer),
	).Run()
}

func runOrdersConsumer(cfg *config.Config, consumer consumers.PaymentCompletedConsumer,
	logger *zap.Logger, broker *mq.Broker, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := broker.DeclareTopology(); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go func() {
				if err := consumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("orders consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping orders consumer")
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

func NewMQConsumer(broker *mq.Broker) (mq.Consumer, error) {
	return broker.Consumer()
}
