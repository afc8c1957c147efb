package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/database/psql"
	"storefront/internal/events/rabbitmq"
	"storefront/internal/payment"
	checkoutservice "storefront/internal/service/checkout"
	"storefront/pkg/config"
	"storefront/pkg/lib/logger"
	"storefront/pkg/lib/logger/sl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	storage, err := psql.New(log, cfg.ConnectionString())
	if err != nil {
		panic(err)
	}

	payments := payment.New(log, cfg.Payment.URL, cfg.Payment.Currency, cfg.Payment.Timeout)

	var (
		publisher checkoutservice.EventPublisher
		pool      *rabbitmq.ChannelPool
	)
	if cfg.RabbitMQ.Enabled {
		pool, err = rabbitmq.NewChannelPool(log, cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.ChannelPoolSize)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ", sl.Err(err))
			panic(err)
		}
		publisher = rabbitmq.NewPublisher(log, pool, cfg.RabbitMQ.Queue)
	} else {
		log.Warn("rabbitmq is disabled, order events will not be published")
	}

	application := app.New(
		log,
		cfg.HTTP,
		storage,
		payments,
		publisher,
	)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		log.Error("Failed to stop http server", sl.Err(err))
	}

	if pool != nil {
		pool.Close()
	}

	log.Info("Closing database")
	if err := storage.Close(); err != nil {
		log.Error("Failed to close database", sl.Err(err))
	}
}
