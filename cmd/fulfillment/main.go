package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"storefront/internal/database/psql"
	"storefront/internal/fulfillment"
	"storefront/pkg/config"
	"storefront/pkg/lib/logger"
	"storefront/pkg/lib/logger/sl"

	amqp "github.com/rabbitmq/amqp091-go"
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
	defer storage.Close()

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ", sl.Err(err))
		panic(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor := fulfillment.NewProcessor(log, storage)

	var wg sync.WaitGroup
	for i := 1; i <= cfg.Fulfillment.Workers; i++ {
		worker, err := fulfillment.NewWorker(i, log, conn, cfg.RabbitMQ.Queue, processor)
		if err != nil {
			log.Error("Failed to create worker", sl.Err(err))
			stop()
			break
		}
		wg.Add(1)
		go worker.Start(ctx, &wg)
	}

	<-ctx.Done()
	log.Info("shutting down fulfillment workers")
	wg.Wait()
}
