package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/memodb-io/rentspot/internal/bootstrap"
	"github.com/memodb-io/rentspot/internal/config"
	mq "github.com/memodb-io/rentspot/internal/infra/queue"
	"github.com/memodb-io/rentspot/internal/modules/service"
	"github.com/memodb-io/rentspot/internal/telemetry"
	"github.com/memodb-io/rentspot/internal/worker"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	if !cfg.RabbitMQ.Enabled {
		log.Fatal("rabbitmq is disabled; ratings are refreshed inline by the api")
	}

	shutdownTracing, err := telemetry.SetupTracing(cfg, cfg.App.Name+"-worker")
	if err != nil {
		log.Fatal("setup tracing", zap.Error(err))
	}

	conn := do.MustInvoke[*amqp.Connection](inj)
	defer func() { _ = conn.Close() }()

	consumer, err := mq.NewConsumer(conn, cfg, log)
	if err != nil {
		log.Fatal("declare consumer", zap.Error(err))
	}
	defer func() { _ = consumer.Close() }()

	ratings := worker.NewRatingWorker(do.MustInvoke[service.RatingService](inj), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("rating worker started", zap.String("queue", cfg.RabbitMQ.QueueName.RatingRecalc))
	if err := worker.RunAll(ctx, func(ctx context.Context) error {
		return ratings.Run(ctx, consumer)
	}); err != nil {
		log.Error("worker stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
}
