package bootstrap

import (
	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/infra/cache"
	"github.com/memodb-io/rentspot/internal/infra/db"
	"github.com/memodb-io/rentspot/internal/infra/logger"
	mq "github.com/memodb-io/rentspot/internal/infra/queue"
	"github.com/memodb-io/rentspot/internal/modules/handler"
	"github.com/memodb-io/rentspot/internal/modules/repo"
	"github.com/memodb-io/rentspot/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				log.Warn("gorm otel plugin", zap.Error(err))
			}
		}
		if cfg.Database.AutoMigrate {
			if err := EnsureSchema(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		return cache.NewRedis(do.MustInvoke[*config.Config](i))
	})

	// spot detail cache; a zero TTL turns it off without dialing redis
	do.Provide(inj, func(i *do.Injector) (*cache.JSONCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Redis.SpotTTLSec <= 0 {
			return nil, nil
		}
		return cache.NewSpotCache(cfg, do.MustInvoke[*redis.Client](i)), nil
	})

	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		return mq.Dialer(do.MustInvoke[*config.Config](i)), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return dialFn()
	})

	// review events go through RabbitMQ only when enabled; a nil publisher
	// makes the review service refresh ratings inline
	do.Provide(inj, func(i *do.Injector) (service.EventPublisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return nil, nil
		}
		p, err := mq.NewPublisher(
			do.MustInvoke[*amqp.Connection](i),
			do.MustInvoke[*zap.Logger](i),
			cfg,
		)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.SpotRepo, error) {
		return repo.NewSpotRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ReviewRepo, error) {
		return repo.NewReviewRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.BookingRepo, error) {
		return repo.NewBookingRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.SpotService, error) {
		return service.NewSpotService(
			do.MustInvoke[repo.SpotRepo](i),
			do.MustInvoke[*cache.JSONCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.RatingService, error) {
		return service.NewRatingService(
			do.MustInvoke[repo.SpotRepo](i),
			do.MustInvoke[*cache.JSONCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReviewService, error) {
		return service.NewReviewService(
			do.MustInvoke[repo.ReviewRepo](i),
			do.MustInvoke[repo.SpotRepo](i),
			do.MustInvoke[service.RatingService](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.BookingService, error) {
		return service.NewBookingService(
			do.MustInvoke[repo.BookingRepo](i),
			do.MustInvoke[repo.SpotRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.SpotHandler, error) {
		return handler.NewSpotHandler(do.MustInvoke[service.SpotService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReviewHandler, error) {
		return handler.NewReviewHandler(do.MustInvoke[service.ReviewService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.BookingHandler, error) {
		return handler.NewBookingHandler(do.MustInvoke[service.BookingService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CSRFHandler, error) {
		return handler.NewCSRFHandler(do.MustInvoke[*config.Config](i)), nil
	})
	return inj
}
