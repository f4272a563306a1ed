package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/jobs"
	"storefront/internal/logging"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	// --- Database ---
	db, err := database.Open(cfg.Database, cfg.IsDev(), log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// --- Redis (only for the redis revocation backend) ---
	var rdb *redis.Client
	if cfg.Auth.RevocationBackend == config.RevocationRedis {
		rdb, err = connectRedis(context.Background(), cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	denylist, err := server.NewTokenDenylist(cfg.Auth.RevocationBackend, db, rdb)
	if err != nil {
		return err
	}

	// --- RabbitMQ (optional) ---
	deps := server.Deps{Config: cfg, DB: db, Denylist: denylist, Log: log}
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, log)
		if err != nil {
			return err
		}
		defer mqClient.Close()

		if err := mqClient.Consume(accountEventHandler(log)); err != nil {
			log.WithError(err).Warn("account event consumer not started")
		}
		deps.Events = mqClient
	} else {
		log.Info("RABBITMQ_URL not set, account events disabled")
	}

	// --- Scheduled jobs ---
	scheduler := jobs.NewScheduler(log)
	if gormDenylist, ok := denylist.(*repositories.GORMTokenDenylist); ok {
		if err := scheduler.AddRevocationPurge(jobs.DefaultPurgeSchedule, gormDenylist); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- HTTP server ---
	app, err := server.New(deps)
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "mode": cfg.AppMode}).Info("starting server")
		listenErr <- app.Listen(cfg.Port)
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server gracefully stopped")
	return nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// accountEventHandler logs account events delivered from the broker.
func accountEventHandler(log logrus.FieldLogger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		return services.LogAccountEvent(log, msg.Type, msg.Body)
	}
}
