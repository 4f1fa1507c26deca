package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/apacheair/seatbooking/config"
	"github.com/apacheair/seatbooking/internal/bootstrap"
	"github.com/apacheair/seatbooking/internal/kafka"
	"github.com/apacheair/seatbooking/internal/logging"
	"github.com/apacheair/seatbooking/internal/pricing"
	"github.com/apacheair/seatbooking/internal/refgen"
	"github.com/apacheair/seatbooking/internal/repository"
	"github.com/apacheair/seatbooking/internal/seatmap"
	"github.com/apacheair/seatbooking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	defer closeStore()

	opts := []booking.BookingEngineOption{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic))
	}

	engine := booking.NewBookingEngine(
		store,
		seatmap.NewLayout(),
		pricing.DefaultTable(),
		refgen.New(),
		logger,
		opts...,
	)

	if err := bootstrap.Run(ctx, cfg, engine, logger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (repository.BookingStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPGBookingStore(pool)
		if err := store.InitSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return repository.NewRedisBookingStore(client), func() { client.Close() }, nil
	default:
		return repository.NewMemoryBookingStore(), func() {}, nil
	}
}
