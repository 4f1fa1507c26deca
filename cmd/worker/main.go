package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/apacheair/seatbooking/config"
	"github.com/apacheair/seatbooking/internal/email"
	"github.com/apacheair/seatbooking/internal/kafka"
	"github.com/apacheair/seatbooking/internal/logging"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The worker consumes booking events and sends passenger notifications.
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	logger.Info("notification worker started",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.BookingEventsTopic))

	if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn("decode event failed", zap.Error(err))
			return nil
		}
		return sender.Send(ctx, event)
	}); err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
}
