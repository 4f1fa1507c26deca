package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/apacheair/seatbooking/internal/console"
	"github.com/apacheair/seatbooking/internal/logging"
	"github.com/apacheair/seatbooking/internal/pricing"
	"github.com/apacheair/seatbooking/internal/refgen"
	"github.com/apacheair/seatbooking/internal/repository"
	"github.com/apacheair/seatbooking/internal/seatmap"
	"github.com/apacheair/seatbooking/internal/service/booking"
)

// The console binary runs the interactive check-in terminal against its own
// in-memory store.
func main() {
	logger, err := logging.New("logs", false)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := booking.NewBookingEngine(
		repository.NewMemoryBookingStore(),
		seatmap.NewLayout(),
		pricing.DefaultTable(),
		refgen.New(),
		logger,
	)

	if err := console.New(engine, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Fatalf("console: %v", err)
	}
}
