package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/apacheair/seatbooking/api"
	"github.com/apacheair/seatbooking/config"
	"github.com/apacheair/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, engine booking.BookingUseCase, log *zap.Logger) error {
	srv := newServer(cfg, engine)

	errCh := make(chan error, 1)

	go func() {
		log.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, engine booking.BookingUseCase) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api.NewSeatHandler(engine).Register(router.Group("/seats"))
	api.NewBookingHandler(engine).Register(router.Group("/bookings"))

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}
}
