package api

import (
	"net/http"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/apacheair/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	engine booking.BookingUseCase
}

type seatStatusResponse struct {
	Seat      string `json:"seat"`
	State     string `json:"state"`
	FareClass string `json:"fare_class,omitempty"`
	Price     int    `json:"price,omitempty"`
}

func NewSeatHandler(engine booking.BookingUseCase) *SeatHandler {
	return &SeatHandler{engine: engine}
}

func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.seatMap)
	router.GET("/:seat", h.availability)
}

func (h *SeatHandler) availability(c *gin.Context) {
	avail, err := h.engine.CheckAvailability(c.Request.Context(), c.Param("seat"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, seatStatusResponse{
		Seat:      avail.Seat.String(),
		State:     string(avail.State),
		FareClass: string(avail.FareClass),
		Price:     avail.Price,
	})
}

// seatMap returns all 480 seats in row-major order, one consistent view.
func (h *SeatHandler) seatMap(c *gin.Context) {
	snapshot, err := h.engine.SeatMapSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]seatStatusResponse, 0, len(snapshot))
	for row := domain.MinRow; row <= domain.MaxRow; row++ {
		for i := 0; i < len(domain.Columns); i++ {
			seat := domain.SeatID{Row: row, Column: domain.Columns[i]}
			status := snapshot[seat]
			response = append(response, seatStatusResponse{
				Seat:      seat.String(),
				State:     string(status.State),
				FareClass: string(status.FareClass),
				Price:     status.Price,
			})
		}
	}
	c.JSON(http.StatusOK, response)
}
