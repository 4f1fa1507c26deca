package api

import (
	"errors"
	"net/http"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/apacheair/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	engine booking.BookingUseCase
}

type createBookingRequest struct {
	Seat      string `json:"seat"`
	Passport  string `json:"passport"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type cancelBookingRequest struct {
	LastName string `json:"last_name"`
	Passport string `json:"passport"`
}

type bookingResponse struct {
	Reference string `json:"reference"`
	Seat      string `json:"seat"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Price     int    `json:"price"`
}

func NewBookingHandler(engine booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{engine: engine}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.lookup)
	router.DELETE("/:seat", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.engine.Book(c.Request.Context(), booking.BookInput{
		Seat:      req.Seat,
		Passport:  req.Passport,
		FirstName: domain.CapitalizeName(req.FirstName),
		LastName:  domain.CapitalizeName(req.LastName),
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(*booked))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.engine.Cancel(c.Request.Context(), c.Param("seat"), req.LastName, req.Passport)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"seat": c.Param("seat"), "status": "cancelled"})
}

func (h *BookingHandler) lookup(c *gin.Context) {
	first := c.Query("first_name")
	last := c.Query("last_name")
	if first == "" || last == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first_name and last_name are required"})
		return
	}

	bookings, err := h.engine.Lookup(c.Request.Context(), first, last)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	response := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, response)
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		Reference: b.Reference,
		Seat:      b.Seat.String(),
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Price:     b.Price,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSeatFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatAlreadyBooked),
		errors.Is(err, domain.ErrSeatIsStorage),
		errors.Is(err, domain.ErrPlaneFullyBooked):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
