package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/apacheair/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CheckAvailability(ctx context.Context, seatStr string) (*booking.Availability, error) {
	args := m.Called(ctx, seatStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Availability), args.Error(1)
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, seatStr, lastName, passport string) error {
	args := m.Called(ctx, seatStr, lastName, passport)
	return args.Error(0)
}

func (m *MockBookingUseCase) Lookup(ctx context.Context, firstName, lastName string) ([]domain.Booking, error) {
	args := m.Called(ctx, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) SeatMapSnapshot(ctx context.Context) (booking.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(booking.Snapshot), args.Error(1)
}

func testStoredBooking() *domain.Booking {
	return &domain.Booking{
		Reference: "AB12CD34",
		Passport:  "X1234567",
		FirstName: "John",
		LastName:  "Smith",
		Seat:      domain.SeatID{Row: 1, Column: 'A'},
		Price:     50,
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{
		Seat:      "1A",
		Passport:  "X1234567",
		FirstName: "john",
		LastName:  "SMITH",
	})
	c.Request = httptest.NewRequest("POST", "/bookings/", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	expected := booking.BookInput{
		Seat:      "1A",
		Passport:  "X1234567",
		FirstName: "John",
		LastName:  "Smith",
	}
	mockService.On("Book", c.Request.Context(), expected).Return(testStoredBooking(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AB12CD34", response.Reference)
	assert.Equal(t, "1A", response.Seat)
	assert.Equal(t, 50, response.Price)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_createErrors(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid seat", err: domain.ErrInvalidSeatFormat, status: http.StatusBadRequest},
		{name: "storage seat", err: domain.ErrSeatIsStorage, status: http.StatusConflict},
		{name: "already booked", err: domain.ErrSeatAlreadyBooked, status: http.StatusConflict},
		{name: "plane full", err: domain.ErrPlaneFullyBooked, status: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			body, _ := json.Marshal(createBookingRequest{Seat: "1A", Passport: "P", FirstName: "A", LastName: "B"})
			c.Request = httptest.NewRequest("POST", "/bookings/", bytes.NewBuffer(body))
			c.Request.Header.Set("Content-Type", "application/json")

			mockService.On("Book", c.Request.Context(), mock.AnythingOfType("booking.BookInput")).Return(nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.status, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(cancelBookingRequest{LastName: "Smith", Passport: "X1234567"})
	c.Params = gin.Params{{Key: "seat", Value: "1A"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/1A", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Cancel", c.Request.Context(), "1A", "Smith", "X1234567").Return(nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancelNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(cancelBookingRequest{LastName: "Smith", Passport: "WRONG"})
	c.Params = gin.Params{{Key: "seat", Value: "1A"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/1A", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Cancel", c.Request.Context(), "1A", "Smith", "WRONG").Return(domain.ErrBookingNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_lookup(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings/?first_name=John&last_name=Smith", nil)

	mockService.On("Lookup", c.Request.Context(), "John", "Smith").Return([]domain.Booking{*testStoredBooking()}, nil)

	handler.lookup(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	if assert.Len(t, response, 1) {
		assert.Equal(t, "AB12CD34", response[0].Reference)
	}
	mockService.AssertExpectations(t)
}

func TestBookingHandler_lookupMissingParams(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings/?first_name=John", nil)

	handler.lookup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Lookup")
}
