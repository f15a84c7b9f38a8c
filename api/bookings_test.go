package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Reserve(ctx context.Context, input booking.ReserveInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, bookingID, requesterID int64, isAdmin bool) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requesterID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListForAccount(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// identityFor stands in for AuthRequired so handler tests can pick the caller.
func identityFor(userID int64, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxUserID, userID)
		c.Set(ctxIsAdmin, isAdmin)
		c.Next()
	}
}

func newBookingRouter(service booking.BookingUseCase, userID int64, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/bookings", identityFor(userID, isAdmin))
	NewBookingHandler(service).Register(group)
	return router
}

func TestBookingHandler_Create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, 7, false)

	expected := booking.ReserveInput{
		UserID:         7,
		FlightID:       1,
		PassengerName:  "John Doe",
		PassengerEmail: "john@example.com",
		PassengerPhone: "+1987654321",
		SeatCount:      2,
	}
	mockService.On("Reserve", mock.Anything, expected).
		Return(&domain.Booking{ID: 1, PNR: "PNRABCDEF123", TotalPrice: 11000}, nil).Once()

	rec := postJSON(t, router, "/api/bookings", createBookingRequest{
		FlightID:       1,
		PassengerName:  "John Doe",
		PassengerEmail: "john@example.com",
		PassengerPhone: "+1987654321",
		Seats:          2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "PNRABCDEF123", got.PNR)
	assert.Equal(t, int64(11000), got.TotalPrice)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_Create_SoldOut(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, 7, false)

	mockService.On("Reserve", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInsufficientSeats).Once()

	rec := postJSON(t, router, "/api/bookings", createBookingRequest{
		FlightID: 1, PassengerName: "J", PassengerEmail: "j@e.com", PassengerPhone: "1", Seats: 5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_List(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, 7, false)

	mockService.On("ListForAccount", mock.Anything, int64(7)).
		Return([]domain.Booking{{ID: 1, PNR: "PNRABCDEF123"}}, nil).Once()

	rec := getPath(router, "/api/bookings")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_Cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, 7, false)

	mockService.On("Cancel", mock.Anything, int64(3), int64(7), false).
		Return(&domain.Booking{ID: 3, Status: domain.BookingStatusCancelled}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_Cancel_Errors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"someone else's booking", domain.ErrForbidden, http.StatusForbidden},
		{"already cancelled", domain.ErrBookingNotCancellable, http.StatusConflict},
		{"unknown booking", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			router := newBookingRouter(mockService, 7, false)
			mockService.On("Cancel", mock.Anything, int64(3), int64(7), false).Return(nil, tc.err).Once()

			req := httptest.NewRequest(http.MethodDelete, "/api/bookings/3", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
