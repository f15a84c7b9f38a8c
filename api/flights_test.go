package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListAll(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func newFlightRouter(service flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewFlightHandler(service).Register(router.Group("/api/flights"))
	return router
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFlightHandler_Search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	day := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	expected := domain.FlightFilter{From: "Delhi", To: "Mumbai", Date: &day}
	mockService.On("Search", mock.Anything, expected).
		Return([]domain.Flight{{ID: 1, FlightNumber: "AI101"}}, nil).Once()

	rec := getPath(router, "/api/flights?from=Delhi&to=Mumbai&date=2024-03-20")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Flight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "AI101", got[0].FlightNumber)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_Search_BadDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	rec := getPath(router, "/api/flights?date=20-03-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_Get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Flight{ID: 3, FlightNumber: "UK771"}, nil).Once()

	rec := getPath(router, "/api/flights/3")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Flight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "UK771", got.FlightNumber)
}

func TestFlightHandler_Get_Errors(t *testing.T) {
	t.Run("unknown id is 404", func(t *testing.T) {
		mockService := &MockFlightUseCase{}
		router := newFlightRouter(mockService)
		mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound).Once()

		rec := getPath(router, "/api/flights/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		mockService := &MockFlightUseCase{}
		router := newFlightRouter(mockService)

		rec := getPath(router, "/api/flights/abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "GetByID")
	})
}
