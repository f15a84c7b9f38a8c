package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func newAuthRouter(service users.UserUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(service).Register(router.Group("/api/auth"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newAuthRouter(mockService)

	input := users.RegisterInput{Name: "Alice", Email: "a@b.com", Password: "pass123", Phone: "+1111111"}
	mockService.On("Register", mock.Anything, input).
		Return(&domain.User{ID: 1, Name: "Alice", Email: "a@b.com"}, "issued-token", nil).Once()

	rec := postJSON(t, router, "/api/auth/register", input)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "issued-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(1), resp.User.ID)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newAuthRouter(mockService)

	mockService.On("Register", mock.Anything, mock.Anything).
		Return(nil, "", domain.ErrDuplicateAccount).Once()

	rec := postJSON(t, router, "/api/auth/register",
		users.RegisterInput{Name: "A", Email: "a@b.com", Password: "p", Phone: "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newAuthRouter(mockService)

	mockService.On("Login", mock.Anything, "a@b.com", "pass123").
		Return(&domain.User{ID: 1, Email: "a@b.com"}, "issued-token", nil).Once()

	rec := postJSON(t, router, "/api/auth/login", loginRequest{Email: "a@b.com", Password: "pass123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "issued-token", resp.Token)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newAuthRouter(mockService)

	mockService.On("Login", mock.Anything, "a@b.com", "wrong").
		Return(nil, "", domain.ErrInvalidCredentials).Once()

	rec := postJSON(t, router, "/api/auth/login", loginRequest{Email: "a@b.com", Password: "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
