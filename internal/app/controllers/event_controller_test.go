package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/middleware"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistrationService struct {
	registerFn func(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error)
	cancelFn   func(ctx context.Context, userID, eventID int64) error
}

func (s *stubRegistrationService) Register(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
	return s.registerFn(ctx, userID, eventID, req)
}

func (s *stubRegistrationService) Cancel(ctx context.Context, userID, eventID int64) error {
	return s.cancelFn(ctx, userID, eventID)
}

func setupRegistrationRouter(stub *stubRegistrationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the JWT middleware
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(7))
		c.Set(middleware.ContextRole, "USER")
	})

	ctrl := NewEventController(nil, stub)
	router.POST("/api/v1/events/:id/register", ctrl.RegisterForEvent)
	router.POST("/api/v1/events/:id/cancel", ctrl.CancelRegistration)
	return router
}

func decodeError(t *testing.T, body string) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestRegisterForEventEndpoint(t *testing.T) {
	t.Run("registers and returns 201", func(t *testing.T) {
		stub := &stubRegistrationService{
			registerFn: func(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
				assert.Equal(t, int64(7), userID)
				assert.Equal(t, int64(1), eventID)
				return &dto.RegistrationResponse{ID: 99, EventID: eventID, Status: "CONFIRMED"}, nil
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/register",
			strings.NewReader(`{"specialRequests":"near the door"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("empty body is accepted", func(t *testing.T) {
		stub := &stubRegistrationService{
			registerFn: func(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
				assert.Empty(t, req.SpecialRequests)
				return &dto.RegistrationResponse{ID: 99, EventID: eventID, Status: "CONFIRMED"}, nil
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/1/register", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("full event maps to 409 with capacity code", func(t *testing.T) {
		stub := &stubRegistrationService{
			registerFn: func(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
				return nil, apperrors.ErrEventFull
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/1/register", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeError(t, w.Body.String())
		assert.Equal(t, dto.ErrorCodeEventFull, resp.Error.Code)
	})

	t.Run("duplicate maps to 409 with conflict code", func(t *testing.T) {
		stub := &stubRegistrationService{
			registerFn: func(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
				return nil, apperrors.ErrAlreadyRegistered
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/1/register", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeError(t, w.Body.String())
		assert.Equal(t, dto.ErrorCodeAlreadyRegistered, resp.Error.Code)
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		stub := &stubRegistrationService{
			registerFn: func(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
				return nil, apperrors.ErrEventNotFound
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/99/register", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id maps to 400", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/abc/register", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelRegistrationEndpoint(t *testing.T) {
	t.Run("cancels and returns 200", func(t *testing.T) {
		stub := &stubRegistrationService{
			cancelFn: func(ctx context.Context, userID, eventID int64) error {
				assert.Equal(t, int64(7), userID)
				return nil
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/1/cancel", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already cancelled maps to 409", func(t *testing.T) {
		stub := &stubRegistrationService{
			cancelFn: func(ctx context.Context, userID, eventID int64) error {
				return apperrors.ErrRegistrationCancelled
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/1/cancel", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing registration maps to 404", func(t *testing.T) {
		stub := &stubRegistrationService{
			cancelFn: func(ctx context.Context, userID, eventID int64) error {
				return apperrors.ErrRegistrationNotFound
			},
		}
		router := setupRegistrationRouter(stub)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events/1/cancel", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
