package middlewares

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/contracts/mocks"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

func newTestMiddlewares(sessionService *mocks.MockSessionService, roleUsecase *mocks.MockRoleUsecase) *Middlewares {
	internalConfig := &config.InternalConfig{
		App: config.App{EndpointPrefix: "api", Version: "v1", MaxRequests: 100},
		JWT: config.AppJWT{Secret: testJWTSecret},
	}
	return NewMiddlewares(zap.NewNop(), internalConfig, sessionService, roleUsecase)
}

func principalEcho(t *testing.T, got *models.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := utils.GetPrincipal(r.Context())
		require.NoError(t, err)
		*got = principal
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("Missing Token", func(t *testing.T) {
		m := newTestMiddlewares(new(mocks.MockSessionService), new(mocks.MockRoleUsecase))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
		w := httptest.NewRecorder()

		m.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		m := newTestMiddlewares(new(mocks.MockSessionService), new(mocks.MockRoleUsecase))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		m.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Session Sets Principal", func(t *testing.T) {
		sessionService := new(mocks.MockSessionService)
		m := newTestMiddlewares(sessionService, new(mocks.MockRoleUsecase))

		token, err := utils.GenerateSessionJWT("sess-1", testJWTSecret, 1)
		require.NoError(t, err)

		sessionService.On("GetSessionData", mock.Anything, "sess-1").Return(`{"userId":"u-1"}`, nil)
		sessionService.On("ParseSessionData", mock.Anything, `{"userId":"u-1"}`).Return(&models.Session{
			UserID:    "u-1",
			Role:      constvars.RoleDoctor,
			Name:      "Dr. Grey",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)
		w := httptest.NewRecorder()

		var got models.Principal
		m.Authenticate(principalEcho(t, &got)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1", got.UserID)
		assert.Equal(t, constvars.RoleDoctor, got.Role)
		assert.Equal(t, "sess-1", got.SessionID)
		sessionService.AssertExpectations(t)
	})

	t.Run("Expired Session", func(t *testing.T) {
		sessionService := new(mocks.MockSessionService)
		m := newTestMiddlewares(sessionService, new(mocks.MockRoleUsecase))

		token, err := utils.GenerateSessionJWT("sess-2", testJWTSecret, 1)
		require.NoError(t, err)

		sessionService.On("GetSessionData", mock.Anything, "sess-2").Return(`{}`, nil)
		sessionService.On("ParseSessionData", mock.Anything, `{}`).Return(&models.Session{
			UserID:    "u-2",
			Role:      constvars.RolePatient,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)
		w := httptest.NewRecorder()

		m.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown Session", func(t *testing.T) {
		sessionService := new(mocks.MockSessionService)
		m := newTestMiddlewares(sessionService, new(mocks.MockRoleUsecase))

		token, err := utils.GenerateSessionJWT("sess-3", testJWTSecret, 1)
		require.NoError(t, err)

		sessionService.On("GetSessionData", mock.Anything, "sess-3").Return("", exceptions.ErrInvalidSession(errors.New("session not found")))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)
		w := httptest.NewRecorder()

		m.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	withPrincipal := func(req *http.Request, role string) *http.Request {
		ctx := utils.SetPrincipal(req.Context(), models.Principal{UserID: "u-1", Role: role})
		return req.WithContext(ctx)
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("Allowed Strips Prefix", func(t *testing.T) {
		roleUsecase := new(mocks.MockRoleUsecase)
		m := newTestMiddlewares(new(mocks.MockSessionService), roleUsecase)
		roleUsecase.On("Enforce", mock.Anything, constvars.RoleLabTech, http.MethodPost, "/lab-tests/abc/start").Return(true, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/v1/lab-tests/abc/start", nil), constvars.RoleLabTech)
		w := httptest.NewRecorder()

		m.RequirePermission(ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		roleUsecase.AssertExpectations(t)
	})

	t.Run("Denied Is Forbidden", func(t *testing.T) {
		roleUsecase := new(mocks.MockRoleUsecase)
		m := newTestMiddlewares(new(mocks.MockSessionService), roleUsecase)
		roleUsecase.On("Enforce", mock.Anything, constvars.RolePatient, http.MethodPost, "/lab-tests").Return(false, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/v1/lab-tests/", nil), constvars.RolePatient)
		w := httptest.NewRecorder()

		m.RequirePermission(ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("No Principal", func(t *testing.T) {
		m := newTestMiddlewares(new(mocks.MockSessionService), new(mocks.MockRoleUsecase))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
		w := httptest.NewRecorder()

		m.RequirePermission(ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(new(mocks.MockSessionService), new(mocks.MockRoleUsecase))

	t.Run("Keeps Client Request ID", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = utils.GetRequestID(r.Context())
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id")
		w := httptest.NewRecorder()

		m.RequestIDMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", w.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Generates Request ID", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = utils.GetRequestID(r.Context())
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		m.RequestIDMiddleware(next).ServeHTTP(w, req)

		assert.Contains(t, seen, constvars.REQUEST_ID_PREFIX)
		assert.Equal(t, seen, w.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler(t *testing.T) {
	m := newTestMiddlewares(new(mocks.MockSessionService), new(mocks.MockRoleUsecase))
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	m.ErrorHandler(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
