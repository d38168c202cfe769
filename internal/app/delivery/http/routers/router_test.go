package routers

import (
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/contracts/mocks"
	"hospital-lab-service/internal/app/delivery/http/controllers"
	"hospital-lab-service/internal/app/delivery/http/handlers"
	"hospital-lab-service/internal/app/delivery/http/middlewares"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/app/services/core/roles"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	routerTestSecret = "router-secret"
	routerTestID     = "65f0c1d2e3a4b5c6d7e8f901"
)

type routerFixture struct {
	router             *chi.Mux
	sessionService     *mocks.MockSessionService
	labTestUsecase     *mocks.MockLabTestUsecase
	assignmentUsecase  *mocks.MockAssignmentUsecase
	labReportUsecase   *mocks.MockLabReportUsecase
	performanceUsecase *mocks.MockPerformanceUsecase
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	enforcer, err := roles.NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	if err != nil {
		t.Skipf("Skipping test due to missing RBAC files: %v", err)
	}

	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:     "api",
			Version:            "v1",
			MaxRequests:        1000,
			CORSAllowedOrigins: []string{"*"},
		},
		JWT: config.AppJWT{Secret: routerTestSecret},
	}

	f := &routerFixture{
		router:             chi.NewRouter(),
		sessionService:     new(mocks.MockSessionService),
		labTestUsecase:     new(mocks.MockLabTestUsecase),
		assignmentUsecase:  new(mocks.MockAssignmentUsecase),
		labReportUsecase:   new(mocks.MockLabReportUsecase),
		performanceUsecase: new(mocks.MockPerformanceUsecase),
	}

	roleUsecase := roles.NewCasbinRoleUsecase(enforcer)
	SetupRoutes(
		f.router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig, f.sessionService, roleUsecase),
		&controllers.LabTestController{Log: logger, LabTestUsecase: f.labTestUsecase},
		&controllers.AssignmentController{Log: logger, AssignmentUsecase: f.assignmentUsecase},
		&controllers.LabReportController{Log: logger, LabReportUsecase: f.labReportUsecase},
		&controllers.PerformanceController{Log: logger, PerformanceUsecase: f.performanceUsecase},
		handlers.NewRoleHandler(logger, roleUsecase),
	)
	return f
}

// login registers a session for role and returns the bearer header value.
func (f *routerFixture) login(t *testing.T, sessionID, role string) (string, models.Principal) {
	t.Helper()
	token, err := utils.GenerateSessionJWT(sessionID, routerTestSecret, 1)
	require.NoError(t, err)

	session := &models.Session{SessionID: sessionID, UserID: "user-" + sessionID, Role: role, ExpiresAt: time.Now().Add(time.Hour)}
	f.sessionService.On("GetSessionData", mock.Anything, sessionID).Return(sessionID, nil)
	f.sessionService.On("ParseSessionData", mock.Anything, sessionID).Return(session, nil)
	return constvars.HeaderBearerPrefix + token, session.Principal()
}

func (f *routerFixture) do(method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set(constvars.HeaderAuthorization, bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Authentication(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/v1/lab-tests", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(constvars.HeaderXRequestID))
}

func TestRouter_RolePolicy(t *testing.T) {
	f := newRouterFixture(t)
	patientBearer, _ := f.login(t, "patient", constvars.RolePatient)
	techBearer, techPrincipal := f.login(t, "tech", constvars.RoleLabTech)

	t.Run("Patient Cannot Request Test", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/lab-tests", patientBearer)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Patient Cannot Start Test", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/lab-tests/"+routerTestID+"/start", patientBearer)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("LabTech Cannot List Available Technicians", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/lab-techs/available", techBearer)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("LabTech Starts Test", func(t *testing.T) {
		f.labTestUsecase.On("StartLabTest", mock.Anything, techPrincipal, routerTestID).
			Return(&responses.LabTest{ID: routerTestID, Status: constvars.LabTestStatusProcessing}, nil).Once()

		w := f.do(http.MethodPost, "/api/v1/lab-tests/"+routerTestID+"/start", techBearer)

		assert.Equal(t, http.StatusOK, w.Code)
		f.labTestUsecase.AssertExpectations(t)
	})

	t.Run("Patient Reads Report", func(t *testing.T) {
		f.labReportUsecase.On("FindLabReport", mock.Anything, mock.AnythingOfType("models.Principal"), routerTestID).
			Return(&responses.LabReportView{Available: false, Status: constvars.LabTestStatusRequested}, nil).Once()

		w := f.do(http.MethodGet, "/api/v1/lab-tests/"+routerTestID+"/report", patientBearer)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_Roles(t *testing.T) {
	f := newRouterFixture(t)
	adminBearer, _ := f.login(t, "admin", constvars.RoleAdmin)
	doctorBearer, _ := f.login(t, "doctor", constvars.RoleDoctor)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/roles", adminBearer).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/roles", doctorBearer).Code)
}
