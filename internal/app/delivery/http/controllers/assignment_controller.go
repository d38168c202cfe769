package controllers

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AssignmentController struct {
	Log               *zap.Logger
	AssignmentUsecase contracts.AssignmentUsecase
}

var (
	assignmentControllerInstance *AssignmentController
	onceAssignmentController     sync.Once
)

func NewAssignmentController(logger *zap.Logger, assignmentUsecase contracts.AssignmentUsecase) *AssignmentController {
	onceAssignmentController.Do(func() {
		assignmentControllerInstance = &AssignmentController{
			Log:               logger,
			AssignmentUsecase: assignmentUsecase,
		}
	})
	return assignmentControllerInstance
}

func (ctrl *AssignmentController) AssignLabTest(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	labTestID := chi.URLParam(r, constvars.URLParamLabTestID)
	ctrl.Log.Info("AssignmentController.AssignLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.AssignLabTest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("AssignmentController.AssignLabTest error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AssignmentController.AssignLabTest validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AssignmentUsecase.AssignLabTest(ctx, principal, labTestID, request)
	if err != nil {
		ctrl.Log.Error("AssignmentController.AssignLabTest error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AssignmentController.AssignLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
		zap.String(constvars.LoggingTechnicianIDKey, request.TechnicianID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AssignLabTestSuccessMessage, response)
}

func (ctrl *AssignmentController) FindAssignmentHistory(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	labTestID := chi.URLParam(r, constvars.URLParamLabTestID)
	ctrl.Log.Info("AssignmentController.FindAssignmentHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AssignmentUsecase.FindAssignmentHistory(ctx, principal, labTestID)
	if err != nil {
		ctrl.Log.Error("AssignmentController.FindAssignmentHistory error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AssignmentController.FindAssignmentHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindAssignmentHistorySuccessMessage, response)
}

func (ctrl *AssignmentController) FindAvailableLabTechs(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AssignmentController.FindAvailableLabTechs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryParamsKey, r.URL.RawQuery),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	query := utils.BuildAvailableLabTechsRequest(r)
	if err := utils.ValidateStruct(query); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AssignmentUsecase.FindAvailableLabTechs(ctx, principal, query)
	if err != nil {
		ctrl.Log.Error("AssignmentController.FindAvailableLabTechs error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AssignmentController.FindAvailableLabTechs succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindAvailableLabTechsSuccessMessage, response)
}
