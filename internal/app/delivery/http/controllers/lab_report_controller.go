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

type LabReportController struct {
	Log              *zap.Logger
	LabReportUsecase contracts.LabReportUsecase
}

var (
	labReportControllerInstance *LabReportController
	onceLabReportController     sync.Once
)

func NewLabReportController(logger *zap.Logger, labReportUsecase contracts.LabReportUsecase) *LabReportController {
	onceLabReportController.Do(func() {
		labReportControllerInstance = &LabReportController{
			Log:              logger,
			LabReportUsecase: labReportUsecase,
		}
	})
	return labReportControllerInstance
}

func (ctrl *LabReportController) SubmitLabReport(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	labTestID := chi.URLParam(r, constvars.URLParamLabTestID)
	ctrl.Log.Info("LabReportController.SubmitLabReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SubmitLabReport)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("LabReportController.SubmitLabReport error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("LabReportController.SubmitLabReport validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.LabReportUsecase.SubmitLabReport(ctx, principal, labTestID, request)
	if err != nil {
		ctrl.Log.Error("LabReportController.SubmitLabReport error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabReportController.SubmitLabReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabReportIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitLabReportSuccessMessage, response)
}

func (ctrl *LabReportController) FindLabReport(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	labTestID := chi.URLParam(r, constvars.URLParamLabTestID)
	ctrl.Log.Info("LabReportController.FindLabReport called",
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

	response, err := ctrl.LabReportUsecase.FindLabReport(ctx, principal, labTestID)
	if err != nil {
		ctrl.Log.Error("LabReportController.FindLabReport error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.FindLabReportSuccessMessage
	if !response.Available {
		message = constvars.LabReportNotYetAvailableMessage
	}

	ctrl.Log.Info("LabReportController.FindLabReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("available", response.Available),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
}

func (ctrl *LabReportController) FindLabReportDocument(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	labTestID := chi.URLParam(r, constvars.URLParamLabTestID)
	ctrl.Log.Info("LabReportController.FindLabReportDocument called",
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

	response, err := ctrl.LabReportUsecase.FindLabReportDocument(ctx, principal, labTestID)
	if err != nil {
		ctrl.Log.Error("LabReportController.FindLabReportDocument error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabReportController.FindLabReportDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, response.ObjectName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindLabReportDocumentSuccessMessage, response)
}
