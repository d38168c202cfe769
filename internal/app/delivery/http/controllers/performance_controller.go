package controllers

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PerformanceController struct {
	Log                *zap.Logger
	PerformanceUsecase contracts.PerformanceUsecase
}

var (
	performanceControllerInstance *PerformanceController
	oncePerformanceController     sync.Once
)

func NewPerformanceController(logger *zap.Logger, performanceUsecase contracts.PerformanceUsecase) *PerformanceController {
	oncePerformanceController.Do(func() {
		performanceControllerInstance = &PerformanceController{
			Log:                logger,
			PerformanceUsecase: performanceUsecase,
		}
	})
	return performanceControllerInstance
}

func (ctrl *PerformanceController) FindLabTechPerformance(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	technicianID := chi.URLParam(r, constvars.URLParamTechnicianID)
	ctrl.Log.Info("PerformanceController.FindLabTechPerformance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTechnicianIDKey, technicianID),
		zap.String(constvars.LoggingQueryParamsKey, r.URL.RawQuery),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	dateRange, err := utils.BuildDateRangeRequest(r)
	if err != nil {
		ctrl.Log.Error("PerformanceController.FindLabTechPerformance invalid date range",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidFormat(err, "date range"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PerformanceUsecase.FindLabTechPerformance(ctx, principal, technicianID, dateRange)
	if err != nil {
		ctrl.Log.Error("PerformanceController.FindLabTechPerformance error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PerformanceController.FindLabTechPerformance succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, response.TotalTests),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindLabTechPerformanceSuccessMessage, response)
}

func (ctrl *PerformanceController) FindLabTechBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	technicianID := chi.URLParam(r, constvars.URLParamTechnicianID)
	ctrl.Log.Info("PerformanceController.FindLabTechBreakdown called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTechnicianIDKey, technicianID),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PerformanceUsecase.FindLabTechBreakdown(ctx, principal, technicianID)
	if err != nil {
		ctrl.Log.Error("PerformanceController.FindLabTechBreakdown error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PerformanceController.FindLabTechBreakdown succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindLabTechBreakdownSuccessMessage, response)
}
