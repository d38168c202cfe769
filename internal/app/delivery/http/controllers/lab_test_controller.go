package controllers

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type LabTestController struct {
	Log            *zap.Logger
	LabTestUsecase contracts.LabTestUsecase
}

var (
	labTestControllerInstance *LabTestController
	onceLabTestController     sync.Once
)

func NewLabTestController(logger *zap.Logger, labTestUsecase contracts.LabTestUsecase) *LabTestController {
	onceLabTestController.Do(func() {
		labTestControllerInstance = &LabTestController{
			Log:            logger,
			LabTestUsecase: labTestUsecase,
		}
	})
	return labTestControllerInstance
}

func (ctrl *LabTestController) CreateLabTest(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("LabTestController.CreateLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateLabTest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("LabTestController.CreateLabTest error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("LabTestController.CreateLabTest validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.LabTestUsecase.CreateLabTest(ctx, principal, request)
	if err != nil {
		ctrl.Log.Error("LabTestController.CreateLabTest error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabTestController.CreateLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateLabTestSuccessMessage, response)
}

func (ctrl *LabTestController) FindAllLabTests(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("LabTestController.FindAllLabTests called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryParamsKey, r.URL.RawQuery),
	)

	principal, err := utils.GetPrincipal(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	filter := utils.BuildLabTestFilterRequest(r)
	if err := utils.ValidateStruct(filter); err != nil {
		ctrl.Log.Error("LabTestController.FindAllLabTests validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.LabTestUsecase.FindAllLabTests(ctx, principal, filter)
	if err != nil {
		ctrl.Log.Error("LabTestController.FindAllLabTests error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.TotalCount, filter.Pagination.Page, filter.Pagination.PageSize, r.URL.Path)

	ctrl.Log.Info("LabTestController.FindAllLabTests succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result.LabTests)),
	)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.FindAllLabTestsSuccessMessage, pagination, result.LabTests)
}

func (ctrl *LabTestController) FindLabTestByID(w http.ResponseWriter, r *http.Request) {
	ctrl.handleLabTestAction(w, r, "FindLabTestByID", constvars.FindLabTestSuccessMessage, ctrl.LabTestUsecase.FindLabTestByID)
}

func (ctrl *LabTestController) StartLabTest(w http.ResponseWriter, r *http.Request) {
	ctrl.handleLabTestAction(w, r, "StartLabTest", constvars.StartLabTestSuccessMessage, ctrl.LabTestUsecase.StartLabTest)
}

func (ctrl *LabTestController) CompleteLabTest(w http.ResponseWriter, r *http.Request) {
	ctrl.handleLabTestAction(w, r, "CompleteLabTest", constvars.CompleteLabTestSuccessMessage, ctrl.LabTestUsecase.CompleteLabTest)
}

type labTestAction func(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error)

func (ctrl *LabTestController) handleLabTestAction(w http.ResponseWriter, r *http.Request, method, successMessage string, action labTestAction) {
	requestID := utils.GetRequestID(r.Context())
	labTestID := chi.URLParam(r, constvars.URLParamLabTestID)
	ctrl.Log.Info("LabTestController."+method+" called",
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

	response, err := action(ctx, principal, labTestID)
	if err != nil {
		ctrl.Log.Error("LabTestController."+method+" error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLabTestIDKey, labTestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabTestController."+method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
		zap.String(constvars.LoggingStatusKey, response.Status),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}
