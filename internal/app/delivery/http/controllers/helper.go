package controllers

import (
	"context"
	"errors"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
