package middlewares

import (
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	SessionService contracts.SessionService
	RoleUsecase    contracts.RoleUsecase
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, sessionService contracts.SessionService, roleUsecase contracts.RoleUsecase) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		SessionService: sessionService,
		RoleUsecase:    roleUsecase,
	}
}
