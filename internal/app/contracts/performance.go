package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
)

type PerformanceUsecase interface {
	FindLabTechPerformance(ctx context.Context, principal models.Principal, technicianID string, dateRange requests.DateRange) (*responses.PerformanceStats, error)
	FindLabTechBreakdown(ctx context.Context, principal models.Principal, technicianID string) ([]responses.TestTypeBreakdown, error)
}
