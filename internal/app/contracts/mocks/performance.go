package mocks

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockPerformanceUsecase struct {
	mock.Mock
}

func (m *MockPerformanceUsecase) FindLabTechPerformance(ctx context.Context, principal models.Principal, technicianID string, dateRange requests.DateRange) (*responses.PerformanceStats, error) {
	args := m.Called(ctx, principal, technicianID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PerformanceStats), args.Error(1)
}

func (m *MockPerformanceUsecase) FindLabTechBreakdown(ctx context.Context, principal models.Principal, technicianID string) ([]responses.TestTypeBreakdown, error) {
	args := m.Called(ctx, principal, technicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.TestTypeBreakdown), args.Error(1)
}
