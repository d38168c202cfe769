package mocks

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockAssignmentUsecase struct {
	mock.Mock
}

func (m *MockAssignmentUsecase) FindAvailableLabTechs(ctx context.Context, principal models.Principal, query requests.AvailableLabTechsQuery) ([]responses.TechnicianAvailability, error) {
	args := m.Called(ctx, principal, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.TechnicianAvailability), args.Error(1)
}

func (m *MockAssignmentUsecase) AssignLabTest(ctx context.Context, principal models.Principal, labTestID string, request *requests.AssignLabTest) (*responses.LabTest, error) {
	args := m.Called(ctx, principal, labTestID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabTest), args.Error(1)
}

func (m *MockAssignmentUsecase) FindAssignmentHistory(ctx context.Context, principal models.Principal, labTestID string) ([]responses.AssignmentAudit, error) {
	args := m.Called(ctx, principal, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.AssignmentAudit), args.Error(1)
}

type MockAssignmentAuditRepository struct {
	mock.Mock
}

func (m *MockAssignmentAuditRepository) CreateAssignmentAudit(ctx context.Context, audit *models.AssignmentAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAssignmentAuditRepository) FindByLabTestID(ctx context.Context, labTestID primitive.ObjectID) ([]models.AssignmentAudit, error) {
	args := m.Called(ctx, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssignmentAudit), args.Error(1)
}
