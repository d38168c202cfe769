package mocks

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockLabTestUsecase struct {
	mock.Mock
}

func (m *MockLabTestUsecase) CreateLabTest(ctx context.Context, principal models.Principal, request *requests.CreateLabTest) (*responses.LabTest, error) {
	args := m.Called(ctx, principal, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabTest), args.Error(1)
}

func (m *MockLabTestUsecase) FindLabTestByID(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error) {
	args := m.Called(ctx, principal, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabTest), args.Error(1)
}

func (m *MockLabTestUsecase) FindAllLabTests(ctx context.Context, principal models.Principal, filter requests.LabTestFilter) (*responses.LabTestList, error) {
	args := m.Called(ctx, principal, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabTestList), args.Error(1)
}

func (m *MockLabTestUsecase) StartLabTest(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error) {
	args := m.Called(ctx, principal, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabTest), args.Error(1)
}

func (m *MockLabTestUsecase) CompleteLabTest(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error) {
	args := m.Called(ctx, principal, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabTest), args.Error(1)
}

func (m *MockLabTestUsecase) FindAuthorizedLabTest(ctx context.Context, identity *models.Identity, labTestID string, action string) (*models.LabTest, error) {
	args := m.Called(ctx, identity, labTestID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockLabTestUsecase) AssignLabTest(ctx context.Context, identity *models.Identity, labTest *models.LabTest, technician *models.LabTech) (*models.LabTest, error) {
	args := m.Called(ctx, identity, labTest, technician)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

type MockLabTestRepository struct {
	mock.Mock
}

func (m *MockLabTestRepository) CreateLabTest(ctx context.Context, labTest *models.LabTest) (*models.LabTest, error) {
	args := m.Called(ctx, labTest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockLabTestRepository) FindByID(ctx context.Context, labTestID primitive.ObjectID) (*models.LabTest, error) {
	args := m.Called(ctx, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockLabTestRepository) FindAll(ctx context.Context, query models.LabTestQuery) ([]models.LabTest, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.LabTest), args.Int(1), args.Error(2)
}

func (m *MockLabTestRepository) FindCompletedByTechnician(ctx context.Context, query models.PerformanceQuery) ([]models.LabTest, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabTest), args.Error(1)
}

func (m *MockLabTestRepository) CountProcessingByTechnicians(ctx context.Context, technicianIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	args := m.Called(ctx, technicianIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[primitive.ObjectID]int), args.Error(1)
}

func (m *MockLabTestRepository) MarkAssigned(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error) {
	args := m.Called(ctx, labTestID, technicianID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockLabTestRepository) MarkStarted(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error) {
	args := m.Called(ctx, labTestID, technicianID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockLabTestRepository) MarkCompleted(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error) {
	args := m.Called(ctx, labTestID, technicianID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}
