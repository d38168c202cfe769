package mocks

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockLabReportUsecase struct {
	mock.Mock
}

func (m *MockLabReportUsecase) SubmitLabReport(ctx context.Context, principal models.Principal, labTestID string, request *requests.SubmitLabReport) (*responses.LabReport, error) {
	args := m.Called(ctx, principal, labTestID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabReport), args.Error(1)
}

func (m *MockLabReportUsecase) FindLabReport(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportView, error) {
	args := m.Called(ctx, principal, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabReportView), args.Error(1)
}

func (m *MockLabReportUsecase) FindLabReportDocument(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportDocument, error) {
	args := m.Called(ctx, principal, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LabReportDocument), args.Error(1)
}

type MockLabReportRepository struct {
	mock.Mock
}

func (m *MockLabReportRepository) CreateLabReport(ctx context.Context, report *models.LabReport) (*models.LabReport, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabReport), args.Error(1)
}

func (m *MockLabReportRepository) FindByLabTestID(ctx context.Context, labTestID primitive.ObjectID) (*models.LabReport, error) {
	args := m.Called(ctx, labTestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabReport), args.Error(1)
}

func (m *MockLabReportRepository) SetDocumentObjectName(ctx context.Context, reportID primitive.ObjectID, objectName string) error {
	args := m.Called(ctx, reportID, objectName)
	return args.Error(0)
}

type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) Render(ctx context.Context, view *responses.LabReportView) ([]byte, error) {
	args := m.Called(ctx, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportRenderer) ContentType() string {
	return m.Called().String(0)
}

func (m *MockReportRenderer) FileExtension() string {
	return m.Called().String(0)
}
