package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LabReportUsecase interface {
	SubmitLabReport(ctx context.Context, principal models.Principal, labTestID string, request *requests.SubmitLabReport) (*responses.LabReport, error)
	FindLabReport(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportView, error)
	FindLabReportDocument(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportDocument, error)
}

type LabReportRepository interface {
	// CreateLabReport returns a 409 error when a report already exists for the lab test.
	CreateLabReport(ctx context.Context, report *models.LabReport) (*models.LabReport, error)
	FindByLabTestID(ctx context.Context, labTestID primitive.ObjectID) (*models.LabReport, error)
	SetDocumentObjectName(ctx context.Context, reportID primitive.ObjectID, objectName string) error
}

type ReportRenderer interface {
	Render(ctx context.Context, view *responses.LabReportView) ([]byte, error)
	ContentType() string
	FileExtension() string
}
