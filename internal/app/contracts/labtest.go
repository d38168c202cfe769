package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LabTestUsecase interface {
	CreateLabTest(ctx context.Context, principal models.Principal, request *requests.CreateLabTest) (*responses.LabTest, error)
	FindLabTestByID(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error)
	FindAllLabTests(ctx context.Context, principal models.Principal, filter requests.LabTestFilter) (*responses.LabTestList, error)
	StartLabTest(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error)
	CompleteLabTest(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error)

	// FindAuthorizedLabTest loads a lab test and runs the relationship guard
	// for action. Missing and denied tests both come back as 404 errors.
	FindAuthorizedLabTest(ctx context.Context, identity *models.Identity, labTestID string, action string) (*models.LabTest, error)
	// AssignLabTest moves a Requested test to Processing for technician.
	AssignLabTest(ctx context.Context, identity *models.Identity, labTest *models.LabTest, technician *models.LabTech) (*models.LabTest, error)
}

type LabTestRepository interface {
	CreateLabTest(ctx context.Context, labTest *models.LabTest) (*models.LabTest, error)
	FindByID(ctx context.Context, labTestID primitive.ObjectID) (*models.LabTest, error)
	FindAll(ctx context.Context, query models.LabTestQuery) ([]models.LabTest, int, error)
	FindCompletedByTechnician(ctx context.Context, query models.PerformanceQuery) ([]models.LabTest, error)
	CountProcessingByTechnicians(ctx context.Context, technicianIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error)

	// Transitions return nil, nil when the test is not in the expected state.
	MarkAssigned(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error)
	MarkStarted(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error)
	MarkCompleted(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error)
}
