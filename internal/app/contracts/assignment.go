package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentUsecase interface {
	FindAvailableLabTechs(ctx context.Context, principal models.Principal, query requests.AvailableLabTechsQuery) ([]responses.TechnicianAvailability, error)
	AssignLabTest(ctx context.Context, principal models.Principal, labTestID string, request *requests.AssignLabTest) (*responses.LabTest, error)
	FindAssignmentHistory(ctx context.Context, principal models.Principal, labTestID string) ([]responses.AssignmentAudit, error)
}

type AssignmentAuditRepository interface {
	CreateAssignmentAudit(ctx context.Context, audit *models.AssignmentAudit) error
	FindByLabTestID(ctx context.Context, labTestID primitive.ObjectID) ([]models.AssignmentAudit, error)
}
