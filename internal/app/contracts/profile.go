package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID primitive.ObjectID) (*models.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
}

type PatientRepository interface {
	FindByID(ctx context.Context, patientID primitive.ObjectID) (*models.Patient, error)
	FindByUserID(ctx context.Context, userID string) (*models.Patient, error)
}

type LabTechRepository interface {
	FindByID(ctx context.Context, technicianID primitive.ObjectID) (*models.LabTech, error)
	FindByUserID(ctx context.Context, userID string) (*models.LabTech, error)
	FindActive(ctx context.Context, department, testType string) ([]models.LabTech, error)
	FindIDsByDepartment(ctx context.Context, department string) ([]primitive.ObjectID, error)
	IncrementCompletion(ctx context.Context, technicianID primitive.ObjectID, qualityScore float64) error
}

type AppointmentRepository interface {
	ExistsBetween(ctx context.Context, doctorID, patientID primitive.ObjectID) (bool, error)
}
