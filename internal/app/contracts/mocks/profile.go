package mocks

import (
	"context"
	"hospital-lab-service/internal/app/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, doctorID primitive.ObjectID) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindByID(ctx context.Context, patientID primitive.ObjectID) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

type MockLabTechRepository struct {
	mock.Mock
}

func (m *MockLabTechRepository) FindByID(ctx context.Context, technicianID primitive.ObjectID) (*models.LabTech, error) {
	args := m.Called(ctx, technicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTech), args.Error(1)
}

func (m *MockLabTechRepository) FindByUserID(ctx context.Context, userID string) (*models.LabTech, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTech), args.Error(1)
}

func (m *MockLabTechRepository) FindActive(ctx context.Context, department, testType string) ([]models.LabTech, error) {
	args := m.Called(ctx, department, testType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabTech), args.Error(1)
}

func (m *MockLabTechRepository) FindIDsByDepartment(ctx context.Context, department string) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockLabTechRepository) IncrementCompletion(ctx context.Context, technicianID primitive.ObjectID, qualityScore float64) error {
	args := m.Called(ctx, technicianID, qualityScore)
	return args.Error(0)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) ExistsBetween(ctx context.Context, doctorID, patientID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}
