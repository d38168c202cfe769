package identity

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/contracts/mocks"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestResolver() (*identityResolver, *mocks.MockDoctorRepository, *mocks.MockPatientRepository, *mocks.MockLabTechRepository) {
	doctorRepo := new(mocks.MockDoctorRepository)
	patientRepo := new(mocks.MockPatientRepository)
	labTechRepo := new(mocks.MockLabTechRepository)
	resolver := &identityResolver{
		DoctorRepository:  doctorRepo,
		PatientRepository: patientRepo,
		LabTechRepository: labTechRepo,
		Log:               zap.NewNop(),
	}
	return resolver, doctorRepo, patientRepo, labTechRepo
}

func TestResolve_Admin(t *testing.T) {
	resolver, doctorRepo, patientRepo, labTechRepo := newTestResolver()
	ctx := context.Background()

	identity, err := resolver.Resolve(ctx, models.Principal{UserID: "admin-1", Role: constvars.RoleAdmin, Name: "Root"})
	require.NoError(t, err)
	assert.False(t, identity.HasProfile())
	assert.Equal(t, constvars.RoleAdmin, identity.Role())
	assert.Equal(t, "Root", identity.Name)

	doctorRepo.AssertNotCalled(t, "FindByUserID")
	patientRepo.AssertNotCalled(t, "FindByUserID")
	labTechRepo.AssertNotCalled(t, "FindByUserID")
}

func TestResolve_Doctor(t *testing.T) {
	resolver, doctorRepo, _, _ := newTestResolver()
	ctx := context.Background()
	doctorID := primitive.NewObjectID()

	doctorRepo.On("FindByUserID", ctx, "doc-1").Return(&models.Doctor{ID: doctorID, Name: "Dr. Grey", Department: "Cardiology"}, nil)

	identity, err := resolver.Resolve(ctx, models.Principal{UserID: "doc-1", Role: constvars.RoleDoctor})
	require.NoError(t, err)
	assert.Equal(t, doctorID, identity.ProfileID)
	assert.Equal(t, "Dr. Grey", identity.Name)
	assert.Equal(t, "Cardiology", identity.Department)
	doctorRepo.AssertExpectations(t)
}

func TestResolve_LabTechCarriesActiveFlag(t *testing.T) {
	resolver, _, _, labTechRepo := newTestResolver()
	ctx := context.Background()
	techID := primitive.NewObjectID()

	labTechRepo.On("FindByUserID", ctx, "tech-1").Return(&models.LabTech{ID: techID, Name: "Sam", Department: "Hematology", IsActive: false}, nil)

	identity, err := resolver.Resolve(ctx, models.Principal{UserID: "tech-1", Role: constvars.RoleLabTech})
	require.NoError(t, err)
	assert.Equal(t, techID, identity.ProfileID)
	assert.False(t, identity.IsActive)
}

func TestResolve_Patient(t *testing.T) {
	resolver, _, patientRepo, _ := newTestResolver()
	ctx := context.Background()
	patientID := primitive.NewObjectID()

	patientRepo.On("FindByUserID", ctx, "pat-1").Return(&models.Patient{ID: patientID, Name: "Pat"}, nil)

	identity, err := resolver.Resolve(ctx, models.Principal{UserID: "pat-1", Role: constvars.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, patientID, identity.ProfileID)
}

func TestResolve_ProfileMissing(t *testing.T) {
	resolver, _, patientRepo, _ := newTestResolver()
	ctx := context.Background()

	patientRepo.On("FindByUserID", ctx, "pat-404").Return(nil, nil)

	identity, err := resolver.Resolve(ctx, models.Principal{UserID: "pat-404", Role: constvars.RolePatient})
	assert.Nil(t, identity)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
}

func TestResolve_RepositoryError(t *testing.T) {
	resolver, doctorRepo, _, _ := newTestResolver()
	ctx := context.Background()
	storeErr := exceptions.ErrMongoDBFindDocument(errors.New("connection reset"))

	doctorRepo.On("FindByUserID", ctx, "doc-1").Return(nil, storeErr)

	_, err := resolver.Resolve(ctx, models.Principal{UserID: "doc-1", Role: constvars.RoleDoctor})
	assert.Equal(t, constvars.StatusInternalServerError, exceptions.StatusCodeOf(err))
}

func TestResolve_UnknownRole(t *testing.T) {
	resolver, _, _, _ := newTestResolver()

	_, err := resolver.Resolve(context.Background(), models.Principal{UserID: "x", Role: "Janitor"})
	assert.Equal(t, constvars.StatusForbidden, exceptions.StatusCodeOf(err))
}
