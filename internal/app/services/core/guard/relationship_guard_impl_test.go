package guard

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/contracts/mocks"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func identityOf(role string, profileID primitive.ObjectID) *models.Identity {
	return &models.Identity{
		Principal: models.Principal{UserID: "user-" + role, Role: role},
		ProfileID: profileID,
		IsActive:  true,
	}
}

func TestAuthorize_LabTest(t *testing.T) {
	doctorID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()
	otherPatientID := primitive.NewObjectID()
	techID := primitive.NewObjectID()
	otherTechID := primitive.NewObjectID()

	assigned := &models.LabTest{ID: primitive.NewObjectID(), PatientID: patientID, AssignedTechnicianID: &techID, Status: constvars.LabTestStatusProcessing}
	unassigned := &models.LabTest{ID: primitive.NewObjectID(), PatientID: patientID, Status: constvars.LabTestStatusRequested}

	tests := []struct {
		name          string
		identity      *models.Identity
		labTest       *models.LabTest
		action        string
		appointment   bool
		expectAllowed bool
	}{
		{"Admin Reads Anything", identityOf(constvars.RoleAdmin, primitive.NilObjectID), assigned, constvars.ActionRead, false, true},
		{"Doctor With Appointment Reads", identityOf(constvars.RoleDoctor, doctorID), assigned, constvars.ActionRead, true, true},
		{"Doctor With Appointment Assigns", identityOf(constvars.RoleDoctor, doctorID), unassigned, constvars.ActionAssign, true, true},
		{"Doctor Without Appointment Denied", identityOf(constvars.RoleDoctor, doctorID), assigned, constvars.ActionRead, false, false},
		{"Doctor Cannot Complete", identityOf(constvars.RoleDoctor, doctorID), assigned, constvars.ActionComplete, true, false},
		{"Assigned Tech Completes", identityOf(constvars.RoleLabTech, techID), assigned, constvars.ActionComplete, false, true},
		{"Assigned Tech Submits Report", identityOf(constvars.RoleLabTech, techID), assigned, constvars.ActionSubmitReport, false, true},
		{"Other Tech Denied", identityOf(constvars.RoleLabTech, otherTechID), assigned, constvars.ActionRead, false, false},
		{"Tech Claims Unassigned", identityOf(constvars.RoleLabTech, otherTechID), unassigned, constvars.ActionStart, false, true},
		{"Tech Reads Unassigned Queue", identityOf(constvars.RoleLabTech, otherTechID), unassigned, constvars.ActionRead, false, true},
		{"Tech Cannot Complete Unassigned", identityOf(constvars.RoleLabTech, otherTechID), unassigned, constvars.ActionComplete, false, false},
		{"Tech Cannot Assign", identityOf(constvars.RoleLabTech, techID), assigned, constvars.ActionAssign, false, false},
		{"Patient Reads Own", identityOf(constvars.RolePatient, patientID), assigned, constvars.ActionReadReport, false, true},
		{"Patient Cannot Start Own", identityOf(constvars.RolePatient, patientID), unassigned, constvars.ActionStart, false, false},
		{"Patient Cannot Read Other", identityOf(constvars.RolePatient, otherPatientID), assigned, constvars.ActionRead, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appointments := new(mocks.MockAppointmentRepository)
			appointments.On("ExistsBetween", mock.Anything, doctorID, patientID).Return(tc.appointment, nil).Maybe()
			guard := &relationshipGuard{AppointmentRepository: appointments, Log: zap.NewNop()}

			decision, err := guard.Authorize(context.Background(), tc.identity, models.LabTestResource(tc.labTest, tc.action))
			require.NoError(t, err)
			assert.Equal(t, tc.expectAllowed, decision.Allowed, decision.Reason)
			assert.NotEmpty(t, decision.Reason)
		})
	}
}

func TestAuthorize_Patient(t *testing.T) {
	doctorID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()

	t.Run("Doctor Creates For Related Patient", func(t *testing.T) {
		appointments := new(mocks.MockAppointmentRepository)
		appointments.On("ExistsBetween", mock.Anything, doctorID, patientID).Return(true, nil)
		guard := &relationshipGuard{AppointmentRepository: appointments, Log: zap.NewNop()}

		decision, err := guard.Authorize(context.Background(), identityOf(constvars.RoleDoctor, doctorID), models.PatientResource(patientID, constvars.ActionCreate))
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		appointments.AssertExpectations(t)
	})

	t.Run("Lab Tech Has No Patient Relationship", func(t *testing.T) {
		appointments := new(mocks.MockAppointmentRepository)
		guard := &relationshipGuard{AppointmentRepository: appointments, Log: zap.NewNop()}

		decision, err := guard.Authorize(context.Background(), identityOf(constvars.RoleLabTech, primitive.NewObjectID()), models.PatientResource(patientID, constvars.ActionRead))
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		appointments.AssertNotCalled(t, "ExistsBetween")
	})

	t.Run("Store Failure Is An Error", func(t *testing.T) {
		appointments := new(mocks.MockAppointmentRepository)
		appointments.On("ExistsBetween", mock.Anything, doctorID, patientID).Return(false, errors.New("timeout"))
		guard := &relationshipGuard{AppointmentRepository: appointments, Log: zap.NewNop()}

		_, err := guard.Authorize(context.Background(), identityOf(constvars.RoleDoctor, doctorID), models.PatientResource(patientID, constvars.ActionCreate))
		assert.Error(t, err)
	})
}

func TestAuthorize_LabTech(t *testing.T) {
	techID := primitive.NewObjectID()
	guard := &relationshipGuard{AppointmentRepository: new(mocks.MockAppointmentRepository), Log: zap.NewNop()}
	ctx := context.Background()

	tests := []struct {
		name          string
		identity      *models.Identity
		expectAllowed bool
	}{
		{"Admin", identityOf(constvars.RoleAdmin, primitive.NilObjectID), true},
		{"Doctor", identityOf(constvars.RoleDoctor, primitive.NewObjectID()), true},
		{"Own Stats", identityOf(constvars.RoleLabTech, techID), true},
		{"Other Technician", identityOf(constvars.RoleLabTech, primitive.NewObjectID()), false},
		{"Patient", identityOf(constvars.RolePatient, primitive.NewObjectID()), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := guard.Authorize(ctx, tc.identity, models.LabTechResource(techID, constvars.ActionReadStats))
			require.NoError(t, err)
			assert.Equal(t, tc.expectAllowed, decision.Allowed)
		})
	}
}
