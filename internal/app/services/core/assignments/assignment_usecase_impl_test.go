package assignments

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/contracts/mocks"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assignmentFixture struct {
	usecase     *assignmentUsecase
	labTests    *mocks.MockLabTestUsecase
	labTestRepo *mocks.MockLabTestRepository
	labTechRepo *mocks.MockLabTechRepository
	auditRepo   *mocks.MockAssignmentAuditRepository
	resolver    *mocks.MockIdentityResolver
}

func newAssignmentFixture(threshold int) *assignmentFixture {
	f := &assignmentFixture{
		labTests:    new(mocks.MockLabTestUsecase),
		labTestRepo: new(mocks.MockLabTestRepository),
		labTechRepo: new(mocks.MockLabTechRepository),
		auditRepo:   new(mocks.MockAssignmentAuditRepository),
		resolver:    new(mocks.MockIdentityResolver),
	}
	f.usecase = &assignmentUsecase{
		LabTestUsecase:            f.labTests,
		LabTestRepository:         f.labTestRepo,
		LabTechRepository:         f.labTechRepo,
		AssignmentAuditRepository: f.auditRepo,
		IdentityResolver:          f.resolver,
		InternalConfig:            &config.InternalConfig{Lab: config.AppLab{LoadThreshold: threshold}},
		Log:                       zap.NewNop(),
	}
	return f
}

func adminPrincipal() (models.Principal, *models.Identity) {
	principal := models.Principal{UserID: "admin-user", Role: constvars.RoleAdmin}
	return principal, &models.Identity{Principal: principal, IsActive: true}
}

func TestBuildAvailability(t *testing.T) {
	busy := models.LabTech{ID: primitive.NewObjectID(), Name: "Busy"}
	idle := models.LabTech{ID: primitive.NewObjectID(), Name: "Idle"}
	half := models.LabTech{ID: primitive.NewObjectID(), Name: "Half"}

	loads := map[primitive.ObjectID]int{busy.ID: 12, half.ID: 5}
	availability := buildAvailability([]models.LabTech{busy, idle, half}, loads, 10)

	require.Len(t, availability, 3)
	assert.Equal(t, "Idle", availability[0].Technician.Name)
	assert.Equal(t, 0, availability[0].PendingLoad)
	assert.True(t, availability[0].IsAvailable)
	assert.Equal(t, 0.0, availability[0].LoadPercentage)

	assert.Equal(t, "Half", availability[1].Technician.Name)
	assert.Equal(t, 50.0, availability[1].LoadPercentage)

	assert.Equal(t, "Busy", availability[2].Technician.Name)
	assert.False(t, availability[2].IsAvailable)
	assert.Equal(t, 100.0, availability[2].LoadPercentage)
}

func TestFindAvailableLabTechs_DefaultThreshold(t *testing.T) {
	f := newAssignmentFixture(0)
	ctx := context.Background()
	principal, _ := adminPrincipal()
	tech := models.LabTech{ID: primitive.NewObjectID(), Department: "Hematology", IsActive: true}

	f.labTechRepo.On("FindActive", ctx, "Hematology", "cbc").Return([]models.LabTech{tech}, nil)
	f.labTestRepo.On("CountProcessingByTechnicians", ctx, []primitive.ObjectID{tech.ID}).Return(map[primitive.ObjectID]int{tech.ID: 9}, nil)

	availability, err := f.usecase.FindAvailableLabTechs(ctx, principal, requests.AvailableLabTechsQuery{Department: "Hematology", TestType: "cbc"})
	require.NoError(t, err)
	require.Len(t, availability, 1)
	assert.True(t, availability[0].IsAvailable)
	assert.Equal(t, 90.0, availability[0].LoadPercentage)
}

func TestAssignLabTest_AdminAssignsActiveTechnician(t *testing.T) {
	f := newAssignmentFixture(10)
	ctx := context.Background()
	principal, identity := adminPrincipal()

	technician := &models.LabTech{ID: primitive.NewObjectID(), Department: "Hematology", IsActive: true}
	labTest := &models.LabTest{ID: primitive.NewObjectID(), Status: constvars.LabTestStatusRequested}

	assignedAt := time.Now().UTC()
	assigned := *labTest
	assigned.Status = constvars.LabTestStatusProcessing
	assigned.AssignedTechnicianID = &technician.ID
	assigned.AssignedAt = &assignedAt

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionAssign).Return(labTest, nil)
	f.labTechRepo.On("FindByID", ctx, technician.ID).Return(technician, nil)
	f.labTests.On("AssignLabTest", ctx, identity, labTest, technician).Return(&assigned, nil)
	f.auditRepo.On("CreateAssignmentAudit", ctx, mock.MatchedBy(func(audit *models.AssignmentAudit) bool {
		return audit.LabTestID == labTest.ID &&
			audit.TechnicianID == technician.ID &&
			audit.AssignedByRole == constvars.RoleAdmin &&
			audit.AssignedAt.Equal(assignedAt)
	})).Return(nil)

	response, err := f.usecase.AssignLabTest(ctx, principal, labTest.ID.Hex(), &requests.AssignLabTest{TechnicianID: technician.ID.Hex()})

	require.NoError(t, err)
	assert.Equal(t, constvars.LabTestStatusProcessing, response.Status)
	assert.Equal(t, technician.ID.Hex(), response.AssignedTechnicianID)
	assert.NotNil(t, response.AssignedAt)
	f.auditRepo.AssertExpectations(t)
}

func TestAssignLabTest_AuditFailureKeepsAssignment(t *testing.T) {
	f := newAssignmentFixture(10)
	ctx := context.Background()
	principal, identity := adminPrincipal()
	technician := &models.LabTech{ID: primitive.NewObjectID(), IsActive: true}
	labTest := &models.LabTest{ID: primitive.NewObjectID(), Status: constvars.LabTestStatusRequested}
	assigned := &models.LabTest{ID: labTest.ID, Status: constvars.LabTestStatusProcessing, AssignedTechnicianID: &technician.ID}

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionAssign).Return(labTest, nil)
	f.labTechRepo.On("FindByID", ctx, technician.ID).Return(technician, nil)
	f.labTests.On("AssignLabTest", ctx, identity, labTest, technician).Return(assigned, nil)
	f.auditRepo.On("CreateAssignmentAudit", ctx, mock.Anything).Return(errors.New("write concern"))

	response, err := f.usecase.AssignLabTest(ctx, principal, labTest.ID.Hex(), &requests.AssignLabTest{TechnicianID: technician.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, constvars.LabTestStatusProcessing, response.Status)
}

func TestAssignLabTest_TechnicianChecks(t *testing.T) {
	tests := []struct {
		name           string
		technician     *models.LabTech
		expectedStatus int
	}{
		{"Unknown Technician", nil, constvars.StatusNotFound},
		{"Inactive Technician", &models.LabTech{IsActive: false}, constvars.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newAssignmentFixture(10)
			ctx := context.Background()
			principal, identity := adminPrincipal()
			labTest := &models.LabTest{ID: primitive.NewObjectID(), Status: constvars.LabTestStatusRequested}
			technicianID := primitive.NewObjectID()

			f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
			f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionAssign).Return(labTest, nil)
			if tc.technician == nil {
				f.labTechRepo.On("FindByID", ctx, technicianID).Return(nil, nil)
			} else {
				tc.technician.ID = technicianID
				f.labTechRepo.On("FindByID", ctx, technicianID).Return(tc.technician, nil)
			}

			_, err := f.usecase.AssignLabTest(ctx, principal, labTest.ID.Hex(), &requests.AssignLabTest{TechnicianID: technicianID.Hex()})
			assert.Equal(t, tc.expectedStatus, exceptions.StatusCodeOf(err))
			f.labTests.AssertNotCalled(t, "AssignLabTest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAssignLabTest_LabTechRoleRejected(t *testing.T) {
	f := newAssignmentFixture(10)
	ctx := context.Background()
	principal := models.Principal{UserID: "tech-user", Role: constvars.RoleLabTech}
	f.resolver.On("Resolve", ctx, principal).Return(&models.Identity{Principal: principal, ProfileID: primitive.NewObjectID()}, nil)

	_, err := f.usecase.AssignLabTest(ctx, principal, primitive.NewObjectID().Hex(), &requests.AssignLabTest{TechnicianID: primitive.NewObjectID().Hex()})
	assert.Equal(t, constvars.StatusForbidden, exceptions.StatusCodeOf(err))
}

func TestFindAssignmentHistory(t *testing.T) {
	f := newAssignmentFixture(10)
	ctx := context.Background()
	principal, identity := adminPrincipal()
	labTest := &models.LabTest{ID: primitive.NewObjectID()}
	audits := []models.AssignmentAudit{{ID: primitive.NewObjectID(), LabTestID: labTest.ID, TechnicianID: primitive.NewObjectID(), AssignedByRole: constvars.RoleAdmin}}

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionRead).Return(labTest, nil)
	f.auditRepo.On("FindByLabTestID", ctx, labTest.ID).Return(audits, nil)

	history, err := f.usecase.FindAssignmentHistory(ctx, principal, labTest.ID.Hex())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, labTest.ID.Hex(), history[0].LabTestID)
}
