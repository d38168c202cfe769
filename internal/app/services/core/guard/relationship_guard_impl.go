package guard

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/utils"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	relationshipGuardInstance contracts.RelationshipGuard
	onceRelationshipGuard     sync.Once
)

// Actions a doctor may take on a patient it has a relationship with.
var doctorActions = map[string]bool{
	constvars.ActionRead:       true,
	constvars.ActionCreate:     true,
	constvars.ActionAssign:     true,
	constvars.ActionReadReport: true,
	constvars.ActionReadStats:  true,
}

var patientActions = map[string]bool{
	constvars.ActionRead:       true,
	constvars.ActionReadReport: true,
}

// Actions an assigned technician may take on its own test.
var labTechActions = map[string]bool{
	constvars.ActionRead:         true,
	constvars.ActionStart:        true,
	constvars.ActionComplete:     true,
	constvars.ActionSubmitReport: true,
	constvars.ActionReadReport:   true,
}

type relationshipGuard struct {
	AppointmentRepository contracts.AppointmentRepository
	Log                   *zap.Logger
}

func NewRelationshipGuard(appointmentRepository contracts.AppointmentRepository, logger *zap.Logger) contracts.RelationshipGuard {
	onceRelationshipGuard.Do(func() {
		relationshipGuardInstance = &relationshipGuard{
			AppointmentRepository: appointmentRepository,
			Log:                   logger,
		}
	})
	return relationshipGuardInstance
}

// Authorize decides whether identity may perform resource.Action. The error
// is only set for store failures; a deny is a decision, not an error.
func (g *relationshipGuard) Authorize(ctx context.Context, identity *models.Identity, resource models.GuardResource) (models.GuardDecision, error) {
	requestID := utils.GetRequestID(ctx)

	decision, err := g.decide(ctx, identity, resource)
	if err != nil {
		g.Log.Error("relationshipGuard.Authorize error checking relationship",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return models.GuardDecision{}, err
	}

	g.Log.Debug("relationshipGuard.Authorize decided",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.Principal.UserID),
		zap.String(constvars.LoggingRoleKey, identity.Role()),
		zap.String(constvars.LoggingReasonKey, decision.Reason),
		zap.Bool(constvars.LoggingSuccessKey, decision.Allowed),
	)
	return decision, nil
}

func (g *relationshipGuard) decide(ctx context.Context, identity *models.Identity, resource models.GuardResource) (models.GuardDecision, error) {
	if identity == nil {
		return models.Deny("no identity"), nil
	}
	if identity.Role() == constvars.RoleAdmin {
		return models.Allow("admin"), nil
	}

	switch resource.Type {
	case constvars.GuardResourcePatient:
		return g.decidePatient(ctx, identity, resource.PatientID, resource.Action)
	case constvars.GuardResourceLabTest:
		if resource.LabTest == nil {
			return models.Deny("lab test missing"), nil
		}
		return g.decideLabTest(ctx, identity, resource.LabTest, resource.Action)
	case constvars.GuardResourceLabTech:
		return decideLabTech(identity, resource.TechnicianID), nil
	}
	return models.Deny("unknown resource type"), nil
}

func (g *relationshipGuard) decidePatient(ctx context.Context, identity *models.Identity, patientID primitive.ObjectID, action string) (models.GuardDecision, error) {
	switch identity.Role() {
	case constvars.RoleDoctor:
		if !doctorActions[action] {
			return models.Deny("action not permitted for doctor"), nil
		}
		return g.doctorHasAppointment(ctx, identity.ProfileID, patientID)
	case constvars.RolePatient:
		if patientActions[action] && identity.ProfileID == patientID {
			return models.Allow("own record"), nil
		}
		return models.Deny("not own record"), nil
	}
	return models.Deny("role has no patient relationship"), nil
}

func (g *relationshipGuard) decideLabTest(ctx context.Context, identity *models.Identity, labTest *models.LabTest, action string) (models.GuardDecision, error) {
	switch identity.Role() {
	case constvars.RoleDoctor:
		if !doctorActions[action] {
			return models.Deny("action not permitted for doctor"), nil
		}
		return g.doctorHasAppointment(ctx, identity.ProfileID, labTest.PatientID)

	case constvars.RoleLabTech:
		if !labTechActions[action] {
			return models.Deny("action not permitted for lab technician"), nil
		}
		if labTest.IsAssignedTo(identity.ProfileID) {
			return models.Allow("assigned technician"), nil
		}
		claimable := !labTest.HasTechnician() && labTest.Status == constvars.LabTestStatusRequested
		if claimable && (action == constvars.ActionRead || action == constvars.ActionStart) {
			return models.Allow("unassigned queue"), nil
		}
		return models.Deny("not assigned technician"), nil

	case constvars.RolePatient:
		if patientActions[action] && labTest.PatientID == identity.ProfileID {
			return models.Allow("own lab test"), nil
		}
		return models.Deny("not own lab test"), nil
	}
	return models.Deny("unknown role"), nil
}

func decideLabTech(identity *models.Identity, technicianID primitive.ObjectID) models.GuardDecision {
	switch identity.Role() {
	case constvars.RoleDoctor:
		return models.Allow("doctor")
	case constvars.RoleLabTech:
		if identity.ProfileID == technicianID {
			return models.Allow("own stats")
		}
		return models.Deny("other technician")
	}
	return models.Deny("role cannot read technician stats")
}

func (g *relationshipGuard) doctorHasAppointment(ctx context.Context, doctorID, patientID primitive.ObjectID) (models.GuardDecision, error) {
	exists, err := g.AppointmentRepository.ExistsBetween(ctx, doctorID, patientID)
	if err != nil {
		return models.GuardDecision{}, err
	}
	if !exists {
		return models.Deny("no appointment with patient"), nil
	}
	return models.Allow("appointment with patient"), nil
}
