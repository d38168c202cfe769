package identity

import (
	"context"
	"errors"
	"fmt"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

var (
	identityResolverInstance contracts.IdentityResolver
	onceIdentityResolver     sync.Once
)

type identityResolver struct {
	DoctorRepository  contracts.DoctorRepository
	PatientRepository contracts.PatientRepository
	LabTechRepository contracts.LabTechRepository
	Log               *zap.Logger
}

func NewIdentityResolver(
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	labTechRepository contracts.LabTechRepository,
	logger *zap.Logger,
) contracts.IdentityResolver {
	onceIdentityResolver.Do(func() {
		identityResolverInstance = &identityResolver{
			DoctorRepository:  doctorRepository,
			PatientRepository: patientRepository,
			LabTechRepository: labTechRepository,
			Log:               logger,
		}
	})
	return identityResolverInstance
}

// Resolve maps the session principal onto the profile for its role. Admin
// resolves without a profile.
func (r *identityResolver) Resolve(ctx context.Context, principal models.Principal) (*models.Identity, error) {
	requestID := utils.GetRequestID(ctx)
	r.Log.Info("identityResolver.Resolve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, principal.UserID),
		zap.String(constvars.LoggingRoleKey, principal.Role),
	)

	identity := &models.Identity{Principal: principal, Name: principal.Name, IsActive: true}

	switch principal.Role {
	case constvars.RoleAdmin:
		return identity, nil

	case constvars.RoleDoctor:
		doctor, err := r.DoctorRepository.FindByUserID(ctx, principal.UserID)
		if err != nil {
			r.logError(requestID, "error fetching doctor profile", err)
			return nil, err
		}
		if doctor == nil {
			return nil, r.profileNotFound(requestID, principal)
		}
		identity.ProfileID = doctor.ID
		identity.Name = doctor.Name
		identity.Department = doctor.Department

	case constvars.RolePatient:
		patient, err := r.PatientRepository.FindByUserID(ctx, principal.UserID)
		if err != nil {
			r.logError(requestID, "error fetching patient profile", err)
			return nil, err
		}
		if patient == nil {
			return nil, r.profileNotFound(requestID, principal)
		}
		identity.ProfileID = patient.ID
		identity.Name = patient.Name

	case constvars.RoleLabTech:
		labTech, err := r.LabTechRepository.FindByUserID(ctx, principal.UserID)
		if err != nil {
			r.logError(requestID, "error fetching lab technician profile", err)
			return nil, err
		}
		if labTech == nil {
			return nil, r.profileNotFound(requestID, principal)
		}
		identity.ProfileID = labTech.ID
		identity.Name = labTech.Name
		identity.Department = labTech.Department
		identity.IsActive = labTech.IsActive

	default:
		err := exceptions.ErrNotMatchRoleType(fmt.Errorf("unknown role %q", principal.Role))
		r.logError(requestID, "unknown role", err)
		return nil, err
	}

	r.Log.Info("identityResolver.Resolve succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, principal.UserID),
	)
	return identity, nil
}

func (r *identityResolver) profileNotFound(requestID string, principal models.Principal) error {
	err := exceptions.ErrProfileNotFound(errors.New("no profile for user"), principal.UserID)
	r.logError(requestID, "profile not found", err)
	return err
}

func (r *identityResolver) logError(requestID, message string, err error) {
	r.Log.Error("identityResolver.Resolve "+message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
}
