package assignments

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"math"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assignmentUsecase struct {
	LabTestUsecase            contracts.LabTestUsecase
	LabTestRepository         contracts.LabTestRepository
	LabTechRepository         contracts.LabTechRepository
	AssignmentAuditRepository contracts.AssignmentAuditRepository
	IdentityResolver          contracts.IdentityResolver
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
}

var (
	assignmentUsecaseInstance contracts.AssignmentUsecase
	onceAssignmentUsecase     sync.Once
)

func NewAssignmentUsecase(
	labTestUsecase contracts.LabTestUsecase,
	labTestRepository contracts.LabTestRepository,
	labTechRepository contracts.LabTechRepository,
	assignmentAuditRepository contracts.AssignmentAuditRepository,
	identityResolver contracts.IdentityResolver,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AssignmentUsecase {
	onceAssignmentUsecase.Do(func() {
		instance := &assignmentUsecase{
			LabTestUsecase:            labTestUsecase,
			LabTestRepository:         labTestRepository,
			LabTechRepository:         labTechRepository,
			AssignmentAuditRepository: assignmentAuditRepository,
			IdentityResolver:          identityResolver,
			InternalConfig:            internalConfig,
			Log:                       logger,
		}
		assignmentUsecaseInstance = instance
	})
	return assignmentUsecaseInstance
}

// FindAvailableLabTechs lists active technicians with their Processing load,
// least loaded first. Availability is advisory and never blocks assignment.
func (uc *assignmentUsecase) FindAvailableLabTechs(ctx context.Context, principal models.Principal, query requests.AvailableLabTechsQuery) ([]responses.TechnicianAvailability, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assignmentUsecase.FindAvailableLabTechs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, principal.UserID),
		zap.Any(constvars.LoggingQueryParamsKey, query),
	)

	labTechs, err := uc.LabTechRepository.FindActive(ctx, query.Department, query.TestType)
	if err != nil {
		uc.Log.Error("assignmentUsecase.FindAvailableLabTechs error fetching lab technicians",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	technicianIDs := make([]primitive.ObjectID, 0, len(labTechs))
	for _, labTech := range labTechs {
		technicianIDs = append(technicianIDs, labTech.ID)
	}

	loads, err := uc.LabTestRepository.CountProcessingByTechnicians(ctx, technicianIDs)
	if err != nil {
		uc.Log.Error("assignmentUsecase.FindAvailableLabTechs error counting pending load",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	availability := buildAvailability(labTechs, loads, uc.loadThreshold())

	uc.Log.Info("assignmentUsecase.FindAvailableLabTechs succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(availability)),
	)
	return availability, nil
}

func (uc *assignmentUsecase) AssignLabTest(ctx context.Context, principal models.Principal, labTestID string, request *requests.AssignLabTest) (*responses.LabTest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assignmentUsecase.AssignLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
		zap.String(constvars.LoggingTechnicianIDKey, request.TechnicianID),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	if identity.Role() != constvars.RoleDoctor && identity.Role() != constvars.RoleAdmin {
		return nil, exceptions.ErrNotMatchRoleType(errors.New("only doctors and admins assign lab tests"))
	}

	labTest, err := uc.LabTestUsecase.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionAssign)
	if err != nil {
		uc.Log.Error("assignmentUsecase.AssignLabTest error fetching lab test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	technicianID, err := primitive.ObjectIDFromHex(request.TechnicianID)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "technicianId")
	}

	technician, err := uc.LabTechRepository.FindByID(ctx, technicianID)
	if err != nil {
		uc.Log.Error("assignmentUsecase.AssignLabTest error fetching lab technician",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if technician == nil {
		return nil, exceptions.ErrLabTechNotFound(nil)
	}
	if !technician.IsActive {
		uc.Log.Warn("assignmentUsecase.AssignLabTest technician inactive",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTechnicianIDKey, request.TechnicianID),
		)
		return nil, exceptions.ErrLabTechInactive(nil, request.TechnicianID)
	}

	assigned, err := uc.LabTestUsecase.AssignLabTest(ctx, identity, labTest, technician)
	if err != nil {
		return nil, err
	}

	audit := &models.AssignmentAudit{
		LabTestID:        assigned.ID,
		TechnicianID:     technician.ID,
		AssignedByUserID: principal.UserID,
		AssignedByRole:   principal.Role,
		AssignedAt:       time.Now().UTC(),
	}
	if assigned.AssignedAt != nil {
		audit.AssignedAt = *assigned.AssignedAt
	}

	err = uc.AssignmentAuditRepository.CreateAssignmentAudit(ctx, audit)
	if err != nil {
		uc.Log.Error("assignmentUsecase.AssignLabTest error writing assignment audit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLabTestIDKey, labTestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("assignmentUsecase.AssignLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
		zap.String(constvars.LoggingTechnicianIDKey, request.TechnicianID),
	)
	response := utils.ConvertLabTestToResponse(assigned)
	return &response, nil
}

func (uc *assignmentUsecase) FindAssignmentHistory(ctx context.Context, principal models.Principal, labTestID string) ([]responses.AssignmentAudit, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assignmentUsecase.FindAssignmentHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}

	labTest, err := uc.LabTestUsecase.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionRead)
	if err != nil {
		return nil, err
	}

	audits, err := uc.AssignmentAuditRepository.FindByLabTestID(ctx, labTest.ID)
	if err != nil {
		uc.Log.Error("assignmentUsecase.FindAssignmentHistory error fetching audits",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("assignmentUsecase.FindAssignmentHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(audits)),
	)
	return utils.ConvertAssignmentAuditsToResponse(audits), nil
}

func (uc *assignmentUsecase) loadThreshold() int {
	if uc.InternalConfig == nil || uc.InternalConfig.Lab.LoadThreshold <= 0 {
		return constvars.DefaultLabTechLoadThreshold
	}
	return uc.InternalConfig.Lab.LoadThreshold
}

func buildAvailability(labTechs []models.LabTech, loads map[primitive.ObjectID]int, threshold int) []responses.TechnicianAvailability {
	availability := make([]responses.TechnicianAvailability, 0, len(labTechs))
	for i := range labTechs {
		pending := loads[labTechs[i].ID]
		percentage := math.Min(float64(pending)/float64(threshold)*100, 100)
		availability = append(availability, responses.TechnicianAvailability{
			Technician:     utils.ConvertLabTechToResponse(&labTechs[i]),
			PendingLoad:    pending,
			IsAvailable:    pending < threshold,
			LoadPercentage: math.Round(percentage*100) / 100,
		})
	}

	sort.SliceStable(availability, func(i, j int) bool {
		return availability[i].PendingLoad < availability[j].PendingLoad
	})
	return availability
}
