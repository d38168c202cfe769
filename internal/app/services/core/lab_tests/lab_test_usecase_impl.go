package labTests

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type labTestUsecase struct {
	LabTestRepository contracts.LabTestRepository
	LabTechRepository contracts.LabTechRepository
	PatientRepository contracts.PatientRepository
	IdentityResolver  contracts.IdentityResolver
	RelationshipGuard contracts.RelationshipGuard
	EventPublisher    contracts.LabEventPublisher
	Log               *zap.Logger
}

var (
	labTestUsecaseInstance contracts.LabTestUsecase
	onceLabTestUsecase     sync.Once
)

func NewLabTestUsecase(
	labTestRepository contracts.LabTestRepository,
	labTechRepository contracts.LabTechRepository,
	patientRepository contracts.PatientRepository,
	identityResolver contracts.IdentityResolver,
	relationshipGuard contracts.RelationshipGuard,
	eventPublisher contracts.LabEventPublisher,
	logger *zap.Logger,
) contracts.LabTestUsecase {
	onceLabTestUsecase.Do(func() {
		instance := &labTestUsecase{
			LabTestRepository: labTestRepository,
			LabTechRepository: labTechRepository,
			PatientRepository: patientRepository,
			IdentityResolver:  identityResolver,
			RelationshipGuard: relationshipGuard,
			EventPublisher:    eventPublisher,
			Log:               logger,
		}
		labTestUsecaseInstance = instance
	})
	return labTestUsecaseInstance
}

func (uc *labTestUsecase) CreateLabTest(ctx context.Context, principal models.Principal, request *requests.CreateLabTest) (*responses.LabTest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labTestUsecase.CreateLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, principal.UserID),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		uc.Log.Error("labTestUsecase.CreateLabTest error resolving identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if identity.Role() != constvars.RoleDoctor {
		return nil, exceptions.ErrNotMatchRoleType(errors.New("only doctors request lab tests"))
	}

	testName := strings.TrimSpace(request.TestName)
	if testName == "" {
		return nil, exceptions.ErrRequiredField(errors.New("blank test name"), "testname")
	}

	patientID, err := primitive.ObjectIDFromHex(request.PatientID)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "patientId")
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		uc.Log.Error("labTestUsecase.CreateLabTest error fetching patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if patient == nil {
		uc.Log.Error("labTestUsecase.CreateLabTest patient not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		)
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	decision, err := uc.RelationshipGuard.Authorize(ctx, identity, models.PatientResource(patient.ID, constvars.ActionCreate))
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		uc.Log.Warn("labTestUsecase.CreateLabTest relationship denied",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.String(constvars.LoggingReasonKey, decision.Reason),
		)
		return nil, exceptions.ErrPatientAccessDenied(nil, decision.Reason)
	}

	priority := request.Priority
	if priority == "" {
		priority = constvars.LabTestPriorityMedium
	}

	labTest := &models.LabTest{
		PatientID:        patient.ID,
		OrderingDoctorID: identity.ProfileID,
		TestName:         testName,
		Priority:         priority,
		Status:           constvars.LabTestStatusRequested,
		Notes:            request.Notes,
	}

	labTest, err = uc.LabTestRepository.CreateLabTest(ctx, labTest)
	if err != nil {
		uc.Log.Error("labTestUsecase.CreateLabTest error inserting lab test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publish(ctx, models.NewLabEvent(constvars.LabEventTestRequested, labTest, principal))

	uc.Log.Info("labTestUsecase.CreateLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTest.ID.Hex()),
	)
	response := utils.ConvertLabTestToResponse(labTest)
	return &response, nil
}

func (uc *labTestUsecase) FindLabTestByID(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labTestUsecase.FindLabTestByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}

	labTest, err := uc.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionRead)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("labTestUsecase.FindLabTestByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)
	response := utils.ConvertLabTestToResponse(labTest)
	return &response, nil
}

func (uc *labTestUsecase) FindAllLabTests(ctx context.Context, principal models.Principal, filter requests.LabTestFilter) (*responses.LabTestList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labTestUsecase.FindAllLabTests called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}

	query, err := uc.buildLabTestQuery(ctx, identity, filter)
	if err != nil {
		uc.Log.Error("labTestUsecase.FindAllLabTests error building query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	labTests, totalCount, err := uc.LabTestRepository.FindAll(ctx, query)
	if err != nil {
		uc.Log.Error("labTestUsecase.FindAllLabTests error fetching lab tests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("labTestUsecase.FindAllLabTests succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(labTests)),
	)
	return &responses.LabTestList{
		LabTests:   utils.ConvertLabTestsToResponse(labTests),
		TotalCount: totalCount,
	}, nil
}

// buildLabTestQuery narrows the listing to what the caller's role may see.
func (uc *labTestUsecase) buildLabTestQuery(ctx context.Context, identity *models.Identity, filter requests.LabTestFilter) (models.LabTestQuery, error) {
	query := models.LabTestQuery{
		Status:   filter.Status,
		Priority: filter.Priority,
		Skip:     filter.Pagination.Skip(),
		Limit:    filter.Pagination.Limit(),
	}

	var requestedPatient *primitive.ObjectID
	if filter.PatientID != "" {
		patientID, err := primitive.ObjectIDFromHex(filter.PatientID)
		if err != nil {
			return query, exceptions.ErrInvalidFormat(err, "patientId")
		}
		requestedPatient = &patientID
	}

	profileID := identity.ProfileID
	switch identity.Role() {
	case constvars.RoleAdmin:
		query.PatientID = requestedPatient

	case constvars.RoleDoctor:
		query.OrderingDoctorID = &profileID
		if requestedPatient != nil {
			decision, err := uc.RelationshipGuard.Authorize(ctx, identity, models.PatientResource(*requestedPatient, constvars.ActionRead))
			if err != nil {
				return query, err
			}
			if !decision.Allowed {
				return query, exceptions.ErrPatientAccessDenied(nil, decision.Reason)
			}
			query.PatientID = requestedPatient
		}

	case constvars.RoleLabTech:
		query.VisibleToTechnician = &profileID
		query.PatientID = requestedPatient

	case constvars.RolePatient:
		if requestedPatient != nil && *requestedPatient != profileID {
			return query, exceptions.ErrPatientAccessDenied(nil, "not own record")
		}
		query.PatientID = &profileID

	default:
		return query, exceptions.ErrNotMatchRoleType(nil)
	}

	if filter.Department != "" {
		technicianIDs, err := uc.LabTechRepository.FindIDsByDepartment(ctx, filter.Department)
		if err != nil {
			return query, err
		}
		query.FilterByTechs = true
		query.TechnicianIDs = technicianIDs
	}
	return query, nil
}

// StartLabTest claims an unassigned Requested test for the calling
// technician. Starting a test already in Processing for the caller returns it
// unchanged.
func (uc *labTestUsecase) StartLabTest(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labTestUsecase.StartLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	identity, err := uc.resolveActiveTechnician(ctx, principal)
	if err != nil {
		return nil, err
	}

	labTest, err := uc.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionStart)
	if err != nil {
		return nil, err
	}

	if labTest.Status == constvars.LabTestStatusProcessing && labTest.IsAssignedTo(identity.ProfileID) {
		uc.Log.Info("labTestUsecase.StartLabTest already started by caller",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLabTestIDKey, labTestID),
		)
		response := utils.ConvertLabTestToResponse(labTest)
		return &response, nil
	}

	started, err := uc.LabTestRepository.MarkStarted(ctx, labTest.ID, identity.ProfileID, time.Now().UTC())
	if err != nil {
		uc.Log.Error("labTestUsecase.StartLabTest error updating lab test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if started == nil {
		return nil, uc.transitionMissed(ctx, labTest.ID, "start")
	}

	uc.publish(ctx, models.NewLabEvent(constvars.LabEventTestStarted, started, principal))

	uc.Log.Info("labTestUsecase.StartLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
		zap.String(constvars.LoggingTechnicianIDKey, identity.ProfileID.Hex()),
	)
	response := utils.ConvertLabTestToResponse(started)
	return &response, nil
}

func (uc *labTestUsecase) CompleteLabTest(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabTest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labTestUsecase.CompleteLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	if identity.Role() != constvars.RoleLabTech {
		return nil, exceptions.ErrNotMatchRoleType(errors.New("only lab technicians complete lab tests"))
	}

	labTest, err := uc.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionComplete)
	if err != nil {
		return nil, err
	}

	completed, err := uc.LabTestRepository.MarkCompleted(ctx, labTest.ID, identity.ProfileID, time.Now().UTC())
	if err != nil {
		uc.Log.Error("labTestUsecase.CompleteLabTest error updating lab test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if completed == nil {
		return nil, uc.transitionMissed(ctx, labTest.ID, "complete")
	}

	// The transition is committed at this point; a counter failure is
	// logged and does not undo it.
	err = uc.LabTechRepository.IncrementCompletion(ctx, identity.ProfileID, constvars.CompletionQualityScore)
	if err != nil {
		uc.Log.Error("labTestUsecase.CompleteLabTest error updating technician counters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTechnicianIDKey, identity.ProfileID.Hex()),
			zap.Error(err),
		)
	}

	uc.publish(ctx, models.NewLabEvent(constvars.LabEventTestCompleted, completed, principal))

	uc.Log.Info("labTestUsecase.CompleteLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)
	response := utils.ConvertLabTestToResponse(completed)
	return &response, nil
}

func (uc *labTestUsecase) FindAuthorizedLabTest(ctx context.Context, identity *models.Identity, labTestID string, action string) (*models.LabTest, error) {
	requestID := utils.GetRequestID(ctx)

	objectID, err := primitive.ObjectIDFromHex(labTestID)
	if err != nil {
		return nil, exceptions.ErrLabTestNotFound(err)
	}

	labTest, err := uc.LabTestRepository.FindByID(ctx, objectID)
	if err != nil {
		uc.Log.Error("labTestUsecase.FindAuthorizedLabTest error fetching lab test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if labTest == nil {
		return nil, exceptions.ErrLabTestNotFound(nil)
	}

	decision, err := uc.RelationshipGuard.Authorize(ctx, identity, models.LabTestResource(labTest, action))
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		uc.Log.Warn("labTestUsecase.FindAuthorizedLabTest relationship denied",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLabTestIDKey, labTestID),
			zap.String(constvars.LoggingReasonKey, decision.Reason),
		)
		return nil, exceptions.ErrRelationshipDenied(nil, decision.Reason)
	}
	return labTest, nil
}

func (uc *labTestUsecase) AssignLabTest(ctx context.Context, identity *models.Identity, labTest *models.LabTest, technician *models.LabTech) (*models.LabTest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labTestUsecase.AssignLabTest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTest.ID.Hex()),
		zap.String(constvars.LoggingTechnicianIDKey, technician.ID.Hex()),
	)

	assigned, err := uc.LabTestRepository.MarkAssigned(ctx, labTest.ID, technician.ID, time.Now().UTC())
	if err != nil {
		uc.Log.Error("labTestUsecase.AssignLabTest error updating lab test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if assigned == nil {
		return nil, uc.transitionMissed(ctx, labTest.ID, "assign")
	}

	uc.publish(ctx, models.NewLabEvent(constvars.LabEventTestAssigned, assigned, identity.Principal))

	uc.Log.Info("labTestUsecase.AssignLabTest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTest.ID.Hex()),
	)
	return assigned, nil
}

func (uc *labTestUsecase) resolveActiveTechnician(ctx context.Context, principal models.Principal) (*models.Identity, error) {
	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	if identity.Role() != constvars.RoleLabTech {
		return nil, exceptions.ErrNotMatchRoleType(errors.New("only lab technicians start lab tests"))
	}
	if !identity.IsActive {
		return nil, exceptions.ErrLabTechInactive(nil, identity.ProfileID.Hex())
	}
	return identity, nil
}

// transitionMissed re-reads a test whose conditional update matched nothing
// and classifies the miss.
func (uc *labTestUsecase) transitionMissed(ctx context.Context, labTestID primitive.ObjectID, transition string) error {
	requestID := utils.GetRequestID(ctx)

	current, err := uc.LabTestRepository.FindByID(ctx, labTestID)
	if err != nil {
		return err
	}
	if current == nil {
		return exceptions.ErrLabTestNotFound(nil)
	}

	uc.Log.Warn("labTestUsecase transition rejected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID.Hex()),
		zap.String(constvars.LoggingStatusKey, current.Status),
		zap.String(constvars.LoggingReasonKey, transition),
	)
	return exceptions.ErrLabTestStateConflict(nil, transition+" not allowed from "+current.Status)
}

func (uc *labTestUsecase) publish(ctx context.Context, event *models.LabEvent) {
	err := uc.EventPublisher.Publish(ctx, event)
	if err != nil {
		uc.Log.Warn("labTestUsecase error publishing lab event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventTypeKey, event.EventType),
			zap.Error(err),
		)
	}
}
