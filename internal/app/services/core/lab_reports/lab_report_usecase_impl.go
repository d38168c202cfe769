package labReports

import (
	"context"
	"errors"
	"fmt"
	"hospital-lab-service/internal/app/config"
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

	"go.uber.org/zap"
)

type labReportUsecase struct {
	LabReportRepository contracts.LabReportRepository
	LabTestUsecase      contracts.LabTestUsecase
	LabTechRepository   contracts.LabTechRepository
	DoctorRepository    contracts.DoctorRepository
	PatientRepository   contracts.PatientRepository
	IdentityResolver    contracts.IdentityResolver
	ReportRenderer      contracts.ReportRenderer
	Storage             contracts.Storage
	LockService         contracts.LockerService
	EventPublisher      contracts.LabEventPublisher
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

var (
	labReportUsecaseInstance contracts.LabReportUsecase
	onceLabReportUsecase     sync.Once
)

func NewLabReportUsecase(
	labReportRepository contracts.LabReportRepository,
	labTestUsecase contracts.LabTestUsecase,
	labTechRepository contracts.LabTechRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	identityResolver contracts.IdentityResolver,
	reportRenderer contracts.ReportRenderer,
	storage contracts.Storage,
	lockService contracts.LockerService,
	eventPublisher contracts.LabEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.LabReportUsecase {
	onceLabReportUsecase.Do(func() {
		instance := &labReportUsecase{
			LabReportRepository: labReportRepository,
			LabTestUsecase:      labTestUsecase,
			LabTechRepository:   labTechRepository,
			DoctorRepository:    doctorRepository,
			PatientRepository:   patientRepository,
			IdentityResolver:    identityResolver,
			ReportRenderer:      reportRenderer,
			Storage:             storage,
			LockService:         lockService,
			EventPublisher:      eventPublisher,
			InternalConfig:      internalConfig,
			Log:                 logger,
		}
		labReportUsecaseInstance = instance
	})
	return labReportUsecaseInstance
}

func (uc *labReportUsecase) SubmitLabReport(ctx context.Context, principal models.Principal, labTestID string, request *requests.SubmitLabReport) (*responses.LabReport, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labReportUsecase.SubmitLabReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	if identity.Role() != constvars.RoleLabTech {
		return nil, exceptions.ErrNotMatchRoleType(errors.New("only lab technicians submit reports"))
	}

	result := strings.TrimSpace(request.Result)
	if result == "" {
		return nil, exceptions.ErrRequiredField(errors.New("blank result"), "result")
	}

	labTest, err := uc.LabTestUsecase.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionSubmitReport)
	if err != nil {
		return nil, err
	}
	if labTest.Status != constvars.LabTestStatusCompleted {
		uc.Log.Warn("labReportUsecase.SubmitLabReport lab test not completed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStatusKey, labTest.Status),
		)
		return nil, exceptions.ErrLabReportTestNotCompleted(nil, labTestID)
	}

	existing, err := uc.LabReportRepository.FindByLabTestID(ctx, labTest.ID)
	if err != nil {
		uc.Log.Error("labReportUsecase.SubmitLabReport error checking existing report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		uc.Log.Warn("labReportUsecase.SubmitLabReport report already exists",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLabReportIDKey, existing.ID.Hex()),
		)
		return nil, exceptions.ErrLabReportAlreadyExists(nil, labTestID)
	}

	report := &models.LabReport{
		LabTestID:  labTest.ID,
		Result:     result,
		Notes:      request.Notes,
		ReportDate: time.Now().UTC(),
		GeneratedBy: models.ReportAuthor{
			Role:      identity.Role(),
			UserID:    principal.UserID,
			ProfileID: identity.ProfileID,
			Name:      identity.Name,
		},
	}

	report, err = uc.LabReportRepository.CreateLabReport(ctx, report)
	if err != nil {
		uc.Log.Error("labReportUsecase.SubmitLabReport error inserting report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.EventPublisher.Publish(ctx, models.NewLabEvent(constvars.LabEventReportSubmitted, labTest, principal))
	if err != nil {
		uc.Log.Warn("labReportUsecase.SubmitLabReport error publishing lab event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("labReportUsecase.SubmitLabReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabReportIDKey, report.ID.Hex()),
	)
	response := utils.ConvertLabReportToResponse(report)
	return &response, nil
}

// FindLabReport returns the enriched report, or a view with Available unset
// and the test's current status when no report has been written yet.
func (uc *labReportUsecase) FindLabReport(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportView, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labReportUsecase.FindLabReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	view, _, err := uc.findReportView(ctx, principal, labTestID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("labReportUsecase.FindLabReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingSuccessKey, view.Available),
	)
	return view, nil
}

// FindLabReportDocument renders the report once, stores it in object
// storage and hands out a presigned download URL. Later calls reuse the
// stored object.
func (uc *labReportUsecase) FindLabReportDocument(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportDocument, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("labReportUsecase.FindLabReportDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabTestIDKey, labTestID),
	)

	view, report, err := uc.findReportView(ctx, principal, labTestID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, exceptions.ErrLabReportNotFound(nil)
	}

	objectName := report.DocumentObjectName
	if objectName == "" {
		objectName, err = uc.storeReportDocument(ctx, view, report)
		if err != nil {
			return nil, err
		}
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour
	downloadURL, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, objectName, expiry)
	if err != nil {
		uc.Log.Error("labReportUsecase.FindLabReportDocument error presigning url",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("labReportUsecase.FindLabReportDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return &responses.LabReportDocument{
		LabTestID:   labTestID,
		ObjectName:  objectName,
		DownloadURL: downloadURL,
		ExpiresAt:   time.Now().UTC().Add(expiry),
	}, nil
}

func (uc *labReportUsecase) storeReportDocument(ctx context.Context, view *responses.LabReportView, report *models.LabReport) (string, error) {
	requestID := utils.GetRequestID(ctx)
	lockKey := fmt.Sprintf(constvars.LabReportDocumentLockKeyFormat, report.LabTestID.Hex())

	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, constvars.LabReportDocumentLockTTL)
	if err != nil {
		return "", err
	}
	if !acquired {
		uc.Log.Warn("labReportUsecase.storeReportDocument document render in progress",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
		)
		return "", exceptions.ErrLabTestStateConflict(nil, "report document is being generated")
	}
	defer func() {
		if err := uc.LockService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Error("labReportUsecase.storeReportDocument error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	// Another request may have stored the document before we got the lock.
	current, err := uc.LabReportRepository.FindByLabTestID(ctx, report.LabTestID)
	if err != nil {
		return "", err
	}
	if current != nil && current.DocumentObjectName != "" {
		return current.DocumentObjectName, nil
	}

	data, err := uc.ReportRenderer.Render(ctx, view)
	if err != nil {
		uc.Log.Error("labReportUsecase.storeReportDocument error rendering document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	objectName := utils.GenerateFileName(constvars.LabReportDocumentFilePrefix, report.LabTestID.Hex(), uc.ReportRenderer.FileExtension())
	objectName, err = uc.Storage.UploadObject(ctx, uc.InternalConfig.Minio.BucketName, objectName, uc.ReportRenderer.ContentType(), data)
	if err != nil {
		uc.Log.Error("labReportUsecase.storeReportDocument error uploading document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	err = uc.LabReportRepository.SetDocumentObjectName(ctx, report.ID, objectName)
	if err != nil {
		return "", err
	}

	uc.Log.Info("labReportUsecase.storeReportDocument document stored",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return objectName, nil
}

func (uc *labReportUsecase) findReportView(ctx context.Context, principal models.Principal, labTestID string) (*responses.LabReportView, *models.LabReport, error) {
	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, nil, err
	}

	labTest, err := uc.LabTestUsecase.FindAuthorizedLabTest(ctx, identity, labTestID, constvars.ActionReadReport)
	if err != nil {
		return nil, nil, err
	}

	report, err := uc.LabReportRepository.FindByLabTestID(ctx, labTest.ID)
	if err != nil {
		return nil, nil, err
	}
	if report == nil {
		return &responses.LabReportView{Available: false, Status: labTest.Status}, nil, nil
	}

	view, err := uc.enrich(ctx, labTest, report)
	if err != nil {
		return nil, nil, err
	}
	return view, report, nil
}

func (uc *labReportUsecase) enrich(ctx context.Context, labTest *models.LabTest, report *models.LabReport) (*responses.LabReportView, error) {
	reportResponse := utils.ConvertLabReportToResponse(report)
	view := &responses.LabReportView{
		Available: true,
		Status:    labTest.Status,
		Report:    &reportResponse,
		LabTest: &responses.LabTestSnapshot{
			TestName:    labTest.TestName,
			Priority:    labTest.Priority,
			Status:      labTest.Status,
			CreatedAt:   labTest.CreatedAt,
			AssignedAt:  labTest.AssignedAt,
			CompletedAt: labTest.CompletedAt,
		},
	}

	patient, err := uc.PatientRepository.FindByID(ctx, labTest.PatientID)
	if err != nil {
		return nil, err
	}
	if patient != nil {
		view.Patient = &responses.PartyRef{ID: patient.ID.Hex(), Name: patient.Name, Email: patient.Email}
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, labTest.OrderingDoctorID)
	if err != nil {
		return nil, err
	}
	if doctor != nil {
		view.Doctor = &responses.PartyRef{ID: doctor.ID.Hex(), Name: doctor.Name, Email: doctor.Email, Department: doctor.Department}
	}

	if labTest.HasTechnician() {
		technician, err := uc.LabTechRepository.FindByID(ctx, *labTest.AssignedTechnicianID)
		if err != nil {
			return nil, err
		}
		if technician != nil {
			view.Technician = &responses.PartyRef{ID: technician.ID.Hex(), Name: technician.Name, Email: technician.Email, Department: technician.Department}
		}
	}
	return view, nil
}
