package labReports

import (
	"context"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/contracts/mocks"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/exceptions"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type labReportFixture struct {
	usecase     *labReportUsecase
	reportRepo  *mocks.MockLabReportRepository
	labTests    *mocks.MockLabTestUsecase
	labTechRepo *mocks.MockLabTechRepository
	doctorRepo  *mocks.MockDoctorRepository
	patientRepo *mocks.MockPatientRepository
	resolver    *mocks.MockIdentityResolver
	renderer    *mocks.MockReportRenderer
	storage     *mocks.MockStorage
	locker      *mocks.MockLockerService
	publisher   *mocks.MockLabEventPublisher
}

func newLabReportFixture() *labReportFixture {
	f := &labReportFixture{
		reportRepo:  new(mocks.MockLabReportRepository),
		labTests:    new(mocks.MockLabTestUsecase),
		labTechRepo: new(mocks.MockLabTechRepository),
		doctorRepo:  new(mocks.MockDoctorRepository),
		patientRepo: new(mocks.MockPatientRepository),
		resolver:    new(mocks.MockIdentityResolver),
		renderer:    new(mocks.MockReportRenderer),
		storage:     new(mocks.MockStorage),
		locker:      new(mocks.MockLockerService),
		publisher:   new(mocks.MockLabEventPublisher),
	}
	f.usecase = &labReportUsecase{
		LabReportRepository: f.reportRepo,
		LabTestUsecase:      f.labTests,
		LabTechRepository:   f.labTechRepo,
		DoctorRepository:    f.doctorRepo,
		PatientRepository:   f.patientRepo,
		IdentityResolver:    f.resolver,
		ReportRenderer:      f.renderer,
		Storage:             f.storage,
		LockService:         f.locker,
		EventPublisher:      f.publisher,
		InternalConfig: &config.InternalConfig{Minio: config.AppMinio{
			BucketName:                          "lab-reports",
			PreSignedUrlObjectExpiryTimeInHours: 2,
		}},
		Log: zap.NewNop(),
	}
	return f
}

func technicianIdentity() (models.Principal, *models.Identity) {
	principal := models.Principal{UserID: "tech-user", Role: constvars.RoleLabTech, Name: "Sam"}
	return principal, &models.Identity{Principal: principal, ProfileID: primitive.NewObjectID(), Name: "Sam Tech", IsActive: true}
}

func completedLabTest(technicianID primitive.ObjectID) *models.LabTest {
	assignedAt := time.Now().Add(-3 * time.Hour)
	completedAt := time.Now()
	return &models.LabTest{
		ID:                   primitive.NewObjectID(),
		PatientID:            primitive.NewObjectID(),
		OrderingDoctorID:     primitive.NewObjectID(),
		AssignedTechnicianID: &technicianID,
		TestName:             "Complete Blood Count",
		Status:               constvars.LabTestStatusCompleted,
		AssignedAt:           &assignedAt,
		CompletedAt:          &completedAt,
	}
}

func TestSubmitLabReport_FirstSubmissionThenDuplicate(t *testing.T) {
	f := newLabReportFixture()
	ctx := context.Background()
	principal, identity := technicianIdentity()
	labTest := completedLabTest(identity.ProfileID)
	request := &requests.SubmitLabReport{Result: "WBC: 7.2, normal range"}

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionSubmitReport).Return(labTest, nil)
	f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(nil, nil).Once()
	f.reportRepo.On("CreateLabReport", ctx, mock.MatchedBy(func(report *models.LabReport) bool {
		return report.Result == request.Result &&
			report.GeneratedBy.ProfileID == identity.ProfileID &&
			report.GeneratedBy.Name == "Sam Tech" &&
			report.GeneratedBy.Role == constvars.RoleLabTech
	})).Return(&models.LabReport{ID: primitive.NewObjectID(), LabTestID: labTest.ID, Result: request.Result}, nil).Once()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(event *models.LabEvent) bool {
		return event.EventType == constvars.LabEventReportSubmitted
	})).Return(nil)

	report, err := f.usecase.SubmitLabReport(ctx, principal, labTest.ID.Hex(), request)
	require.NoError(t, err)
	assert.Equal(t, request.Result, report.Result)

	original := &models.LabReport{ID: primitive.NewObjectID(), LabTestID: labTest.ID, Result: request.Result}
	f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(original, nil).Once()

	_, err = f.usecase.SubmitLabReport(ctx, principal, labTest.ID.Hex(), &requests.SubmitLabReport{Result: "WBC: 9.9"})
	assert.Equal(t, constvars.StatusConflict, exceptions.StatusCodeOf(err))
	f.reportRepo.AssertNumberOfCalls(t, "CreateLabReport", 1)
}

func TestSubmitLabReport_TestNotCompleted(t *testing.T) {
	f := newLabReportFixture()
	ctx := context.Background()
	principal, identity := technicianIdentity()
	labTest := completedLabTest(identity.ProfileID)
	labTest.Status = constvars.LabTestStatusProcessing

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionSubmitReport).Return(labTest, nil)

	_, err := f.usecase.SubmitLabReport(ctx, principal, labTest.ID.Hex(), &requests.SubmitLabReport{Result: "pending"})
	assert.Equal(t, constvars.StatusConflict, exceptions.StatusCodeOf(err))
	f.reportRepo.AssertNotCalled(t, "CreateLabReport", mock.Anything, mock.Anything)
}

func TestSubmitLabReport_DuplicateKeyRace(t *testing.T) {
	f := newLabReportFixture()
	ctx := context.Background()
	principal, identity := technicianIdentity()
	labTest := completedLabTest(identity.ProfileID)

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionSubmitReport).Return(labTest, nil)
	f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(nil, nil)
	f.reportRepo.On("CreateLabReport", ctx, mock.Anything).Return(nil, exceptions.ErrLabReportAlreadyExists(nil, labTest.ID.Hex()))

	_, err := f.usecase.SubmitLabReport(ctx, principal, labTest.ID.Hex(), &requests.SubmitLabReport{Result: "WBC: 7.2"})
	assert.Equal(t, constvars.StatusConflict, exceptions.StatusCodeOf(err))
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestFindLabReport_NotYetAvailable(t *testing.T) {
	f := newLabReportFixture()
	ctx := context.Background()
	principal := models.Principal{UserID: "patient-user", Role: constvars.RolePatient}
	identity := &models.Identity{Principal: principal, ProfileID: primitive.NewObjectID()}
	labTest := &models.LabTest{ID: primitive.NewObjectID(), PatientID: identity.ProfileID, Status: constvars.LabTestStatusProcessing}

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionReadReport).Return(labTest, nil)
	f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(nil, nil)

	view, err := f.usecase.FindLabReport(ctx, principal, labTest.ID.Hex())
	require.NoError(t, err)
	assert.False(t, view.Available)
	assert.Equal(t, constvars.LabTestStatusProcessing, view.Status)
	assert.Nil(t, view.Report)
}

func TestFindLabReport_Enriched(t *testing.T) {
	f := newLabReportFixture()
	ctx := context.Background()
	principal, identity := technicianIdentity()
	labTest := completedLabTest(identity.ProfileID)
	report := &models.LabReport{
		ID:          primitive.NewObjectID(),
		LabTestID:   labTest.ID,
		Result:      "WBC: 7.2",
		GeneratedBy: models.ReportAuthor{Role: constvars.RoleLabTech, Name: "Sam Original"},
	}

	f.resolver.On("Resolve", ctx, principal).Return(identity, nil)
	f.labTests.On("FindAuthorizedLabTest", ctx, identity, labTest.ID.Hex(), constvars.ActionReadReport).Return(labTest, nil)
	f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(report, nil)
	f.patientRepo.On("FindByID", ctx, labTest.PatientID).Return(&models.Patient{ID: labTest.PatientID, Name: "Pat"}, nil)
	f.doctorRepo.On("FindByID", ctx, labTest.OrderingDoctorID).Return(&models.Doctor{ID: labTest.OrderingDoctorID, Name: "Dr. Grey"}, nil)
	f.labTechRepo.On("FindByID", ctx, identity.ProfileID).Return(&models.LabTech{ID: identity.ProfileID, Name: "Sam Renamed"}, nil)

	view, err := f.usecase.FindLabReport(ctx, principal, labTest.ID.Hex())
	require.NoError(t, err)
	assert.True(t, view.Available)
	assert.Equal(t, "Pat", view.Patient.Name)
	assert.Equal(t, "Dr. Grey", view.Doctor.Name)
	assert.Equal(t, "Sam Renamed", view.Technician.Name)
	assert.Equal(t, "Sam Original", view.Report.GeneratedBy.Name)
	assert.Equal(t, "Complete Blood Count", view.LabTest.TestName)
}

func TestFindLabReportDocument(t *testing.T) {
	setup := func(f *labReportFixture, report *models.LabReport) (models.Principal, *models.LabTest) {
		principal, identity := technicianIdentity()
		labTest := completedLabTest(identity.ProfileID)
		report.LabTestID = labTest.ID

		f.resolver.On("Resolve", mock.Anything, principal).Return(identity, nil)
		f.labTests.On("FindAuthorizedLabTest", mock.Anything, identity, labTest.ID.Hex(), constvars.ActionReadReport).Return(labTest, nil)
		f.patientRepo.On("FindByID", mock.Anything, labTest.PatientID).Return(nil, nil)
		f.doctorRepo.On("FindByID", mock.Anything, labTest.OrderingDoctorID).Return(nil, nil)
		f.labTechRepo.On("FindByID", mock.Anything, identity.ProfileID).Return(nil, nil)
		return principal, labTest
	}

	t.Run("Renders And Uploads Once", func(t *testing.T) {
		f := newLabReportFixture()
		ctx := context.Background()
		report := &models.LabReport{ID: primitive.NewObjectID(), Result: "WBC: 7.2"}
		principal, labTest := setup(f, report)

		f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(report, nil)
		f.locker.On("TryLock", ctx, "lab_report_document:"+labTest.ID.Hex(), constvars.LabReportDocumentLockTTL).Return(true, "owner", nil)
		f.locker.On("Unlock", ctx, "lab_report_document:"+labTest.ID.Hex(), "owner").Return(nil)
		f.renderer.On("Render", ctx, mock.Anything).Return([]byte(`{"documentType":"lab-report"}`), nil)
		f.renderer.On("FileExtension").Return(".json")
		f.renderer.On("ContentType").Return(constvars.MIMEApplicationJSON)
		f.storage.On("UploadObject", ctx, "lab-reports", mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "lab-report_"+labTest.ID.Hex()) && strings.HasSuffix(name, ".json")
		}), constvars.MIMEApplicationJSON, mock.Anything).Return("lab-report_stored.json", nil)
		f.reportRepo.On("SetDocumentObjectName", ctx, report.ID, "lab-report_stored.json").Return(nil)
		f.storage.On("GetObjectUrlWithExpiryTime", ctx, "lab-reports", "lab-report_stored.json", 2*time.Hour).Return("https://minio/presigned", nil)

		document, err := f.usecase.FindLabReportDocument(ctx, principal, labTest.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "https://minio/presigned", document.DownloadURL)
		assert.Equal(t, "lab-report_stored.json", document.ObjectName)
		f.locker.AssertExpectations(t)
		f.reportRepo.AssertExpectations(t)
	})

	t.Run("Reuses Stored Document", func(t *testing.T) {
		f := newLabReportFixture()
		ctx := context.Background()
		report := &models.LabReport{ID: primitive.NewObjectID(), Result: "WBC: 7.2", DocumentObjectName: "lab-report_old.json"}
		principal, labTest := setup(f, report)

		f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(report, nil)
		f.storage.On("GetObjectUrlWithExpiryTime", ctx, "lab-reports", "lab-report_old.json", 2*time.Hour).Return("https://minio/old", nil)

		document, err := f.usecase.FindLabReportDocument(ctx, principal, labTest.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "https://minio/old", document.DownloadURL)
		f.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lock Held Elsewhere", func(t *testing.T) {
		f := newLabReportFixture()
		ctx := context.Background()
		report := &models.LabReport{ID: primitive.NewObjectID(), Result: "WBC: 7.2"}
		principal, labTest := setup(f, report)

		f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(report, nil)
		f.locker.On("TryLock", ctx, mock.Anything, mock.Anything).Return(false, "", nil)

		_, err := f.usecase.FindLabReportDocument(ctx, principal, labTest.ID.Hex())
		assert.Equal(t, constvars.StatusConflict, exceptions.StatusCodeOf(err))
	})

	t.Run("No Report Yet", func(t *testing.T) {
		f := newLabReportFixture()
		ctx := context.Background()
		principal, labTest := setup(f, &models.LabReport{})

		f.reportRepo.On("FindByLabTestID", ctx, labTest.ID).Return(nil, nil)

		_, err := f.usecase.FindLabReportDocument(ctx, principal, labTest.ID.Hex())
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}
