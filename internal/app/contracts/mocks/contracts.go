package mocks

import "hospital-lab-service/internal/app/contracts"

var (
	_ contracts.IdentityResolver          = (*MockIdentityResolver)(nil)
	_ contracts.RelationshipGuard         = (*MockRelationshipGuard)(nil)
	_ contracts.DoctorRepository          = (*MockDoctorRepository)(nil)
	_ contracts.PatientRepository         = (*MockPatientRepository)(nil)
	_ contracts.LabTechRepository         = (*MockLabTechRepository)(nil)
	_ contracts.AppointmentRepository     = (*MockAppointmentRepository)(nil)
	_ contracts.LabTestUsecase            = (*MockLabTestUsecase)(nil)
	_ contracts.LabTestRepository         = (*MockLabTestRepository)(nil)
	_ contracts.AssignmentUsecase         = (*MockAssignmentUsecase)(nil)
	_ contracts.AssignmentAuditRepository = (*MockAssignmentAuditRepository)(nil)
	_ contracts.LabReportUsecase          = (*MockLabReportUsecase)(nil)
	_ contracts.LabReportRepository       = (*MockLabReportRepository)(nil)
	_ contracts.ReportRenderer            = (*MockReportRenderer)(nil)
	_ contracts.PerformanceUsecase        = (*MockPerformanceUsecase)(nil)
	_ contracts.SessionService            = (*MockSessionService)(nil)
	_ contracts.RedisRepository           = (*MockRedisRepository)(nil)
	_ contracts.LockerService             = (*MockLockerService)(nil)
	_ contracts.Storage                   = (*MockStorage)(nil)
	_ contracts.LabEventPublisher         = (*MockLabEventPublisher)(nil)
	_ contracts.RoleUsecase               = (*MockRoleUsecase)(nil)
)
