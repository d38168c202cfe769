package utils

import (
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/dto/responses"
)

func ConvertLabTestToResponse(labTest *models.LabTest) responses.LabTest {
	response := responses.LabTest{
		ID:               labTest.ID.Hex(),
		PatientID:        labTest.PatientID.Hex(),
		OrderingDoctorID: labTest.OrderingDoctorID.Hex(),
		TestName:         labTest.TestName,
		Priority:         labTest.Priority,
		Status:           labTest.Status,
		Notes:            labTest.Notes,
		AssignedAt:       labTest.AssignedAt,
		CompletedAt:      labTest.CompletedAt,
		CreatedAt:        labTest.CreatedAt,
		UpdatedAt:        labTest.UpdatedAt,
	}
	if labTest.HasTechnician() {
		response.AssignedTechnicianID = labTest.AssignedTechnicianID.Hex()
	}
	return response
}

func ConvertLabTestsToResponse(labTests []models.LabTest) []responses.LabTest {
	result := make([]responses.LabTest, 0, len(labTests))
	for i := range labTests {
		result = append(result, ConvertLabTestToResponse(&labTests[i]))
	}
	return result
}

func ConvertLabTechToResponse(labTech *models.LabTech) responses.LabTech {
	return responses.LabTech{
		ID:             labTech.ID.Hex(),
		Name:           labTech.Name,
		Email:          labTech.Email,
		Department:     labTech.Department,
		Specialization: labTech.Specialization,
		IsActive:       labTech.IsActive,
		TestsConducted: labTech.TestsConducted,
		AccuracyRate:   labTech.AccuracyRate,
		CertifiedTests: labTech.CertifiedTests,
	}
}

func ConvertLabReportToResponse(report *models.LabReport) responses.LabReport {
	author := responses.ReportAuthor{
		Role:   report.GeneratedBy.Role,
		UserID: report.GeneratedBy.UserID,
		Name:   report.GeneratedBy.Name,
	}
	if !report.GeneratedBy.ProfileID.IsZero() {
		author.ProfileID = report.GeneratedBy.ProfileID.Hex()
	}
	return responses.LabReport{
		ID:          report.ID.Hex(),
		LabTestID:   report.LabTestID.Hex(),
		Result:      report.Result,
		Notes:       report.Notes,
		ReportDate:  report.ReportDate,
		GeneratedBy: author,
	}
}

func ConvertAssignmentAuditsToResponse(audits []models.AssignmentAudit) []responses.AssignmentAudit {
	result := make([]responses.AssignmentAudit, 0, len(audits))
	for _, audit := range audits {
		result = append(result, responses.AssignmentAudit{
			ID:               audit.ID.Hex(),
			LabTestID:        audit.LabTestID.Hex(),
			TechnicianID:     audit.TechnicianID.Hex(),
			AssignedByUserID: audit.AssignedByUserID,
			AssignedByRole:   audit.AssignedByRole,
			AssignedAt:       audit.AssignedAt,
		})
	}
	return result
}
