package responses

import "time"

type LabTest struct {
	ID                   string     `json:"id"`
	PatientID            string     `json:"patientId"`
	OrderingDoctorID     string     `json:"orderingDoctorId"`
	AssignedTechnicianID string     `json:"assignedTechnicianId,omitempty"`
	TestName             string     `json:"testName"`
	Priority             string     `json:"priority"`
	Status               string     `json:"status"`
	Notes                string     `json:"notes,omitempty"`
	AssignedAt           *time.Time `json:"assignedAt,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type LabTestList struct {
	LabTests   []LabTest
	TotalCount int
}

type AssignmentAudit struct {
	ID               string    `json:"id"`
	LabTestID        string    `json:"labTestId"`
	TechnicianID     string    `json:"technicianId"`
	AssignedByUserID string    `json:"assignedByUserId"`
	AssignedByRole   string    `json:"assignedByRole"`
	AssignedAt       time.Time `json:"assignedAt"`
}
