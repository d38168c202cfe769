package requests

type CreateLabTest struct {
	PatientID string `json:"patientId" validate:"required,object_id"`
	TestName  string `json:"testName" validate:"required,max=200"`
	Priority  string `json:"priority" validate:"omitempty,lab_priority"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type AssignLabTest struct {
	TechnicianID string `json:"technicianId" validate:"required,object_id"`
}

type LabTestFilter struct {
	Status     string `validate:"omitempty,oneof=Requested Processing Completed"`
	Priority   string `validate:"omitempty,lab_priority"`
	PatientID  string `validate:"omitempty,object_id"`
	Department string `validate:"max=100"`
	Pagination Pagination
}
