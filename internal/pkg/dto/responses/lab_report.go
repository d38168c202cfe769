package responses

import "time"

type ReportAuthor struct {
	Role      string `json:"role"`
	UserID    string `json:"userId"`
	ProfileID string `json:"profileId,omitempty"`
	Name      string `json:"name"`
}

type LabReport struct {
	ID          string       `json:"id"`
	LabTestID   string       `json:"labTestId"`
	Result      string       `json:"result"`
	Notes       string       `json:"notes,omitempty"`
	ReportDate  time.Time    `json:"reportDate"`
	GeneratedBy ReportAuthor `json:"generatedBy"`
}

type PartyRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
}

type LabTestSnapshot struct {
	TestName    string     `json:"testName"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	AssignedAt  *time.Time `json:"assignedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// LabReportView is the report joined with the parties of its lab test. The
// join is resolved when the view is built, so names reflect current profiles
// while GeneratedBy stays as written.
type LabReportView struct {
	Available  bool             `json:"available"`
	Status     string           `json:"status"`
	Report     *LabReport       `json:"report,omitempty"`
	LabTest    *LabTestSnapshot `json:"labTest,omitempty"`
	Patient    *PartyRef        `json:"patient,omitempty"`
	Doctor     *PartyRef        `json:"doctor,omitempty"`
	Technician *PartyRef        `json:"technician,omitempty"`
}

type LabReportDocument struct {
	LabTestID   string    `json:"labTestId"`
	ObjectName  string    `json:"objectName"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
