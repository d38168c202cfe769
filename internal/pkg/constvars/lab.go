package constvars

import "time"

const (
	LabTestStatusRequested  = "Requested"
	LabTestStatusProcessing = "Processing"
	LabTestStatusCompleted  = "Completed"
)

const (
	LabTestPriorityLow      = "Low"
	LabTestPriorityMedium   = "Medium"
	LabTestPriorityHigh     = "High"
	LabTestPriorityCritical = "Critical"
)

// Actions checked by the relationship guard.
const (
	ActionRead         = "read"
	ActionCreate       = "create"
	ActionAssign       = "assign"
	ActionStart        = "start"
	ActionComplete     = "complete"
	ActionSubmitReport = "submit_report"
	ActionReadReport   = "read_report"
	ActionReadStats    = "read_stats"
)

const (
	GuardResourcePatient = "Patient"
	GuardResourceLabTest = "LabTest"
	GuardResourceLabTech = "LabTech"
)

const (
	// DefaultLabTechLoadThreshold is the pending Processing count at which a
	// technician stops being advertised as available.
	DefaultLabTechLoadThreshold = 10

	// CompletionQualityScore is folded into the technician accuracy running mean
	// on every completion.
	CompletionQualityScore = 95.0

	PerformanceRecentTestsLimit = 5
)

const (
	LabEventTestRequested   = "lab_test.requested"
	LabEventTestAssigned    = "lab_test.assigned"
	LabEventTestStarted     = "lab_test.started"
	LabEventTestCompleted   = "lab_test.completed"
	LabEventReportSubmitted = "lab_report.submitted"
)

const (
	LabReportDocumentLockKeyFormat = "lab_report_document:%s"
	LabReportDocumentFilePrefix    = "lab-report"
	LabReportDocumentLockTTL       = 30 * time.Second
)

// LabTestPriorities lists every accepted priority in ascending urgency.
var LabTestPriorities = []string{
	LabTestPriorityLow,
	LabTestPriorityMedium,
	LabTestPriorityHigh,
	LabTestPriorityCritical,
}

// LabTestStatuses lists the lifecycle states in transition order.
var LabTestStatuses = []string{
	LabTestStatusRequested,
	LabTestStatusProcessing,
	LabTestStatusCompleted,
}
