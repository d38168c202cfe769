package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
)

const (
	CreateLabTestSuccessMessage          = "lab test requested successfully"
	FindLabTestSuccessMessage            = "get lab test successfully"
	FindAllLabTestsSuccessMessage        = "get lab tests successfully"
	AssignLabTestSuccessMessage          = "lab technician assigned successfully"
	FindAssignmentHistorySuccessMessage  = "get assignment history successfully"
	StartLabTestSuccessMessage           = "lab test started successfully"
	CompleteLabTestSuccessMessage        = "lab test completed successfully"
	SubmitLabReportSuccessMessage        = "lab report submitted successfully"
	FindLabReportSuccessMessage          = "get lab report successfully"
	LabReportNotYetAvailableMessage      = "lab report not yet available"
	FindLabReportDocumentSuccessMessage  = "get lab report document successfully"
	FindAvailableLabTechsSuccessMessage  = "get available lab technicians successfully"
	FindLabTechPerformanceSuccessMessage = "get lab technician performance successfully"
	FindLabTechBreakdownSuccessMessage   = "get lab technician breakdown successfully"
	FindRolesSuccessMessage              = "get roles successfully"
)
