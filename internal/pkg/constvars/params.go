package constvars

const (
	URLParamLabTestID    = "testID"
	URLParamTechnicianID = "technicianID"
)

const (
	URLQueryParamPage       = "page"
	URLQueryParamPageSize   = "page_size"
	URLQueryParamStatus     = "status"
	URLQueryParamPriority   = "priority"
	URLQueryParamPatientID  = "patientId"
	URLQueryParamDepartment = "department"
	URLQueryParamTestType   = "testType"
	URLQueryParamFrom       = "from"
	URLQueryParamTo         = "to"
)
