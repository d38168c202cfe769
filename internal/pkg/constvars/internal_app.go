package constvars

type ContextKey string

const (
	ResourceLabTests  = "lab-tests"
	ResourceLabTechs  = "lab-techs"
	ResourceLabReport = "report"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPage         = 1
	AppDefaultPageSize     = 10
	AppMaxPageSize         = 100
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
)

const (
	REQUEST_ID_PREFIX = "HLAB_SVC_"
)

const (
	RoleDoctor  = "Doctor"
	RolePatient = "Patient"
	RoleLabTech = "LabTech"
	RoleAdmin   = "Admin"
)
