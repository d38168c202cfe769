package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"oneof":        "must be one of [%s]",
	"gte":          "must be greater than or equal to %s",
	"lte":          "must be less than or equal to %s",
	"hexadecimal":  "must be a valid hexadecimal id",
	"len":          "must be %s characters long",
	"lab_priority": "must be one of [Low, Medium, High, Critical]",
	"object_id":    "must be a valid id",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientLabTestNotFound               = "lab test not found"
	ErrClientLabTechNotFound               = "lab technician not found"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientLabTestStateConflict          = "lab test is not in a state that allows this action, please refresh and try again"
	ErrClientLabTechInactive               = "lab technician is not active"
	ErrClientLabReportAlreadyExists        = "a report has already been submitted for this lab test"
	ErrClientProfileNotFound               = "your profile could not be found"
	ErrClientFieldRequired                 = "%s is required"
	ErrClientTooManyRequests               = "too many requests, please try again later"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "validation failed for URL param %s"
	ErrDevInvalidFormat              = "invalid format on %s"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevMissingPrincipal           = "principal missing from context"

	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevRoleTypeDoesntMatch       = "role type doesn't match"
	ErrDevRBACEnforce               = "failed to enforce RBAC policy"
	ErrDevTooManyRequests           = "rate limit exceeded"

	ErrDevLabTestNotFound           = "lab test document not found"
	ErrDevLabTechNotFound           = "lab technician profile not found"
	ErrDevPatientNotFound           = "patient profile not found"
	ErrDevDoctorNotFound            = "doctor profile not found"
	ErrDevProfileNotFound           = "profile for principal %s not found"
	ErrDevRelationshipDenied        = "relationship guard denied access: %s"
	ErrDevLabTestStateConflict      = "lab test state conflict: %s"
	ErrDevLabTechInactive           = "lab technician %s is inactive"
	ErrDevLabReportAlreadyExists    = "lab report already exists for lab test %s"
	ErrDevLabReportTestNotCompleted = "lab test %s is not completed"
	ErrDevLabReportNotFound         = "lab report document not found"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents on database"
	ErrDevDBFailedToCountDocuments   = "failed to count documents on database"
	ErrDevDBFailedToAggregate        = "failed to run aggregation on database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	ErrDevRedisGetNoData  = "no data found on redis for key %s"
	ErrDevRedisDeleteData = "failed to delete data on redis"
	ErrDevRedisSetData    = "failed to set data on redis"
	ErrDevRedisUnlock     = "failed to unlock on redis"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	ErrDevMinioFailedToCreateObject = "failed to create object on minio bucket %s"
	ErrDevMinioFailedToPresignURL   = "failed to presign object url on minio bucket %s"

	ErrDevRenderReportDocument = "failed to render lab report document"

	ErrDevServerProcess          = "server failed to process the request"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)
