package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingDataKey        = "data"
	LoggingQueryParamsKey = "query_params"
	LoggingResponseKey    = "response"
	LoggingRequestKey     = "request"
	LoggingErrorTypeKey   = "error_type"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingUserIDKey       = "user_id"
	LoggingRoleKey         = "role"
	LoggingLabTestIDKey    = "lab_test_id"
	LoggingLabReportIDKey  = "lab_report_id"
	LoggingTechnicianIDKey = "technician_id"
	LoggingPatientIDKey    = "patient_id"
	LoggingDoctorIDKey     = "doctor_id"
	LoggingStatusKey       = "status"
	LoggingEventTypeKey    = "event_type"
	LoggingQueueNameKey    = "queue_name"
	LoggingObjectNameKey   = "object_name"
	LoggingCountKey        = "count"
	LoggingReasonKey       = "reason"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
)
