package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingRequestKey         = "request"
	LoggingResponseKey        = "response"
	LoggingInstrumentIDKey    = "instrument_id"
	LoggingInstrumentVerKey   = "instrument_version"
	LoggingAssessmentIDKey    = "assessment_id"
	LoggingSubjectRefKey      = "subject_reference"
	LoggingTotalScoreKey      = "total_score"
	LoggingCompletionKey      = "completion_percentage"
	LoggingAlertCountKey      = "alert_count"
	LoggingInstrumentCountKey = "instrument_count"
	LoggingObjectNameKey      = "object_name"
	LoggingQueueKey           = "queue"
	LoggingEventIDKey         = "event_id"
)
