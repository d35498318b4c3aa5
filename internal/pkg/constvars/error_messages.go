package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"uuid":     "must be a valid UUID",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}

// Client-facing messages
const (
	ErrClientCannotProcessRequest          = "We cannot process your request, please try again"
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please contact the administrator"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again"
	ErrClientInstrumentNotFound            = "The requested instrument version does not exist"
	ErrClientInstrumentInvalid             = "The instrument definition is internally inconsistent and cannot be used"
	ErrClientInstrumentVersionExists       = "An instrument with this identifier and version already exists"
	ErrClientItemNotFound                  = "The requested item does not exist on this instrument"
	ErrClientAssessmentNotFound            = "The requested assessment does not exist"
	ErrClientAssessmentFinalized           = "The assessment has been finalized and can no longer be edited"
)

// Developer-facing messages
const (
	ErrDevValidationFailed            = "Request validation failed"
	ErrDevInvalidInput                = "Invalid input"
	ErrDevCannotParseJSON             = "Failed to parse JSON payload"
	ErrDevCannotMarshalJSON           = "Failed to marshal JSON payload"
	ErrDevServerDeadlineExceeded      = "Deadline exceeded while processing request"
	ErrDevURLParamValidationFailed    = "URL parameter %s failed validation"
	ErrDevBuildRequest                = "Failed to build outbound request"
	ErrDevSendRequest                 = "Failed to send outbound request"
	ErrDevDecodeResponse              = "Failed to decode %s response"
	ErrDevDBFailedToFindDocument      = "DB: failed to find document"
	ErrDevDBFailedToInsertDocument    = "DB: failed to insert document"
	ErrDevDBFailedToUpdateDocument    = "DB: failed to update document"
	ErrDevDBFailedToDeleteDocument    = "DB: failed to delete document"
	ErrDevDBFailedToIterateDocuments  = "DB: failed to iterate documents"
	ErrDevRedisFailedToSetData        = "Redis: failed to set data"
	ErrDevRedisFailedToGetData        = "Redis: failed to get data for key %s"
	ErrDevRedisFailedToDeleteData     = "Redis: failed to delete data"
	ErrDevMinioFailedToCreateObject   = "Minio: failed to create object in bucket %s"
	ErrDevRabbitMQFailedToPublish     = "RabbitMQ: failed to publish message to queue %s"
	ErrDevInstrumentNotFound          = "Instrument %s version %s not found"
	ErrDevInstrumentDefinitionInvalid = "Instrument definition rejected at load time"
	ErrDevInstrumentVersionExists     = "Instrument %s version %s already exists"
	ErrDevItemNotFound                = "Item %d not found on instrument %s"
	ErrDevAssessmentNotFound          = "Assessment %s not found"
	ErrDevAssessmentAlreadyFinalized  = "Assessment %s is already finalized"
	ErrDevUnknownSubscale             = "Subscale %s is not declared by the instrument"
)
