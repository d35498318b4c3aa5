package constvars

const (
	MongoCollectionInstruments = "instruments"
	MongoCollectionAssessments = "assessments"
)

const (
	RedisInstrumentCacheKeyFormat = "instrument:%s:%s"
)

const (
	AssessmentEventQueueName    = "assessment_events_queue"
	AssessmentEventDLQName      = "assessment_events_dlq"
	AssessmentFinalizedEvent    = "assessment.finalized"
	AssessmentSnapshotKeyFormat = "assessments/%s/%s.json"
)
