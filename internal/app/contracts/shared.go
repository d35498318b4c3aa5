package contracts

import (
	"context"
	"time"

	"mindhub-service/internal/app/models"
)

type RedisRepository interface {
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// SnapshotStorage archives a finalized assessment as an opaque structured
// record. Numeric fields must round-trip exactly.
type SnapshotStorage interface {
	StoreAssessmentSnapshot(ctx context.Context, assessment *models.Assessment) (objectName string, err error)
}

type AssessmentEvent struct {
	EventID           string    `json:"event_id"`
	EventType         string    `json:"event_type"`
	AssessmentID      string    `json:"assessment_id"`
	InstrumentID      string    `json:"instrument_id"`
	InstrumentVersion string    `json:"instrument_version"`
	SubjectReference  string    `json:"subject_reference"`
	TotalScore        float64   `json:"total_score"`
	AlertCount        int       `json:"alert_count"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishAssessmentEvent(ctx context.Context, event *AssessmentEvent) error
}
