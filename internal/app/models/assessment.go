package models

import "time"

type AssessmentStatus string

const (
	AssessmentStatusDraft     AssessmentStatus = "draft"
	AssessmentStatusFinalized AssessmentStatus = "finalized"
)

const (
	AssessmentAuditActionCreated   = "created"
	AssessmentAuditActionScored    = "scored"
	AssessmentAuditActionFinalized = "finalized"
	AssessmentAuditActionRescored  = "rescored"
)

// ItemResponse is one raw answer. RawValue keeps whatever the form layer sent
// (string or number); normalization happens in the engine on every recompute.
type ItemResponse struct {
	ItemNumber int         `json:"itemNumber" bson:"itemNumber"`
	RawValue   interface{} `json:"rawValue" bson:"rawValue"`
}

type ItemScore struct {
	ItemNumber int     `json:"itemNumber" bson:"itemNumber"`
	Score      float64 `json:"score" bson:"score"`
	Reversed   bool    `json:"reversed,omitempty" bson:"reversed,omitempty"`
}

type SubscaleResult struct {
	SubscaleID string  `json:"subscaleId" bson:"subscaleId"`
	Name       string  `json:"name" bson:"name"`
	Score      float64 `json:"score" bson:"score"`
}

type Interpretation struct {
	Label           string   `json:"label" bson:"label"`
	Severity        string   `json:"severity" bson:"severity"`
	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
	Recommendations []string `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
}

type Alert struct {
	ItemNumber int    `json:"itemNumber" bson:"itemNumber"`
	Message    string `json:"message" bson:"message"`
	Severity   string `json:"severity" bson:"severity"`
}

type AssessmentAuditEntry struct {
	Action            string    `json:"action" bson:"action"`
	InstrumentVersion string    `json:"instrumentVersion" bson:"instrumentVersion"`
	Note              string    `json:"note,omitempty" bson:"note,omitempty"`
	At                time.Time `json:"at" bson:"at"`
}

// Assessment is the record of one administration. It references its
// instrument by id and version, never by copy, so instrument corrections do
// not silently rewrite history; re-scoring against an edited definition is an
// explicit operation recorded in Audit.
//
// All score fields are derived from Responses and recomputed wholesale
// whenever Responses change. They are stored for readers' convenience, not as
// the source of truth.
type Assessment struct {
	ID                   string               `json:"id" bson:"_id,omitempty"`
	InstrumentID         string               `json:"instrumentId" bson:"instrumentId"`
	InstrumentVersion    string               `json:"instrumentVersion" bson:"instrumentVersion"`
	SubjectReference     string               `json:"subjectReference" bson:"subjectReference"`
	Status               AssessmentStatus     `json:"status" bson:"status"`
	Responses            []ItemResponse       `json:"responses" bson:"responses"`
	ItemScores           []ItemScore          `json:"itemScores,omitempty" bson:"itemScores,omitempty"`
	TotalScore           float64              `json:"totalScore" bson:"totalScore"`
	SubscaleResults      []SubscaleResult     `json:"subscaleResults,omitempty" bson:"subscaleResults,omitempty"`
	Interpretation       *Interpretation      `json:"interpretation,omitempty" bson:"interpretation,omitempty"`
	Alerts               []Alert              `json:"alerts,omitempty" bson:"alerts,omitempty"`
	Warnings             []string             `json:"warnings,omitempty" bson:"warnings,omitempty"`
	CompletionPercentage float64              `json:"completionPercentage" bson:"completionPercentage"`
	AdministeredAt       time.Time            `json:"administeredAt" bson:"administeredAt"`
	FinalizedAt          *time.Time           `json:"finalizedAt,omitempty" bson:"finalizedAt,omitempty"`
	Audit                []AssessmentAuditEntry `json:"audit,omitempty" bson:"audit,omitempty"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// SetResponse inserts or replaces the answer for one item, keeping Responses
// ordered by item number.
func (a *Assessment) SetResponse(itemNumber int, rawValue interface{}) {
	for i := range a.Responses {
		if a.Responses[i].ItemNumber == itemNumber {
			a.Responses[i].RawValue = rawValue
			return
		}
		if a.Responses[i].ItemNumber > itemNumber {
			a.Responses = append(a.Responses, ItemResponse{})
			copy(a.Responses[i+1:], a.Responses[i:])
			a.Responses[i] = ItemResponse{ItemNumber: itemNumber, RawValue: rawValue}
			return
		}
	}
	a.Responses = append(a.Responses, ItemResponse{ItemNumber: itemNumber, RawValue: rawValue})
}

// ResponseMap projects the owned response list into the engine's input shape.
func (a *Assessment) ResponseMap() map[int]interface{} {
	out := make(map[int]interface{}, len(a.Responses))
	for _, response := range a.Responses {
		out[response.ItemNumber] = response.RawValue
	}
	return out
}
