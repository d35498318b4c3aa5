package requests

type StartAssessment struct {
	InstrumentID      string `json:"instrumentId" validate:"required"`
	InstrumentVersion string `json:"instrumentVersion" validate:"required"`
	SubjectReference  string `json:"subjectReference" validate:"required"`
}

type ItemAnswer struct {
	ItemNumber int         `json:"itemNumber" validate:"required,gte=1"`
	RawValue   interface{} `json:"rawValue" validate:"required"`
}

type SubmitResponses struct {
	Responses []ItemAnswer `json:"responses" validate:"required,min=1,dive"`
}

type AdvancedScore struct {
	AgeYears  int    `json:"ageYears,omitempty" validate:"omitempty,gte=0,lte=120"`
	Sex       string `json:"sex,omitempty" validate:"omitempty,oneof=female male other"`
	Education string `json:"education,omitempty"`
}

// RescoreAssessment names the instrument version to re-score against. The
// operation is always explicit and lands in the assessment's audit trail.
type RescoreAssessment struct {
	InstrumentVersion string `json:"instrumentVersion" validate:"required"`
	Note              string `json:"note,omitempty" validate:"omitempty,max=500"`
}
