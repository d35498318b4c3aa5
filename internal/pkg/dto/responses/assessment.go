package responses

import (
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/clinimetrix"
)

// AssessmentDetail pairs the persisted aggregate with the display-rounded
// completion percentage.
type AssessmentDetail struct {
	Assessment        *models.Assessment `json:"assessment"`
	DisplayCompletion float64            `json:"displayCompletion"`
}

type ValidationResult struct {
	AssessmentID string                          `json:"assessmentId"`
	Completeness clinimetrix.CompletenessResult  `json:"completeness"`
}

type AdvancedScoreResult struct {
	AssessmentID string                          `json:"assessmentId"`
	TotalScore   float64                         `json:"totalScore"`
	Advanced     clinimetrix.AdvancedScoreResult `json:"advanced"`
}
