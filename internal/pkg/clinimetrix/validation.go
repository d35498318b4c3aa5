package clinimetrix

import (
	"fmt"

	"mindhub-service/internal/app/models"
)

// CompletionWarningThreshold is the completion percentage below which a
// submission is flagged. It is a warning, not an error: instruments stay
// scorable below full completion.
const CompletionWarningThreshold = 80.0

type ValidationIssue struct {
	ItemNumber int    `json:"itemNumber,omitempty"`
	Message    string `json:"message"`
}

// CompletenessResult is advisory: it never blocks scoring or interpretation,
// it only annotates them for the caller.
type CompletenessResult struct {
	IsValid              bool              `json:"isValid"`
	CompletionPercentage float64           `json:"completionPercentage"`
	Errors               []ValidationIssue `json:"errors,omitempty"`
	Warnings             []ValidationIssue `json:"warnings,omitempty"`
}

// ValidateCompleteness checks a response set against the instrument. A
// required item with no response is an error, a value outside the resolved
// option set is an error, a response keyed to an undeclared item is an
// error, and completion below the threshold is a warning.
func ValidateCompleteness(def *models.InstrumentDefinition, responses ResponseSet) CompletenessResult {
	result := CompletenessResult{}
	answered := 0

	for _, item := range def.Items {
		rawValue, ok := responses[item.Number]
		if !ok {
			if item.Required {
				result.Errors = append(result.Errors, ValidationIssue{
					ItemNumber: item.Number,
					Message:    fmt.Sprintf("required item %d has no response", item.Number),
				})
			}
			continue
		}

		resolution := ResolveOptions(def, item.Number)
		if _, err := NormalizeResponse(item.Number, resolution.Options, rawValue); err != nil {
			result.Errors = append(result.Errors, ValidationIssue{
				ItemNumber: item.Number,
				Message:    err.Error(),
			})
			continue
		}
		answered++
	}

	for _, number := range undeclaredItemNumbers(def, responses) {
		result.Errors = append(result.Errors, ValidationIssue{
			ItemNumber: number,
			Message:    fmt.Sprintf("item %d is not declared by this instrument", number),
		})
	}

	if def.ItemCount > 0 {
		result.CompletionPercentage = float64(answered) / float64(def.ItemCount) * 100
	}
	if result.CompletionPercentage < CompletionWarningThreshold {
		result.Warnings = append(result.Warnings, ValidationIssue{
			Message: fmt.Sprintf("only %.1f%% of items answered; the total score is partial", result.CompletionPercentage),
		})
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
