package clinimetrix

import (
	"fmt"
	"strings"
)

// DefinitionError reports an internally inconsistent instrument definition.
// These are fatal: the instrument version must be rejected at load time and
// never reach scoring.
type DefinitionError struct {
	InstrumentID string
	Version      string
	Issues       []string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("instrument %s version %s is invalid: %s",
		e.InstrumentID, e.Version, strings.Join(e.Issues, "; "))
}

// InvalidResponseValueError reports a raw value outside the item's resolved
// option set. Callers decide whether to treat it as fatal or drop the item as
// unanswered.
type InvalidResponseValueError struct {
	ItemNumber int
	RawValue   interface{}
}

func (e *InvalidResponseValueError) Error() string {
	return fmt.Sprintf("item %d: response value %v is not among the resolved options", e.ItemNumber, e.RawValue)
}

// NoMatchingBandError reports a score falling in an interpretation gap. It is
// surfaced as a data-quality warning on results, never as an abort.
type NoMatchingBandError struct {
	Subscale string
	Score    float64
}

func (e *NoMatchingBandError) Error() string {
	if e.Subscale == "" {
		return fmt.Sprintf("total score %g falls outside every interpretation band", e.Score)
	}
	return fmt.Sprintf("subscale %s score %g falls outside every interpretation band", e.Subscale, e.Score)
}
