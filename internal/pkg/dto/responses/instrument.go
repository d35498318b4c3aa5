package responses

import "mindhub-service/internal/app/models"

// InstrumentSummary is the list-view projection of a definition.
type InstrumentSummary struct {
	InstrumentID  string `json:"instrumentId"`
	Name          string `json:"name"`
	Abbreviation  string `json:"abbreviation"`
	Version       string `json:"version"`
	ItemCount     int    `json:"itemCount"`
	SubscaleCount int    `json:"subscaleCount"`
}

// ResolvedItemOptions shows which option set governs an item, and whether the
// engine had to synthesize a default because the instrument declares none.
type ResolvedItemOptions struct {
	ItemNumber  int                         `json:"itemNumber"`
	Scope       models.ResponseOptionScope  `json:"scope"`
	Synthesized bool                        `json:"synthesized"`
	Options     []models.ResponseOption     `json:"options"`
}

// SubscaleInterpretation labels an ad-hoc subscale score. A score falling in
// a gap of the declared bands keeps Interpretation nil and carries the
// warning instead.
type SubscaleInterpretation struct {
	SubscaleID     string                 `json:"subscaleId"`
	Score          float64                `json:"score"`
	Interpretation *models.Interpretation `json:"interpretation,omitempty"`
	Warning        string                 `json:"warning,omitempty"`
}
