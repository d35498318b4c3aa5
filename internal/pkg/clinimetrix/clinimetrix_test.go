package clinimetrix

import (
	"strconv"

	"mindhub-service/internal/app/models"
)

// newSymptomInventory builds a 21-item inventory with a global 0-3 option
// set, an item-specific set on item 9 (reverse-scored, suicidal-ideation
// alert), two overlapping subscales, and contiguous severity bands over the
// 0-63 range.
func newSymptomInventory() *models.InstrumentDefinition {
	items := make([]models.Item, 21)
	for i := range items {
		items[i] = models.Item{
			Number: i + 1,
			Text:   "symptom item " + strconv.Itoa(i+1),
		}
	}
	items[8].ReverseScored = true
	items[0].Required = true

	return &models.InstrumentDefinition{
		ID:            "ssi-21",
		Name:          "Symptom Severity Inventory",
		Abbreviation:  "SSI",
		Version:       "2.1",
		ItemCount:     21,
		ScoreRange:    models.ScoreRange{Min: 0, Max: 63},
		ScoringMethod: models.ScoringMethodSum,
		Items:         items,
		ResponseOptionSets: []models.ResponseOptionSet{
			{
				Scope:   models.OptionScopeGlobal,
				Options: fourPointOptions(),
			},
			{
				Scope:      models.OptionScopeItem,
				ItemNumber: 9,
				Options:    fourPointOptions(),
			},
		},
		Subscales: []models.Subscale{
			{
				ID:                "cognitive",
				Name:              "Cognitive",
				MemberItemNumbers: []int{1, 2, 3, 9},
				ScoreRange:        models.ScoreRange{Min: 0, Max: 12},
			},
			{
				ID:                "somatic",
				Name:              "Somatic",
				MemberItemNumbers: []int{9, 15, 16, 20},
				ScoreRange:        models.ScoreRange{Min: 0, Max: 12},
			},
		},
		InterpretationBands: []models.InterpretationBand{
			{MinScore: 0, MaxScore: 13, Severity: "minimal", Label: "Minimal symptoms"},
			{MinScore: 14, MaxScore: 19, Severity: "mild", Label: "Mild symptoms"},
			{MinScore: 20, MaxScore: 28, Severity: "moderate", Label: "Moderate symptoms", Recommendations: []string{"consider structured follow-up"}},
			{MinScore: 29, MaxScore: 63, Severity: "severe", Label: "Severe symptoms", Recommendations: []string{"refer for clinical evaluation"}},
			{Subscale: "cognitive", MinScore: 0, MaxScore: 6, Severity: "low", Label: "Low cognitive load"},
			{Subscale: "cognitive", MinScore: 7, MaxScore: 12, Severity: "high", Label: "High cognitive load"},
		},
		AlertRules: []models.AlertRule{
			{ItemNumber: 9, MinScore: 3, Severity: "high", Message: "item 9 endorsed at clinical threshold"},
		},
	}
}

func fourPointOptions() []models.ResponseOption {
	return []models.ResponseOption{
		{Value: "0", Label: "not at all", Score: 0},
		{Value: "1", Label: "several days", Score: 1},
		{Value: "2", Label: "more than half the days", Score: 2},
		{Value: "3", Label: "nearly every day", Score: 3},
	}
}

// fullResponses answers every item with raw value "1" except item 9, which
// gets the supplied raw value.
func fullResponses(item9 interface{}) ResponseSet {
	responses := make(ResponseSet, 21)
	for number := 1; number <= 21; number++ {
		responses[number] = "1"
	}
	responses[9] = item9
	return responses
}
