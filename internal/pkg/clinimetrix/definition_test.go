package clinimetrix

import (
	"testing"

	"mindhub-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefinition(t *testing.T) {
	t.Run("Well Formed Definition Passes", func(t *testing.T) {
		assert.NoError(t, ValidateDefinition(newSymptomInventory()))
	})

	t.Run("Duplicate Item Numbers", func(t *testing.T) {
		def := newSymptomInventory()
		def.Items[1].Number = 1

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "duplicate item number 1")
	})

	t.Run("Item Count Mismatch", func(t *testing.T) {
		def := newSymptomInventory()
		def.ItemCount = 20

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "itemCount 20 does not match 21 declared items")
	})

	t.Run("Overlapping Bands", func(t *testing.T) {
		def := newSymptomInventory()
		def.InterpretationBands = []models.InterpretationBand{
			{MinScore: 0, MaxScore: 20, Severity: "minimal", Label: "Minimal"},
			{MinScore: 15, MaxScore: 63, Severity: "severe", Label: "Severe"},
		}

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, `bands "Minimal" and "Severe" overlap`)
	})

	t.Run("Gap In Total Bands", func(t *testing.T) {
		def := newSymptomInventory()
		def.InterpretationBands = []models.InterpretationBand{
			{MinScore: 0, MaxScore: 10, Severity: "minimal", Label: "Minimal"},
			{MinScore: 20, MaxScore: 63, Severity: "severe", Label: "Severe"},
		}

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, `gap between bands "Minimal" and "Severe"`)
	})

	t.Run("Fractional Band Boundaries Must Abut Exactly", func(t *testing.T) {
		def := newSymptomInventory()
		def.InterpretationBands = []models.InterpretationBand{
			{MinScore: 0, MaxScore: 13, Severity: "minimal", Label: "Minimal"},
			{MinScore: 13.5, MaxScore: 63, Severity: "severe", Label: "Severe"},
		}

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, `gap between bands "Minimal" and "Severe"`)
	})

	t.Run("Adjacent Integer Bands Are Contiguous", func(t *testing.T) {
		def := newSymptomInventory()
		def.InterpretationBands = []models.InterpretationBand{
			{MinScore: 0, MaxScore: 20, Severity: "minimal", Label: "Minimal"},
			{MinScore: 21, MaxScore: 63, Severity: "severe", Label: "Severe"},
		}

		assert.NoError(t, ValidateDefinition(def))
	})

	t.Run("Total Bands Must Cover Score Range", func(t *testing.T) {
		def := newSymptomInventory()
		def.InterpretationBands = []models.InterpretationBand{
			{MinScore: 0, MaxScore: 40, Severity: "any", Label: "Any"},
		}

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "total scores above 40 fall outside every band")
	})

	t.Run("Subscale References Unknown Item", func(t *testing.T) {
		def := newSymptomInventory()
		def.Subscales[0].MemberItemNumbers = append(def.Subscales[0].MemberItemNumbers, 99)

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, `subscale "cognitive" references unknown item 99`)
	})

	t.Run("Item Option Set References Unknown Item", func(t *testing.T) {
		def := newSymptomInventory()
		def.ResponseOptionSets = append(def.ResponseOptionSets, models.ResponseOptionSet{
			Scope:      models.OptionScopeItem,
			ItemNumber: 42,
			Options:    fourPointOptions(),
		})

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "item option set references unknown item 42")
	})

	t.Run("Alert Rule References Unknown Item", func(t *testing.T) {
		def := newSymptomInventory()
		def.AlertRules = append(def.AlertRules, models.AlertRule{ItemNumber: 55, MinScore: 1})

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "alert rule references unknown item 55")
	})

	t.Run("Empty Option Set", func(t *testing.T) {
		def := newSymptomInventory()
		def.ResponseOptionSets[0].Options = nil

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "global option set has no options")
	})

	t.Run("Empty Score Range", func(t *testing.T) {
		def := newSymptomInventory()
		def.ScoreRange = models.ScoreRange{Min: 10, Max: 10}

		err := ValidateDefinition(def)

		requireDefinitionIssue(t, err, "score range [10, 10] is empty")
	})
}

func requireDefinitionIssue(t *testing.T, err error, issue string) {
	t.Helper()

	var definitionErr *DefinitionError
	require.ErrorAs(t, err, &definitionErr)
	assert.Contains(t, definitionErr.Issues, issue)
}
