package clinimetrix

import (
	"testing"

	"mindhub-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptions(t *testing.T) {
	t.Run("Item Specific Set Wins Over Group And Global", func(t *testing.T) {
		def := newSymptomInventory()
		def.Items[8].ResponseGroupTag = "frequency"
		def.ResponseOptionSets = append(def.ResponseOptionSets, models.ResponseOptionSet{
			Scope:    models.OptionScopeGroup,
			GroupTag: "frequency",
			Options: []models.ResponseOption{
				{Value: "0", Label: "no", Score: 0},
				{Value: "1", Label: "yes", Score: 1},
			},
		})

		resolution := ResolveOptions(def, 9)

		assert.Equal(t, models.OptionScopeItem, resolution.Scope)
		assert.Len(t, resolution.Options, 4, "item-specific set must be returned unmerged")
		assert.False(t, resolution.Synthesized)
	})

	t.Run("Group Set Wins Over Global", func(t *testing.T) {
		def := newSymptomInventory()
		def.Items[4].ResponseGroupTag = "intensity"
		def.ResponseOptionSets = append(def.ResponseOptionSets, models.ResponseOptionSet{
			Scope:    models.OptionScopeGroup,
			GroupTag: "intensity",
			Options: []models.ResponseOption{
				{Value: "0", Label: "none", Score: 0},
				{Value: "1", Label: "mild", Score: 1},
				{Value: "2", Label: "severe", Score: 2},
			},
		})

		resolution := ResolveOptions(def, 5)

		assert.Equal(t, models.OptionScopeGroup, resolution.Scope)
		assert.Len(t, resolution.Options, 3)
	})

	t.Run("Global Set Is The Default", func(t *testing.T) {
		def := newSymptomInventory()

		resolution := ResolveOptions(def, 3)

		assert.Equal(t, models.OptionScopeGlobal, resolution.Scope)
		assert.False(t, resolution.Synthesized)
	})

	t.Run("Synthesized Default When Nothing Declared", func(t *testing.T) {
		def := newSymptomInventory()
		def.ResponseOptionSets = nil

		resolution := ResolveOptions(def, 3)

		require.True(t, resolution.Synthesized, "missing options must be flagged as a data-quality signal")
		require.Len(t, resolution.Options, 4)
		assert.Equal(t, "never", resolution.Options[0].Label)
		assert.Equal(t, float64(3), resolution.Options[3].Score)
	})
}

func TestNormalizeResponse(t *testing.T) {
	options := fourPointOptions()

	t.Run("String Value", func(t *testing.T) {
		score, err := NormalizeResponse(1, options, "2")
		require.NoError(t, err)
		assert.Equal(t, float64(2), score)
	})

	t.Run("Numeric Value", func(t *testing.T) {
		score, err := NormalizeResponse(1, options, 3)
		require.NoError(t, err)
		assert.Equal(t, float64(3), score)
	})

	t.Run("JSON Decoded Float", func(t *testing.T) {
		score, err := NormalizeResponse(1, options, float64(1))
		require.NoError(t, err)
		assert.Equal(t, float64(1), score)
	})

	t.Run("Whitespace Trimmed", func(t *testing.T) {
		score, err := NormalizeResponse(1, options, " 1 ")
		require.NoError(t, err)
		assert.Equal(t, float64(1), score)
	})

	t.Run("Value Outside Option Set", func(t *testing.T) {
		_, err := NormalizeResponse(7, options, "9")
		require.Error(t, err)

		var invalid *InvalidResponseValueError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 7, invalid.ItemNumber)
	})
}

func TestMaxOptionScore(t *testing.T) {
	assert.Equal(t, float64(3), MaxOptionScore(fourPointOptions()))

	unordered := []models.ResponseOption{
		{Value: "a", Score: 5},
		{Value: "b", Score: 2},
		{Value: "c", Score: 4},
	}
	assert.Equal(t, float64(5), MaxOptionScore(unordered))
}
