package clinimetrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCompleteness(t *testing.T) {
	t.Run("Complete Valid Submission", func(t *testing.T) {
		def := newSymptomInventory()

		result := ValidateCompleteness(def, fullResponses("2"))

		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, float64(100), result.CompletionPercentage)
	})

	t.Run("Missing Required Item Is An Error", func(t *testing.T) {
		def := newSymptomInventory()
		responses := fullResponses("2")
		delete(responses, 1) // item 1 is required

		result := ValidateCompleteness(def, responses)

		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 1, result.Errors[0].ItemNumber)
	})

	t.Run("Invalid Value Is An Error", func(t *testing.T) {
		def := newSymptomInventory()
		responses := fullResponses("2")
		responses[5] = "nope"

		result := ValidateCompleteness(def, responses)

		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 5, result.Errors[0].ItemNumber)
	})

	t.Run("Undeclared Item Response Is An Error", func(t *testing.T) {
		def := newSymptomInventory()
		responses := fullResponses("2")
		responses[99] = "1"

		result := ValidateCompleteness(def, responses)

		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 99, result.Errors[0].ItemNumber)
		assert.Equal(t, float64(100), result.CompletionPercentage, "undeclared responses never count as answered")
	})

	t.Run("Low Completion Is A Warning Not An Error", func(t *testing.T) {
		def := newSymptomInventory()

		result := ValidateCompleteness(def, ResponseSet{1: "1", 2: "2"})

		assert.True(t, result.IsValid, "instruments must stay scorable below full completion")
		assert.Empty(t, result.Errors)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0].Message, "partial")
	})

	t.Run("Completion At Threshold Has No Warning", func(t *testing.T) {
		def := newSymptomInventory()
		responses := make(ResponseSet)
		for number := 1; number <= 17; number++ { // 17/21 ≈ 81%
			responses[number] = "1"
		}

		result := ValidateCompleteness(def, responses)

		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
	})
}
