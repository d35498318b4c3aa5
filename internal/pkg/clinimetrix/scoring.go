package clinimetrix

import (
	"fmt"
	"math"
	"sort"

	"mindhub-service/internal/app/models"
)

// InputError records a raw value that could not be normalized. The item is
// treated as unanswered; nothing is silently dropped without an entry here.
type InputError struct {
	ItemNumber int    `json:"itemNumber"`
	Message    string `json:"message"`
}

type SubscaleScore struct {
	SubscaleID    string  `json:"subscaleId"`
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	AnsweredItems int     `json:"answeredItems"`
}

// ScoreResult is a pure function of the instrument definition and the raw
// responses: recomputing from identical inputs always yields identical
// output.
type ScoreResult struct {
	ItemScores           []models.ItemScore `json:"itemScores"`
	TotalScore           float64            `json:"totalScore"`
	SubscaleScores       []SubscaleScore    `json:"subscaleScores,omitempty"`
	AnsweredCount        int                `json:"answeredCount"`
	CompletionPercentage float64            `json:"completionPercentage"`
	SynthesizedOptions   bool               `json:"synthesizedOptions,omitempty"`
	InputErrors          []InputError       `json:"inputErrors,omitempty"`
}

// Score resolves, normalizes and aggregates one response set.
//
// Reverse-scored items invert against the max of the item's own resolved
// option set, not the instrument's global range, because item-specific sets
// may have different maxima. Unanswered items contribute nothing and are
// never imputed: a partial submission yields an honestly-partial total, and
// CompletionPercentage tells the consumer how much to trust it.
func Score(def *models.InstrumentDefinition, responses ResponseSet) ScoreResult {
	result := ScoreResult{}
	scoreByItem := make(map[int]float64, len(responses))

	for _, item := range def.Items {
		rawValue, answered := responses[item.Number]
		if !answered {
			continue
		}

		resolution := ResolveOptions(def, item.Number)
		if resolution.Synthesized {
			result.SynthesizedOptions = true
		}

		score, err := NormalizeResponse(item.Number, resolution.Options, rawValue)
		if err != nil {
			result.InputErrors = append(result.InputErrors, InputError{
				ItemNumber: item.Number,
				Message:    err.Error(),
			})
			continue
		}

		if item.ReverseScored {
			score = MaxOptionScore(resolution.Options) - score
		}

		scoreByItem[item.Number] = score
		result.ItemScores = append(result.ItemScores, models.ItemScore{
			ItemNumber: item.Number,
			Score:      score,
			Reversed:   item.ReverseScored,
		})
		result.TotalScore += score
		result.AnsweredCount++
	}

	for _, number := range undeclaredItemNumbers(def, responses) {
		result.InputErrors = append(result.InputErrors, InputError{
			ItemNumber: number,
			Message:    fmt.Sprintf("item %d is not declared by this instrument", number),
		})
	}

	sort.Slice(result.ItemScores, func(i, j int) bool {
		return result.ItemScores[i].ItemNumber < result.ItemScores[j].ItemNumber
	})

	for _, subscale := range def.Subscales {
		subscaleScore := SubscaleScore{SubscaleID: subscale.ID, Name: subscale.Name}
		for _, number := range subscale.MemberItemNumbers {
			if score, ok := scoreByItem[number]; ok {
				subscaleScore.Score += score
				subscaleScore.AnsweredItems++
			}
		}
		result.SubscaleScores = append(result.SubscaleScores, subscaleScore)
	}

	if def.ItemCount > 0 {
		result.CompletionPercentage = float64(result.AnsweredCount) / float64(def.ItemCount) * 100
	}
	return result
}

// undeclaredItemNumbers lists response keys with no matching item, in
// ascending order. Such responses never score, so they must surface as input
// errors instead of vanishing.
func undeclaredItemNumbers(def *models.InstrumentDefinition, responses ResponseSet) []int {
	var numbers []int
	for number := range responses {
		if _, ok := def.ItemByNumber(number); !ok {
			numbers = append(numbers, number)
		}
	}
	sort.Ints(numbers)
	return numbers
}

// DisplayPercentage rounds half up to one decimal place. Sums are never
// rounded; only display-layer percentages are.
func DisplayPercentage(percentage float64) float64 {
	return math.Floor(percentage*10+0.5) / 10
}
