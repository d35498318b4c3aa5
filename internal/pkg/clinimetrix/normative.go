package clinimetrix

import (
	"context"
	"errors"
	"math"

	"mindhub-service/internal/app/models"
)

// ErrNormsNotFound is the sentinel a NormativeClient returns when no
// population reference exists for the requested instrument and demographics.
var ErrNormsNotFound = errors.New("normative data not found")

// Demographics narrows the normative lookup to a population group. All fields
// are optional.
type Demographics struct {
	AgeYears  int    `json:"ageYears,omitempty"`
	Sex       string `json:"sex,omitempty"`
	Education string `json:"education,omitempty"`
}

// NormativeClient is the external normative-data collaborator. Lookups are
// keyed by instrument id and demographics; ErrNormsNotFound means "no data",
// any other error means the service was unreachable. Both cases take the same
// fallback path.
type NormativeClient interface {
	FindNorms(ctx context.Context, instrumentID string, demographics Demographics) (*models.NormativeData, error)
}

type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

type AdvancedScoreResult struct {
	Percentile         float64             `json:"percentile"`
	ZScore             float64             `json:"zScore"`
	TScore             float64             `json:"tScore"`
	ConfidenceInterval *ConfidenceInterval `json:"confidenceInterval,omitempty"`
	DemographicGroup   string              `json:"demographicGroup,omitempty"`
	SubscaleScores     []SubscaleScore     `json:"subscaleScores,omitempty"`
	UsedFallback       bool                `json:"usedFallback"`
}

// AdvancedScore augments a raw total with population-referenced statistics.
//
// The primary path asks the normative client. When the call fails or returns
// no data, the fallback computes a linear-interpolation percentile within the
// instrument's score range and a z-score from the instrument's declared norms
// if present, otherwise from an estimated normal distribution with mean at
// the range midpoint and standard deviation at range/6. The fallback is the
// same formula regardless of why the primary path was unavailable, and the
// call never fails: partial clinical output beats none at assessment time.
// Subscale scores ride along unchanged so the report keeps per-scale context.
func AdvancedScore(ctx context.Context, client NormativeClient, def *models.InstrumentDefinition, totalScore float64, subscaleScores []SubscaleScore, demographics Demographics) AdvancedScoreResult {
	if client != nil {
		norms, err := client.FindNorms(ctx, def.ID, demographics)
		if err == nil && norms != nil && norms.StandardDeviation > 0 {
			zScore := (totalScore - norms.Mean) / norms.StandardDeviation
			result := AdvancedScoreResult{
				Percentile:       normalCDF(zScore) * 100,
				ZScore:           zScore,
				TScore:           zScore*10 + 50,
				DemographicGroup: norms.DemographicGroup,
				SubscaleScores:   subscaleScores,
			}
			if norms.SampleSize > 1 {
				margin := 1.96 * 10 / math.Sqrt(float64(norms.SampleSize))
				result.ConfidenceInterval = &ConfidenceInterval{
					Lower: result.TScore - margin,
					Upper: result.TScore + margin,
				}
			}
			return result
		}
	}
	return fallbackScore(def, totalScore, subscaleScores)
}

func fallbackScore(def *models.InstrumentDefinition, totalScore float64, subscaleScores []SubscaleScore) AdvancedScoreResult {
	result := AdvancedScoreResult{UsedFallback: true, SubscaleScores: subscaleScores}

	span := def.ScoreRange.Max - def.ScoreRange.Min
	if span > 0 {
		percentile := (totalScore - def.ScoreRange.Min) / span * 100
		result.Percentile = math.Min(100, math.Max(0, percentile))
	}

	mean := def.ScoreRange.Min + span/2
	standardDeviation := span / 6
	if def.Norms != nil && def.Norms.StandardDeviation > 0 {
		mean = def.Norms.Mean
		standardDeviation = def.Norms.StandardDeviation
	}
	if standardDeviation > 0 {
		result.ZScore = (totalScore - mean) / standardDeviation
		result.TScore = result.ZScore*10 + 50
	}
	return result
}

func normalCDF(zScore float64) float64 {
	return 0.5 * (1 + math.Erf(zScore/math.Sqrt2))
}
