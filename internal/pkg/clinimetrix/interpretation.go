package clinimetrix

import (
	"sort"

	"mindhub-service/internal/app/models"
)

// Interpret maps a total score onto the instrument's severity bands. A score
// falling in a band gap returns a NoMatchingBandError; callers attach it to
// the result as a warning since clinical workflows must still see the score
// even when the label is missing.
func Interpret(def *models.InstrumentDefinition, totalScore float64) (*models.Interpretation, error) {
	return interpretAgainst(bandsFor(def, ""), "", totalScore)
}

// InterpretSubscale maps a subscale score onto the bands declared for that
// subscale.
func InterpretSubscale(def *models.InstrumentDefinition, subscaleID string, score float64) (*models.Interpretation, error) {
	return interpretAgainst(bandsFor(def, subscaleID), subscaleID, score)
}

func bandsFor(def *models.InstrumentDefinition, subscaleID string) []models.InterpretationBand {
	var bands []models.InterpretationBand
	for _, band := range def.InterpretationBands {
		if band.Subscale == subscaleID {
			bands = append(bands, band)
		}
	}
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].MinScore < bands[j].MinScore })
	return bands
}

func interpretAgainst(bands []models.InterpretationBand, subscaleID string, score float64) (*models.Interpretation, error) {
	for _, band := range bands {
		if score >= band.MinScore && score <= band.MaxScore {
			label := band.Label
			if label == "" {
				label = band.Severity
			}
			return &models.Interpretation{
				Label:           label,
				Severity:        band.Severity,
				Description:     band.Description,
				Recommendations: band.Recommendations,
			}, nil
		}
	}
	return nil, &NoMatchingBandError{Subscale: subscaleID, Score: score}
}

// ScanAlerts evaluates the instrument's alert rules against the raw
// responses. Rules compare the pre-reverse normalized score, run
// independently of total scoring, and fire even on partial submissions: risk
// items need immediate visibility regardless of completion.
func ScanAlerts(def *models.InstrumentDefinition, responses ResponseSet) []models.Alert {
	var alerts []models.Alert
	for _, rule := range def.AlertRules {
		rawValue, answered := responses[rule.ItemNumber]
		if !answered {
			continue
		}
		resolution := ResolveOptions(def, rule.ItemNumber)
		score, err := NormalizeResponse(rule.ItemNumber, resolution.Options, rawValue)
		if err != nil {
			continue
		}
		if score >= rule.MinScore {
			alerts = append(alerts, models.Alert{
				ItemNumber: rule.ItemNumber,
				Message:    rule.Message,
				Severity:   rule.Severity,
			})
		}
	}
	return alerts
}
