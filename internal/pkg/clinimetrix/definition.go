package clinimetrix

import (
	"fmt"
	"math"
	"sort"

	"mindhub-service/internal/app/models"
)

// ValidateDefinition checks an instrument definition for internal
// consistency. Any issue is fatal for that instrument version: the template
// store must refuse to serve a definition that fails here, so scoring never
// sees a malformed instrument.
func ValidateDefinition(def *models.InstrumentDefinition) error {
	var issues []string

	if def.Name == "" {
		issues = append(issues, "name is empty")
	}
	if def.Version == "" {
		issues = append(issues, "version is empty")
	}
	if def.ScoringMethod != "" && def.ScoringMethod != models.ScoringMethodSum {
		issues = append(issues, fmt.Sprintf("unsupported scoring method %q", def.ScoringMethod))
	}
	if def.ScoreRange.Max <= def.ScoreRange.Min {
		issues = append(issues, fmt.Sprintf("score range [%g, %g] is empty", def.ScoreRange.Min, def.ScoreRange.Max))
	}
	if len(def.Items) == 0 {
		issues = append(issues, "instrument declares no items")
	}
	if def.ItemCount != len(def.Items) {
		issues = append(issues, fmt.Sprintf("itemCount %d does not match %d declared items", def.ItemCount, len(def.Items)))
	}

	seen := make(map[int]bool, len(def.Items))
	for _, item := range def.Items {
		if item.Number < 1 {
			issues = append(issues, fmt.Sprintf("item number %d is not 1-based", item.Number))
			continue
		}
		if seen[item.Number] {
			issues = append(issues, fmt.Sprintf("duplicate item number %d", item.Number))
		}
		seen[item.Number] = true
	}

	issues = append(issues, validateOptionSets(def, seen)...)
	issues = append(issues, validateSubscales(def, seen)...)
	issues = append(issues, validateBands(def)...)

	for _, rule := range def.AlertRules {
		if !seen[rule.ItemNumber] {
			issues = append(issues, fmt.Sprintf("alert rule references unknown item %d", rule.ItemNumber))
		}
	}

	if len(issues) > 0 {
		return &DefinitionError{InstrumentID: def.ID, Version: def.Version, Issues: issues}
	}
	return nil
}

func validateOptionSets(def *models.InstrumentDefinition, items map[int]bool) []string {
	var issues []string

	globalCount := 0
	itemScoped := make(map[int]bool)
	groupScoped := make(map[string]bool)

	for _, set := range def.ResponseOptionSets {
		if len(set.Options) == 0 {
			issues = append(issues, fmt.Sprintf("%s option set has no options", set.Scope))
		}
		switch set.Scope {
		case models.OptionScopeGlobal:
			globalCount++
		case models.OptionScopeGroup:
			if set.GroupTag == "" {
				issues = append(issues, "group option set has no group tag")
			} else if groupScoped[set.GroupTag] {
				issues = append(issues, fmt.Sprintf("duplicate option set for group %q", set.GroupTag))
			}
			groupScoped[set.GroupTag] = true
		case models.OptionScopeItem:
			if !items[set.ItemNumber] {
				issues = append(issues, fmt.Sprintf("item option set references unknown item %d", set.ItemNumber))
			}
			if itemScoped[set.ItemNumber] {
				issues = append(issues, fmt.Sprintf("duplicate option set for item %d", set.ItemNumber))
			}
			itemScoped[set.ItemNumber] = true
		default:
			issues = append(issues, fmt.Sprintf("unknown option set scope %q", set.Scope))
		}
	}

	if globalCount > 1 {
		issues = append(issues, "more than one global option set")
	}
	return issues
}

func validateSubscales(def *models.InstrumentDefinition, items map[int]bool) []string {
	var issues []string
	seen := make(map[string]bool, len(def.Subscales))

	for _, subscale := range def.Subscales {
		if subscale.ID == "" {
			issues = append(issues, "subscale has no id")
			continue
		}
		if seen[subscale.ID] {
			issues = append(issues, fmt.Sprintf("duplicate subscale id %q", subscale.ID))
		}
		seen[subscale.ID] = true

		if len(subscale.MemberItemNumbers) == 0 {
			issues = append(issues, fmt.Sprintf("subscale %q has no member items", subscale.ID))
		}
		for _, number := range subscale.MemberItemNumbers {
			if !items[number] {
				issues = append(issues, fmt.Sprintf("subscale %q references unknown item %d", subscale.ID, number))
			}
		}
	}
	return issues
}

// validateBands enforces the load-time band invariants. Total-score bands
// must be non-overlapping and must cover the declared score range with no
// gaps: a total score outside every band is a definition error, not a runtime
// surprise. Subscale bands must be non-overlapping; gaps there surface at
// interpretation time as warnings.
func validateBands(def *models.InstrumentDefinition) []string {
	var issues []string

	byTarget := make(map[string][]models.InterpretationBand)
	for _, band := range def.InterpretationBands {
		if band.MaxScore < band.MinScore {
			issues = append(issues, fmt.Sprintf("band %q has max %g below min %g", band.Label, band.MaxScore, band.MinScore))
			continue
		}
		if band.Subscale != "" {
			if _, ok := def.SubscaleByID(band.Subscale); !ok {
				issues = append(issues, fmt.Sprintf("band %q references unknown subscale %q", band.Label, band.Subscale))
				continue
			}
		}
		byTarget[band.Subscale] = append(byTarget[band.Subscale], band)
	}

	for target, bands := range byTarget {
		sort.SliceStable(bands, func(i, j int) bool { return bands[i].MinScore < bands[j].MinScore })

		for i := 1; i < len(bands); i++ {
			if bands[i].MinScore <= bands[i-1].MaxScore {
				issues = append(issues, fmt.Sprintf("bands %q and %q overlap", bands[i-1].Label, bands[i].Label))
			}
		}

		if target != "" {
			continue
		}
		if len(bands) == 0 {
			continue
		}
		if bands[0].MinScore > def.ScoreRange.Min {
			issues = append(issues, fmt.Sprintf("total scores below %g fall outside every band", bands[0].MinScore))
		}
		if bands[len(bands)-1].MaxScore < def.ScoreRange.Max {
			issues = append(issues, fmt.Sprintf("total scores above %g fall outside every band", bands[len(bands)-1].MaxScore))
		}
		// Whole-number boundaries follow the next-integer convention
		// ([0,4] then [5,9]); fractional boundaries leave attainable
		// scores between them, so any positive gap is a defect.
		for i := 1; i < len(bands); i++ {
			allowance := 0.0
			if isWholeNumber(bands[i-1].MaxScore) && isWholeNumber(bands[i].MinScore) {
				allowance = 1
			}
			if bands[i].MinScore > bands[i-1].MaxScore+allowance {
				issues = append(issues, fmt.Sprintf("gap between bands %q and %q", bands[i-1].Label, bands[i].Label))
			}
		}
	}
	return issues
}

func isWholeNumber(value float64) bool {
	return value == math.Trunc(value)
}
