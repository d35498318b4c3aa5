package clinimetrix

import (
	"fmt"
	"strconv"
	"strings"

	"mindhub-service/internal/app/models"
)

// ResponseSet is one assessment's raw input: item number to raw value as the
// form layer collected it. Partial submissions are legal.
type ResponseSet map[int]interface{}

// Resolution is the option set governing one item plus where it came from.
// Synthesized marks the last-resort default; callers should log it as a
// data-quality signal because a real instrument always defines its own
// options.
type Resolution struct {
	Options     []models.ResponseOption
	Scope       models.ResponseOptionScope
	Synthesized bool
}

var defaultOptionLabels = []string{"never", "several days", "more than half the days", "almost every day"}

// ResolveOptions returns the option set governing an item. Precedence, first
// match wins with no merging across scopes: item-specific set, then the group
// set matching the item's responseGroupTag, then the instrument's global set,
// then a synthesized 4-point 0..3 default.
func ResolveOptions(def *models.InstrumentDefinition, itemNumber int) Resolution {
	for i := range def.ResponseOptionSets {
		set := &def.ResponseOptionSets[i]
		if set.Scope == models.OptionScopeItem && set.ItemNumber == itemNumber {
			return Resolution{Options: set.Options, Scope: models.OptionScopeItem}
		}
	}

	if item, ok := def.ItemByNumber(itemNumber); ok && item.ResponseGroupTag != "" {
		for i := range def.ResponseOptionSets {
			set := &def.ResponseOptionSets[i]
			if set.Scope == models.OptionScopeGroup && set.GroupTag == item.ResponseGroupTag {
				return Resolution{Options: set.Options, Scope: models.OptionScopeGroup}
			}
		}
	}

	for i := range def.ResponseOptionSets {
		set := &def.ResponseOptionSets[i]
		if set.Scope == models.OptionScopeGlobal {
			return Resolution{Options: set.Options, Scope: models.OptionScopeGlobal}
		}
	}

	options := make([]models.ResponseOption, len(defaultOptionLabels))
	for i, label := range defaultOptionLabels {
		options[i] = models.ResponseOption{
			Value: strconv.Itoa(i),
			Label: label,
			Score: float64(i),
		}
	}
	return Resolution{Options: options, Scope: models.OptionScopeGlobal, Synthesized: true}
}

// MaxOptionScore returns the highest score in an option set. Reverse scoring
// inverts against this value, so it must always be the item's own resolved
// range, never the instrument's global range.
func MaxOptionScore(options []models.ResponseOption) float64 {
	var max float64
	for i, option := range options {
		if i == 0 || option.Score > max {
			max = option.Score
		}
	}
	return max
}

// NormalizeResponse maps a raw value onto the resolved option set and returns
// the option's numeric score. Numbers compare numerically, strings compare as
// trimmed strings, and numeric strings match numeric option values.
func NormalizeResponse(itemNumber int, options []models.ResponseOption, rawValue interface{}) (float64, error) {
	canonical, numeric, isNumeric := canonicalizeRaw(rawValue)

	for _, option := range options {
		if option.Value == canonical {
			return option.Score, nil
		}
		if isNumeric {
			if optionNumeric, err := strconv.ParseFloat(option.Value, 64); err == nil && optionNumeric == numeric {
				return option.Score, nil
			}
		}
	}
	return 0, &InvalidResponseValueError{ItemNumber: itemNumber, RawValue: rawValue}
}

func canonicalizeRaw(rawValue interface{}) (canonical string, numeric float64, isNumeric bool) {
	switch value := rawValue.(type) {
	case string:
		trimmed := strings.TrimSpace(value)
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return trimmed, parsed, true
		}
		return trimmed, 0, false
	case float64:
		return formatNumber(value), value, true
	case float32:
		return formatNumber(float64(value)), float64(value), true
	case int:
		return strconv.Itoa(value), float64(value), true
	case int64:
		return strconv.FormatInt(value, 10), float64(value), true
	default:
		return fmt.Sprintf("%v", rawValue), 0, false
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
