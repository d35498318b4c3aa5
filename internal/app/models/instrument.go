package models

type ResponseOptionScope string

const (
	OptionScopeGlobal ResponseOptionScope = "global"
	OptionScopeGroup  ResponseOptionScope = "group"
	OptionScopeItem   ResponseOptionScope = "item"
)

type ScoreRange struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

type ResponseOption struct {
	Value string  `json:"value" bson:"value"`
	Label string  `json:"label" bson:"label"`
	Score float64 `json:"score" bson:"score"`
}

// ResponseOptionSet binds a list of options to one of three scopes: the whole
// instrument, every item sharing a group tag, or exactly one item number.
type ResponseOptionSet struct {
	Scope      ResponseOptionScope `json:"scope" bson:"scope"`
	GroupTag   string              `json:"groupTag,omitempty" bson:"groupTag,omitempty"`
	ItemNumber int                 `json:"itemNumber,omitempty" bson:"itemNumber,omitempty"`
	Options    []ResponseOption    `json:"options" bson:"options"`
}

type Item struct {
	Number           int    `json:"number" bson:"number"`
	Text             string `json:"text" bson:"text"`
	SubscaleTag      string `json:"subscaleTag,omitempty" bson:"subscaleTag,omitempty"`
	ResponseGroupTag string `json:"responseGroupTag,omitempty" bson:"responseGroupTag,omitempty"`
	ReverseScored    bool   `json:"reverseScored,omitempty" bson:"reverseScored,omitempty"`
	Required         bool   `json:"required,omitempty" bson:"required,omitempty"`
}

type Subscale struct {
	ID                string     `json:"id" bson:"id"`
	Name              string     `json:"name" bson:"name"`
	MemberItemNumbers []int      `json:"memberItemNumbers" bson:"memberItemNumbers"`
	ScoreRange        ScoreRange `json:"scoreRange" bson:"scoreRange"`
}

// InterpretationBand maps an inclusive score range to a severity label. An
// empty Subscale targets the total score.
type InterpretationBand struct {
	Subscale        string   `json:"subscale,omitempty" bson:"subscale,omitempty"`
	MinScore        float64  `json:"minScore" bson:"minScore"`
	MaxScore        float64  `json:"maxScore" bson:"maxScore"`
	Severity        string   `json:"severity" bson:"severity" validate:"omitempty,severity"`
	Label           string   `json:"label" bson:"label"`
	Color           string   `json:"color,omitempty" bson:"color,omitempty"`
	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
	Recommendations []string `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
}

// AlertRule flags a single item's pre-reverse score as clinically significant
// once it reaches MinScore, regardless of overall completion.
type AlertRule struct {
	ItemNumber int     `json:"itemNumber" bson:"itemNumber"`
	MinScore   float64 `json:"minScore" bson:"minScore"`
	Severity   string  `json:"severity" bson:"severity" validate:"omitempty,severity"`
	Message    string  `json:"message" bson:"message"`
}

type NormativeData struct {
	Mean              float64 `json:"mean" bson:"mean"`
	StandardDeviation float64 `json:"standardDeviation" bson:"standardDeviation"`
	SampleSize        int     `json:"sampleSize,omitempty" bson:"sampleSize,omitempty"`
	DemographicGroup  string  `json:"demographicGroup,omitempty" bson:"demographicGroup,omitempty"`
}

// InstrumentDefinition is the declarative description of one scale version.
// Version is part of identity: the same instrument may exist with different
// item counts under different versions.
type InstrumentDefinition struct {
	ID                  string               `json:"id" bson:"instrumentId"`
	Name                string               `json:"name" bson:"name"`
	Abbreviation        string               `json:"abbreviation" bson:"abbreviation"`
	Version             string               `json:"version" bson:"version"`
	ItemCount           int                  `json:"itemCount" bson:"itemCount"`
	ScoreRange          ScoreRange           `json:"scoreRange" bson:"scoreRange"`
	ScoringMethod       string               `json:"scoringMethod" bson:"scoringMethod"`
	Items               []Item               `json:"items" bson:"items"`
	ResponseOptionSets  []ResponseOptionSet  `json:"responseOptionSets,omitempty" bson:"responseOptionSets,omitempty"`
	Subscales           []Subscale           `json:"subscales,omitempty" bson:"subscales,omitempty"`
	InterpretationBands []InterpretationBand `json:"interpretationBands,omitempty" bson:"interpretationBands,omitempty"`
	AlertRules          []AlertRule          `json:"alertRules,omitempty" bson:"alertRules,omitempty"`
	Norms               *NormativeData       `json:"norms,omitempty" bson:"norms,omitempty"`
}

const ScoringMethodSum = "sum"

func (d *InstrumentDefinition) ItemByNumber(number int) (*Item, bool) {
	for i := range d.Items {
		if d.Items[i].Number == number {
			return &d.Items[i], true
		}
	}
	return nil, false
}

func (d *InstrumentDefinition) SubscaleByID(subscaleID string) (*Subscale, bool) {
	for i := range d.Subscales {
		if d.Subscales[i].ID == subscaleID {
			return &d.Subscales[i], true
		}
	}
	return nil, false
}
