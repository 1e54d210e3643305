package models

// CategoryID is one of the closed set of practice categories a session can
// resolve to.
type CategoryID string

const (
	CategoryBreathwork      CategoryID = "breathwork"
	CategoryAwareness       CategoryID = "awareness"
	CategoryBodyScan        CategoryID = "body_scan"
	CategoryVisualization   CategoryID = "visualization"
	CategorySound           CategoryID = "sound"
	CategoryRitual          CategoryID = "ritual"
	CategoryWisdom          CategoryID = "wisdom"
	CategoryCircuitTraining CategoryID = "circuit_training"
)

// MatchPolicy controls how strictly a session must match a leg.
type MatchPolicy string

const (
	// MatchExactPractice requires the session's practice identity to equal
	// the leg's PracticeID, in addition to the category.
	MatchExactPractice MatchPolicy = "exact_practice"

	// MatchAnyInCategory accepts any session resolving to the leg's category.
	MatchAnyInCategory MatchPolicy = "any_in_category"
)

// Leg is one daily obligation within a curriculum day. LegNumber is 1-based
// and doubles as the index into the user's chosen time-of-day slots.
type Leg struct {
	LegNumber   int         `json:"leg_number"`
	Label       string      `json:"label,omitempty"`
	CategoryID  CategoryID  `json:"category_id"`
	MatchPolicy MatchPolicy `json:"match_policy"`
	PracticeID  string      `json:"practice_id,omitempty"` // for exact_practice
	Required    bool        `json:"required"`
}

// CurriculumDay is one day of a path's curriculum, identified by a 1-based
// day number offset from the contract start date.
type CurriculumDay struct {
	DayNumber   int    `json:"day_number"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Intention   string `json:"intention,omitempty"`
	Narrative   string `json:"narrative,omitempty"`
	IsBenchmark bool   `json:"is_benchmark,omitempty"`
	Legs        []Leg  `json:"legs"`
}

// RequiredLegs returns the legs that generate obligations, in order.
func (d CurriculumDay) RequiredLegs() []Leg {
	var legs []Leg
	for _, leg := range d.Legs {
		if leg.Required {
			legs = append(legs, leg)
		}
	}
	return legs
}
