package contract

import (
	"fmt"
	"strings"

	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/models"
)

// SlotConstraint is a normalized time-slot count constraint. A nil
// constraint means "no constraint": always valid.
type SlotConstraint struct {
	RequiredCount *int
	MinCount      *int
	MaxCount      *int
	ErrorMessage  string
}

// Result is a user-facing validation outcome. Failures are values, never
// errors, so UI layers can render them inline.
type Result struct {
	OK    bool
	Error string
}

func ok() Result {
	return Result{OK: true}
}

func fail(msg string) Result {
	return Result{OK: false, Error: msg}
}

func pluralize(count int, singular string) string {
	if count == 1 {
		return singular
	}
	return singular + "s"
}

func defaultConstraintError(c SlotConstraint) string {
	switch {
	case c.RequiredCount != nil:
		n := *c.RequiredCount
		return fmt.Sprintf("Please select exactly %d %s to begin this path.", n, pluralize(n, "time slot"))
	case c.MinCount != nil && c.MaxCount != nil && *c.MinCount == *c.MaxCount:
		n := *c.MinCount
		return fmt.Sprintf("Please select exactly %d %s to begin this path.", n, pluralize(n, "time slot"))
	case c.MinCount != nil && c.MaxCount != nil:
		return fmt.Sprintf("Please select between %d and %d %s to begin this path.",
			*c.MinCount, *c.MaxCount, pluralize(*c.MaxCount, "time slot"))
	case c.MinCount != nil:
		n := *c.MinCount
		return fmt.Sprintf("Please select at least %d %s to begin this path.", n, pluralize(n, "time slot"))
	case c.MaxCount != nil:
		n := *c.MaxCount
		return fmt.Sprintf("Please select at most %d %s to begin this path.", n, pluralize(n, "time slot"))
	}
	return ""
}

// NormalizeConstraint canonicalizes a raw slot-count constraint. When
// includeDefault is set, absent bounds fall back to the default window
// (min 1 / max 3); otherwise an empty constraint normalizes to nil,
// meaning always-valid. A required count forces min=max=required.
func NormalizeConstraint(raw *models.ScheduleSelection, includeDefault bool) *SlotConstraint {
	if raw == nil && !includeDefault {
		return nil
	}

	var requiredCount, minCount, maxCount *int
	errorMessage := ""
	if raw != nil {
		requiredCount = positiveInt(raw.RequiredCount)
		minCount = positiveInt(raw.MinCount)
		maxCount = positiveInt(raw.MaxCount)
		errorMessage = raw.ErrorMessage
	}

	if requiredCount != nil {
		// Required implies min=max=required; a lower declared max is widened
		// rather than making the constraint unsatisfiable.
		if maxCount == nil || *maxCount < *requiredCount {
			maxCount = requiredCount
		}
		minCount = requiredCount
	} else if minCount == nil && includeDefault {
		d := constants.DefaultMinTimeSlots
		minCount = &d
	}

	if maxCount == nil && includeDefault {
		d := constants.DefaultMaxTimeSlots
		maxCount = &d
	}

	if requiredCount == nil && minCount == nil && maxCount == nil {
		return nil
	}

	return &SlotConstraint{
		RequiredCount: requiredCount,
		MinCount:      minCount,
		MaxCount:      maxCount,
		ErrorMessage:  errorMessage,
	}
}

// ConstraintForPath returns the slot constraint governing a path's schedule
// selection, merged from the path's selection block and its contract.
// Simple paths have no constraint (nil: always valid).
func ConstraintForPath(path *models.Path) *SlotConstraint {
	if path == nil || path.Simple {
		return nil
	}

	merged := models.ScheduleSelection{}
	if path.ScheduleSelection != nil {
		merged = *path.ScheduleSelection
	}

	c := Resolve(path)
	if c.RequiredTimeSlots != nil {
		merged.RequiredCount = *c.RequiredTimeSlots
	}
	if c.MaxLegsPerDay != nil {
		merged.MaxCount = *c.MaxLegsPerDay
	}

	return NormalizeConstraint(&merged, true)
}

// ValidateSelectedTimes checks a candidate slot selection against a
// constraint. Blank entries are ignored. A nil constraint is always valid.
func ValidateSelectedTimes(selectedTimes []string, constraint *SlotConstraint) Result {
	if constraint == nil {
		return ok()
	}

	count := 0
	for _, t := range selectedTimes {
		if strings.TrimSpace(t) != "" {
			count++
		}
	}

	errText := constraint.ErrorMessage
	if errText == "" {
		errText = defaultConstraintError(*constraint)
	}

	if constraint.RequiredCount != nil && count != *constraint.RequiredCount {
		return fail(errText)
	}
	if constraint.MinCount != nil && count < *constraint.MinCount {
		return fail(errText)
	}
	if constraint.MaxCount != nil && count > *constraint.MaxCount {
		return fail(errText)
	}

	return ok()
}

// CanToggleTime reports whether adding up to the candidate selection is
// permitted, enforcing only the upper bound so users can build toward the
// required count incrementally.
func CanToggleTime(nextSelectedTimes []string, constraint *SlotConstraint) bool {
	if constraint == nil || constraint.MaxCount == nil {
		return true
	}
	return len(nextSelectedTimes) <= *constraint.MaxCount
}
