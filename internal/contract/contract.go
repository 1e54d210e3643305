// Package contract derives and enforces the structural commitments of a
// practice path: total days, obligations per day, and time-slot counts.
// Malformed optional input degrades to "unconstrained" (nil); only
// structurally contradictory configuration is an error, and that is caught
// downstream by validation and the adherence engine.
package contract

import (
	"github.com/calumwright/praxis/internal/models"
)

// Contract is the normalized constraint set governing a path. A nil field
// means unconstrained.
type Contract struct {
	TotalDays           *int
	PracticeDaysPerWeek *int
	RequiredLegsPerDay  *int
	MaxLegsPerDay       *int
	RequiredTimeSlots   *int
}

func positiveInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func firstSet(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// Resolve derives a path's contract. Per field, first non-nil wins:
// explicit contract block, then legacy shorthand, then nil. No errors are
// raised here; constraint enforcement happens downstream.
func Resolve(path *models.Path) Contract {
	if path == nil {
		return Contract{}
	}

	spec := models.ContractSpec{}
	if path.Contract != nil {
		spec = *path.Contract
	}

	var trackingDays *int
	if path.Tracking != nil {
		trackingDays = positiveInt(path.Tracking.DurationDays)
	}
	var weeksDays *int
	if path.DurationWeeks > 0 {
		weeksDays = positiveInt(path.DurationWeeks * 7)
	}
	totalDays := firstSet(positiveInt(spec.TotalDays), trackingDays, weeksDays)

	var selectionRequired, selectionMax *int
	if path.ScheduleSelection != nil {
		selectionRequired = positiveInt(path.ScheduleSelection.RequiredCount)
		selectionMax = positiveInt(path.ScheduleSelection.MaxCount)
	}

	requiredTimeSlots := firstSet(positiveInt(spec.RequiredTimeSlots), selectionRequired)
	requiredLegsPerDay := firstSet(positiveInt(spec.RequiredLegsPerDay), requiredTimeSlots)
	maxLegsPerDay := firstSet(positiveInt(spec.MaxLegsPerDay), selectionMax, requiredLegsPerDay)

	return Contract{
		TotalDays:           totalDays,
		PracticeDaysPerWeek: positiveInt(spec.PracticeDaysPerWeek),
		RequiredLegsPerDay:  requiredLegsPerDay,
		MaxLegsPerDay:       maxLegsPerDay,
		RequiredTimeSlots:   requiredTimeSlots,
	}
}

// Inconsistent reports whether the contract can never be satisfied:
// more required legs than the daily maximum allows. This is a
// configuration authoring bug, not a user error.
func (c Contract) Inconsistent() bool {
	return c.RequiredLegsPerDay != nil && c.MaxLegsPerDay != nil &&
		*c.RequiredLegsPerDay > *c.MaxLegsPerDay
}
