package contract

import (
	"testing"

	"github.com/calumwright/praxis/internal/models"
)

func eqPtr(t *testing.T, name string, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %d", name, want)
	}
	if *got != want {
		t.Errorf("%s = %d, want %d", name, *got, want)
	}
}

func nilPtr(t *testing.T, name string, got *int) {
	t.Helper()
	if got != nil {
		t.Errorf("%s = %d, want nil", name, *got)
	}
}

func TestResolve(t *testing.T) {
	t.Run("nil path is unconstrained", func(t *testing.T) {
		c := Resolve(nil)
		if c != (Contract{}) {
			t.Errorf("expected zero contract, got %+v", c)
		}
	})

	t.Run("explicit contract block wins", func(t *testing.T) {
		path := &models.Path{
			DurationWeeks: 6,
			Tracking:      &models.Tracking{DurationDays: 30},
			Contract: &models.ContractSpec{
				TotalDays:           14,
				PracticeDaysPerWeek: 6,
				RequiredLegsPerDay:  2,
				MaxLegsPerDay:       2,
				RequiredTimeSlots:   2,
			},
		}
		c := Resolve(path)
		eqPtr(t, "TotalDays", c.TotalDays, 14)
		eqPtr(t, "PracticeDaysPerWeek", c.PracticeDaysPerWeek, 6)
		eqPtr(t, "RequiredLegsPerDay", c.RequiredLegsPerDay, 2)
		eqPtr(t, "MaxLegsPerDay", c.MaxLegsPerDay, 2)
		eqPtr(t, "RequiredTimeSlots", c.RequiredTimeSlots, 2)
	})

	t.Run("tracking days beat duration weeks", func(t *testing.T) {
		path := &models.Path{
			DurationWeeks: 6,
			Tracking:      &models.Tracking{DurationDays: 14},
		}
		eqPtr(t, "TotalDays", Resolve(path).TotalDays, 14)
	})

	t.Run("duration weeks convert to days", func(t *testing.T) {
		path := &models.Path{DurationWeeks: 6}
		eqPtr(t, "TotalDays", Resolve(path).TotalDays, 42)
	})

	t.Run("selection required count feeds the slot chain", func(t *testing.T) {
		path := &models.Path{
			ScheduleSelection: &models.ScheduleSelection{RequiredCount: 1},
		}
		c := Resolve(path)
		eqPtr(t, "RequiredTimeSlots", c.RequiredTimeSlots, 1)
		eqPtr(t, "RequiredLegsPerDay", c.RequiredLegsPerDay, 1)
		eqPtr(t, "MaxLegsPerDay", c.MaxLegsPerDay, 1)
	})

	t.Run("selection max beats required legs fallback", func(t *testing.T) {
		path := &models.Path{
			ScheduleSelection: &models.ScheduleSelection{RequiredCount: 1, MaxCount: 3},
		}
		c := Resolve(path)
		eqPtr(t, "RequiredLegsPerDay", c.RequiredLegsPerDay, 1)
		eqPtr(t, "MaxLegsPerDay", c.MaxLegsPerDay, 3)
	})

	t.Run("zero and negative values normalize to nil", func(t *testing.T) {
		path := &models.Path{
			Contract: &models.ContractSpec{TotalDays: 0, PracticeDaysPerWeek: -3},
			Tracking: &models.Tracking{DurationDays: -1},
		}
		c := Resolve(path)
		nilPtr(t, "TotalDays", c.TotalDays)
		nilPtr(t, "PracticeDaysPerWeek", c.PracticeDaysPerWeek)
		nilPtr(t, "RequiredLegsPerDay", c.RequiredLegsPerDay)
		nilPtr(t, "MaxLegsPerDay", c.MaxLegsPerDay)
	})
}

func TestInconsistent(t *testing.T) {
	two, three := 2, 3

	if (Contract{}).Inconsistent() {
		t.Error("unconstrained contract flagged inconsistent")
	}
	if (Contract{RequiredLegsPerDay: &two, MaxLegsPerDay: &three}).Inconsistent() {
		t.Error("required below max flagged inconsistent")
	}
	if (Contract{RequiredLegsPerDay: &two, MaxLegsPerDay: &two}).Inconsistent() {
		t.Error("required equal to max flagged inconsistent")
	}
	if !(Contract{RequiredLegsPerDay: &three, MaxLegsPerDay: &two}).Inconsistent() {
		t.Error("required above max not flagged")
	}
	if (Contract{RequiredLegsPerDay: &three}).Inconsistent() {
		t.Error("missing max flagged inconsistent")
	}
}
