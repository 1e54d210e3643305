package curriculum

import (
	"testing"

	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/models"
)

func TestProgramByID(t *testing.T) {
	t.Run("known program", func(t *testing.T) {
		p, err := ProgramByID("initiation-14-v2")
		if err != nil {
			t.Fatalf("ProgramByID failed: %v", err)
		}
		if p.TotalDays() != 14 {
			t.Errorf("TotalDays = %d, want 14", p.TotalDays())
		}
	})

	t.Run("unknown program", func(t *testing.T) {
		if _, err := ProgramByID("nope"); err == nil {
			t.Fatal("expected error for an unknown id")
		}
	})
}

func TestProgramDayBounds(t *testing.T) {
	p, err := ProgramByID("foundation-14")
	if err != nil {
		t.Fatalf("ProgramByID failed: %v", err)
	}

	if p.Day(0) != nil {
		t.Error("day 0 should be nil")
	}
	if p.Day(15) != nil {
		t.Error("day past the span should be nil")
	}
	if got := p.Day(1); got == nil || got.DayNumber != 1 {
		t.Errorf("Day(1) = %+v", got)
	}

	// Day returns a copy; mutating it must not leak into the program.
	d := p.Day(1)
	d.Legs = nil
	if again := p.Day(1); len(again.Legs) == 0 {
		t.Error("Day leaked a mutable reference to program state")
	}
}

func TestInitiationProgramShape(t *testing.T) {
	p, err := ProgramByID("initiation-14-v2")
	if err != nil {
		t.Fatalf("ProgramByID failed: %v", err)
	}

	for dayNumber := 1; dayNumber <= 14; dayNumber++ {
		day := p.Day(dayNumber)
		required := day.RequiredLegs()
		if len(required) != 2 {
			t.Fatalf("day %d: %d required legs, want 2", dayNumber, len(required))
		}
		if required[0].CategoryID != models.CategoryBreathwork {
			t.Errorf("day %d leg 1 category = %q", dayNumber, required[0].CategoryID)
		}
		if required[1].CategoryID != models.CategoryCircuitTraining {
			t.Errorf("day %d leg 2 category = %q", dayNumber, required[1].CategoryID)
		}
		if required[0].LegNumber != 1 || required[1].LegNumber != 2 {
			t.Errorf("day %d leg numbers = %d,%d", dayNumber, required[0].LegNumber, required[1].LegNumber)
		}
	}
}

func TestFoundationRestDays(t *testing.T) {
	p, err := ProgramByID("foundation-14")
	if err != nil {
		t.Fatalf("ProgramByID failed: %v", err)
	}

	for dayNumber := 1; dayNumber <= 14; dayNumber++ {
		required := p.Day(dayNumber).RequiredLegs()
		if dayNumber%7 == 0 {
			if len(required) != 0 {
				t.Errorf("rest day %d has %d required legs", dayNumber, len(required))
			}
		} else if len(required) != 1 {
			t.Errorf("day %d has %d required legs, want 1", dayNumber, len(required))
		}
	}
}

func TestPathByID(t *testing.T) {
	if PathByID("missing") != nil {
		t.Error("expected nil for an unknown path")
	}

	path := PathByID("initiation-2")
	if path == nil {
		t.Fatal("initiation-2 missing from the catalog")
	}
	if !path.RequiresBenchmark {
		t.Error("initiation-2 should require a benchmark")
	}

	c := contract.Resolve(path)
	checks := []struct {
		name string
		got  *int
		want int
	}{
		{"TotalDays", c.TotalDays, 14},
		{"PracticeDaysPerWeek", c.PracticeDaysPerWeek, 6},
		{"RequiredLegsPerDay", c.RequiredLegsPerDay, 2},
		{"MaxLegsPerDay", c.MaxLegsPerDay, 2},
		{"RequiredTimeSlots", c.RequiredTimeSlots, 2},
	}
	for _, check := range checks {
		if check.got == nil || *check.got != check.want {
			t.Errorf("%s = %v, want %d", check.name, check.got, check.want)
		}
	}
}

func TestCatalogCurriculaResolve(t *testing.T) {
	for _, path := range Paths {
		if path.CurriculumID == "" {
			continue
		}
		p, err := ProgramByID(path.CurriculumID)
		if err != nil {
			t.Errorf("path %s references missing curriculum: %v", path.ID, err)
			continue
		}
		c := contract.Resolve(&path)
		if c.MaxLegsPerDay == nil {
			continue
		}
		for dayNumber := 1; dayNumber <= p.TotalDays(); dayNumber++ {
			if got := len(p.Day(dayNumber).RequiredLegs()); got > *c.MaxLegsPerDay {
				t.Errorf("path %s day %d: %d required legs exceeds contract max %d",
					path.ID, dayNumber, got, *c.MaxLegsPerDay)
			}
		}
	}
}
