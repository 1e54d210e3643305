package curriculum

import (
	"fmt"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/models"
)

// Program is a named curriculum: an ordered span of days.
type Program struct {
	ID   string
	Name string
	days []models.CurriculumDay
}

// TotalDays is the program's defined span.
func (p *Program) TotalDays() int {
	return len(p.days)
}

// Day returns the curriculum day for a 1-based day number, nil outside the
// program's span.
func (p *Program) Day(dayNumber int) *models.CurriculumDay {
	if dayNumber < 1 || dayNumber > len(p.days) {
		return nil
	}
	day := p.days[dayNumber-1]
	return &day
}

// Lookup adapts the program to the engine's curriculum lookup.
func (p *Program) Lookup() adherence.CurriculumLookup {
	return p.Day
}

var programs = map[string]*Program{
	"initiation-14-v2": {ID: "initiation-14-v2", Name: "Initiation", days: buildInitiationDays()},
	"foundation-14":    {ID: "foundation-14", Name: "Foundation", days: buildFoundationDays()},
}

// ProgramByID returns a built-in program.
func ProgramByID(id string) (*Program, error) {
	p, ok := programs[id]
	if !ok {
		return nil, fmt.Errorf("unknown curriculum %q", id)
	}
	return p, nil
}

func subtitle(dayNumber, total int) string {
	return fmt.Sprintf("Day %d of %d", dayNumber, total)
}

// Paths is the built-in path catalog. Contract blocks, legacy shorthand
// fields, and selection constraints intentionally vary so the resolver's
// derivation chain is exercised by real definitions.
var Paths = []models.Path{
	{
		ID:      "initiation-2",
		Name:    "Initiation Path 2",
		Tagline: "Fourteen days, two legs, no bargaining",
		Contract: &models.ContractSpec{
			TotalDays:           14,
			PracticeDaysPerWeek: 6,
			RequiredLegsPerDay:  2,
			MaxLegsPerDay:       2,
			RequiredTimeSlots:   2,
		},
		RequiresBenchmark: true,
		CurriculumID:      "initiation-14-v2",
	},
	{
		ID:      "foundation",
		Name:    "Foundation Path",
		Tagline: "One clean morning practice, daily",
		Tracking: &models.Tracking{
			DurationDays: 14,
		},
		ScheduleSelection: &models.ScheduleSelection{
			RequiredCount: 1,
		},
		CurriculumID: "foundation-14",
	},
	{
		ID:            "consistency",
		Name:          "Build Consistency",
		Tagline:       "Small daily wins compound",
		DurationWeeks: 6,
		ScheduleSelection: &models.ScheduleSelection{
			MinCount: 1,
			MaxCount: 3,
		},
		CurriculumID: "foundation-14",
	},
	{
		ID:      "open-practice",
		Name:    "Open Practice",
		Tagline: "No schedule, no contract",
		Simple:  true,
	},
}

// PathByID returns a catalog path, nil when the id is unknown.
func PathByID(id string) *models.Path {
	for i := range Paths {
		if Paths[i].ID == id {
			return &Paths[i]
		}
	}
	return nil
}
