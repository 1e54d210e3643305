// Package curriculum holds the built-in practice programs and the path
// catalog. Curriculum days are definition data only; all adherence
// semantics live in the adherence package.
package curriculum

import "github.com/calumwright/praxis/internal/models"

type dayCopy struct {
	title       string
	intention   string
	narrative   string
	isBenchmark bool
}

// The 14-day Initiation program: two legs every day, a morning breath
// practice and an evening circuit, with benchmark measurements bracketing
// the contract on days 1 and 14.
var initiationDayCopy = []dayCopy{
	{title: "Threshold", intention: "I keep my word to begin.",
		narrative: "Today establishes the contract. You measure your current breath capacity, then complete the evening circuit without bargaining.", isBenchmark: true},
	{title: "Stability", intention: "I return at the appointed hour.",
		narrative: "Repetition builds reliability. Keep both sessions simple, clean, and on schedule."},
	{title: "Containment", intention: "I stay inside the practice.",
		narrative: "Notice the impulse to drift. Hold attention in the structure you committed to."},
	{title: "Witness", intention: "I observe before I react.",
		narrative: "The morning breath steadies the system. The evening sequence trains precise observation."},
	{title: "Rhythm", intention: "I honor cadence over mood.",
		narrative: "A contract survives changing emotion. Continue both legs whether the day feels easy or heavy."},
	{title: "Depth", intention: "I move from effort to consistency.",
		narrative: "Less forcing, more continuity. Let clean repetition do the work."},
	{title: "Week One Seal", intention: "I complete what I started.",
		narrative: "Close week one with full adherence. You are proving execution, not collecting motivation."},
	{title: "Renewal", intention: "I recommit without drama.",
		narrative: "Second week starts with the same standard. Protect the schedule and execute both legs."},
	{title: "Precision", intention: "I make each session deliberate.",
		narrative: "Attend to posture, breath quality, and transitions. Keep the practice exact and repeatable."},
	{title: "Clarity", intention: "I choose clean attention.",
		narrative: "Distraction is expected. Returning is the practice."},
	{title: "Pressure Test", intention: "I keep the contract under strain.",
		narrative: "External friction is not an exception. Keep both slots and finish what is required."},
	{title: "Refinement", intention: "I remove unnecessary movement.",
		narrative: "Simplify execution. Fewer adjustments, stronger follow-through."},
	{title: "Consolidation", intention: "I hold the line to the end.",
		narrative: "One day before close, keep discipline identical to day one."},
	{title: "Completion", intention: "I finish in full alignment.",
		narrative: "You re-run the benchmark and compare against day one. Completion is measured by fidelity to the contract.", isBenchmark: true},
}

func buildInitiationDays() []models.CurriculumDay {
	days := make([]models.CurriculumDay, 0, len(initiationDayCopy))
	for i, dc := range initiationDayCopy {
		dayNumber := i + 1
		days = append(days, models.CurriculumDay{
			DayNumber:   dayNumber,
			Title:       dc.title,
			Subtitle:    subtitle(dayNumber, len(initiationDayCopy)),
			Intention:   dc.intention,
			Narrative:   dc.narrative,
			IsBenchmark: dc.isBenchmark,
			Legs: []models.Leg{
				{
					LegNumber:   1,
					Label:       "Morning Breath Practice",
					CategoryID:  models.CategoryBreathwork,
					MatchPolicy: models.MatchAnyInCategory,
					Required:    true,
				},
				{
					LegNumber:   2,
					Label:       "Evening Circuit",
					CategoryID:  models.CategoryCircuitTraining,
					MatchPolicy: models.MatchAnyInCategory,
					Required:    true,
				},
			},
		})
	}
	return days
}
