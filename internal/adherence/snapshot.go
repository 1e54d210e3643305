package adherence

import (
	"time"

	"github.com/calumwright/praxis/internal/category"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

// SnapshotInput carries the configuration a record-time match depends on.
// Like the engine, everything is threaded explicitly.
type SnapshotInput struct {
	StartedAt           string // RFC3339
	PracticeID          string
	PracticeMode        string
	PrecisionMode       models.PrecisionMode
	VacationActive      bool
	CurriculumStartDate string
	TimeSlots           []string
	Curriculum          CurriculumLookup
	Location            *time.Location
}

// ComputeScheduleMatchSnapshot computes the deterministic best-leg match
// for a session at record time, so later rail queries can use it without
// recomputing. Among legs within the match window the smallest absolute
// delta wins; ties go to the lower leg number. Returns nil when the session
// satisfies no leg, or when obligation tracking is suspended (advanced
// mode, vacation, no curriculum anchor).
func ComputeScheduleMatchSnapshot(in SnapshotInput) *models.ScheduleMatch {
	if in.StartedAt == "" {
		return nil
	}
	if in.PrecisionMode == models.PrecisionAdvanced || in.VacationActive {
		return nil
	}
	if in.CurriculumStartDate == "" || in.Curriculum == nil {
		return nil
	}

	loc := in.Location
	if loc == nil {
		loc = time.Local
	}

	started, err := time.Parse(time.RFC3339, in.StartedAt)
	if err != nil {
		return nil
	}
	started = started.In(loc)

	dayNumber := curriculumDayNumber(utils.DateKey(started), in.CurriculumStartDate, loc)
	if dayNumber == 0 {
		return nil
	}
	currDay := in.Curriculum(dayNumber)
	if currDay == nil {
		return nil
	}
	requiredLegs := currDay.RequiredLegs()
	if len(requiredLegs) == 0 {
		return nil
	}

	sessionCategory := category.Resolve(&models.Session{
		PracticeID:   in.PracticeID,
		PracticeMode: in.PracticeMode,
	})
	if sessionCategory == "" {
		return nil
	}

	actualMinutes := utils.MinutesOfDay(started)

	var best *models.ScheduleMatch
	bestAbs := 0
	for _, leg := range requiredLegs {
		timeIndex := leg.LegNumber - 1
		if timeIndex < 0 || timeIndex >= len(in.TimeSlots) {
			continue
		}
		scheduledTime := in.TimeSlots[timeIndex]
		scheduledMinutes, err := utils.ParseTimeToMinutes(scheduledTime)
		if err != nil {
			continue
		}

		if leg.CategoryID != sessionCategory {
			continue
		}
		if leg.MatchPolicy == models.MatchExactPractice {
			if leg.PracticeID == "" || in.PracticeID != leg.PracticeID {
				continue
			}
		}

		deltaMin := actualMinutes - scheduledMinutes
		status := deltaStatus(deltaMin)
		if status == "" {
			continue
		}

		// Legs iterate in order, so a strict comparison keeps the lower
		// leg number on ties.
		if best == nil || absInt(deltaMin) < bestAbs {
			bestAbs = absInt(deltaMin)
			best = &models.ScheduleMatch{
				LegNumber:     leg.LegNumber,
				CategoryID:    leg.CategoryID,
				MatchPolicy:   leg.MatchPolicy,
				ScheduledTime: scheduledTime,
				DeltaMinutes:  deltaMin,
				Status:        status,
				MatchedAt:     in.StartedAt,
			}
		}
	}

	return best
}
