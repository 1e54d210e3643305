package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/logger"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

type RecordCmd struct {
	Practice  string `arg:"" help:"Practice ID, e.g. breath-box or circuit-standard."`
	Mode      string `help:"Practice mode tag."`
	Type      string `help:"Practice type from the session configuration."`
	At        string `help:"Start time as RFC3339 or HH:MM today (default: now)."`
	Abandoned bool   `help:"Record the session as abandoned instead of completed."`
}

func (c *RecordCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	startedAt, err := resolveStartTime(c.At, loc)
	if err != nil {
		return err
	}

	completion := models.CompletionCompleted
	if c.Abandoned {
		completion = models.CompletionAbandoned
	}

	session := models.Session{
		ID:           uuid.New().String(),
		Completion:   completion,
		StartedAt:    startedAt.Format(time.RFC3339),
		PracticeID:   c.Practice,
		PracticeMode: c.Mode,
		CreatedAt:    time.Now(),
	}
	if c.Type != "" {
		session.ConfigSnapshot = &models.ConfigSnapshot{PracticeType: c.Type}
	}

	// Completed sessions get their schedule match pinned at record time so
	// later rail queries see a stable verdict. Abandoned sessions and
	// suspended tracking record nothing.
	if completion == models.CompletionCompleted && trackingActive(settings) {
		snapIn := adherence.SnapshotInput{
			StartedAt:           session.StartedAt,
			PracticeID:          session.PracticeID,
			PracticeMode:        session.PracticeMode,
			PrecisionMode:       settings.PrecisionMode,
			VacationActive:      settings.VacationActive,
			CurriculumStartDate: settings.CurriculumStartDate,
			TimeSlots:           settings.PracticeTimeSlots,
			Location:            loc,
		}
		if state, err := ctx.LoadActivePathState(); err == nil && state.Program != nil {
			snapIn.Curriculum = state.Program.Lookup()
		}
		if snapIn.Curriculum != nil {
			session.ScheduleMatched = adherence.ComputeScheduleMatchSnapshot(snapIn)
			satisfied := session.ScheduleMatched != nil
			session.SatisfiedObligation = &satisfied
		}
	}

	if err := ctx.Store.AddSession(session); err != nil {
		return err
	}

	logger.Info("Session recorded", "session", session.ID, "practice", session.PracticeID)
	fmt.Printf("Recorded %s session: %s\n", completion, c.Practice)
	if session.ScheduleMatched != nil {
		match := session.ScheduleMatched
		fmt.Printf("Matched leg %d (%s) at %s, %+d min, %s\n",
			match.LegNumber, match.CategoryID, match.ScheduledTime, match.DeltaMinutes, match.Status)
	}
	return nil
}

func trackingActive(settings models.Settings) bool {
	return settings.PrecisionMode != models.PrecisionAdvanced &&
		!settings.VacationActive &&
		settings.CurriculumStartDate != ""
}

func resolveStartTime(at string, loc *time.Location) (time.Time, error) {
	if at == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t.In(loc), nil
	}
	if utils.ValidateTimeFormat(at) {
		minutes, err := utils.ParseTimeToMinutes(at)
		if err != nil {
			return time.Time{}, err
		}
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), minutes/60, minutes%60, 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid start time %q (expected RFC3339 or HH:MM)", at)
}
