package cli

import (
	"fmt"
	"time"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/backup"
	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/curriculum"
	"github.com/calumwright/praxis/internal/logger"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/storage"
	"github.com/calumwright/praxis/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.Create()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ActivePathState bundles everything a command needs to reason about the
// currently active path attempt.
type ActivePathState struct {
	Settings models.Settings
	Path     *models.Path
	Contract contract.Contract
	Program  *curriculum.Program
	Location *time.Location
}

// LoadActivePathState resolves settings, the active path, its contract, and
// its curriculum program. Fails when no path is active.
func (c *Context) LoadActivePathState() (*ActivePathState, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, err
	}

	if settings.ActivePathID == "" {
		return nil, fmt.Errorf("no active path, run 'praxis activate' first")
	}

	path := curriculum.PathByID(settings.ActivePathID)
	if path == nil {
		return nil, fmt.Errorf("active path %q is not in the catalog", settings.ActivePathID)
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	state := &ActivePathState{
		Settings: settings,
		Path:     path,
		Contract: contract.Resolve(path),
		Location: loc,
	}

	if path.CurriculumID != "" {
		program, err := curriculum.ProgramByID(path.CurriculumID)
		if err != nil {
			return nil, err
		}
		state.Program = program
	}

	return state, nil
}

// EngineInput assembles the adherence engine input for a window over the
// active attempt.
func (s *ActivePathState) EngineInput(window adherence.Window, sessions []models.Session) adherence.Input {
	in := adherence.Input{
		Window:              window,
		Contract:            s.Contract,
		CurriculumStartDate: s.Settings.CurriculumStartDate,
		TimeSlots:           s.Settings.PracticeTimeSlots,
		OffDaysOfWeek:       s.Settings.OffDaysOfWeek(),
		VacationActive:      s.Settings.VacationActive,
		PrecisionMode:       s.Settings.PrecisionMode,
		Sessions:            sessions,
		Location:            s.Location,
	}
	if s.Program != nil {
		in.Curriculum = s.Program.Lookup()
	}
	if s.Settings.CurriculumStartDate != "" {
		in.Eligible = adherence.EligibleAfter(s.Settings.CurriculumStartDate)
	}
	return in
}

// ComputeWindowSummary evaluates the trailing window ending today against
// the active attempt.
func (c *Context) ComputeWindowSummary(state *ActivePathState, windowDays int) (*adherence.Summary, error) {
	now := time.Now().In(state.Location)
	window := adherence.Window{Today: now, WindowDays: windowDays}

	sessions, err := c.sessionsForWindow(state, window)
	if err != nil {
		return nil, err
	}

	return adherence.ComputeObligationSummary(state.EngineInput(window, sessions))
}

// ComputeAttemptSummary evaluates the whole contract span, from the
// curriculum start through its total-day count, for completion checks.
func (c *Context) ComputeAttemptSummary(state *ActivePathState) (*adherence.Summary, error) {
	if state.Settings.CurriculumStartDate == "" {
		return nil, fmt.Errorf("no curriculum start date on record")
	}
	totalDays := 0
	if state.Contract.TotalDays != nil {
		totalDays = *state.Contract.TotalDays
	} else if state.Program != nil {
		totalDays = state.Program.TotalDays()
	}
	if totalDays < 1 {
		return nil, fmt.Errorf("path %q has no defined duration", state.Path.ID)
	}

	startTime, err := time.Parse(time.RFC3339, state.Settings.CurriculumStartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid curriculum start date: %w", err)
	}
	startKey := utils.DateKey(startTime.In(state.Location))
	endKey, err := utils.AddDaysToDateKey(startKey, totalDays-1, state.Location)
	if err != nil {
		return nil, err
	}

	window := adherence.Window{StartKey: startKey, EndKey: endKey}
	sessions, err := c.sessionsForWindow(state, window)
	if err != nil {
		return nil, err
	}

	return adherence.ComputeObligationSummary(state.EngineInput(window, sessions))
}

func (c *Context) sessionsForWindow(state *ActivePathState, window adherence.Window) ([]models.Session, error) {
	if window.StartKey != "" && window.EndKey != "" {
		// Fetch one day on each side so boundary sessions recorded in a
		// different UTC day still land in the right local bucket.
		startKey, err := utils.AddDaysToDateKey(window.StartKey, -1, state.Location)
		if err != nil {
			return nil, err
		}
		endKey, err := utils.AddDaysToDateKey(window.EndKey, 1, state.Location)
		if err != nil {
			return nil, err
		}
		return c.Store.GetSessionsInRange(startKey, endKey)
	}
	return c.Store.GetAllSessions()
}
