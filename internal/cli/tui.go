package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/tui"
	"github.com/calumwright/praxis/internal/utils"
)

type TuiCmd struct {
	Days int `help:"Window length in days." default:"14"`
}

func (c *TuiCmd) Run(ctx *Context) error {
	load := func() (tui.Data, error) {
		return c.loadData(ctx)
	}

	program := tea.NewProgram(tui.NewModel(load), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (c *TuiCmd) loadData(ctx *Context) (tui.Data, error) {
	state, err := ctx.LoadActivePathState()
	if err != nil {
		return tui.Data{}, err
	}

	days := c.Days
	if days < 1 {
		days = constants.DefaultWindowDays
	}

	summary, err := ctx.ComputeWindowSummary(state, days)
	if err != nil {
		return tui.Data{}, err
	}

	data := tui.Data{
		PathName:       state.Path.Name,
		VacationActive: state.Settings.VacationActive,
		PrecisionMode:  state.Settings.PrecisionMode,
		Summary:        summary,
		MissState:      adherence.ComputeMissState(summary.DayStates),
		Stats:          adherence.ComputeDayCompletionStats(summary.DayStates),
	}

	if state.Path.RequiresBenchmark {
		complete := false
		if attempt, err := ctx.ComputeAttemptSummary(state); err == nil {
			complete = contract.IsContractComplete(attempt.TotalObligations, attempt.SatisfiedObligations)
		}
		data.BenchmarkCTA = contract.BenchmarkCTALabel(complete, state.Settings.HasBenchmark())
	}

	now := time.Now().In(state.Location)
	start := now.AddDate(0, 0, -(days - 1))
	sessions, err := ctx.Store.GetSessionsInRange(utils.DateKey(start), utils.DateKey(now))
	if err == nil {
		data.Sessions = sessions
	}

	return data, nil
}
