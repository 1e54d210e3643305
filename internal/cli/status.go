package cli

import (
	"fmt"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/models"
)

type StatusCmd struct {
	Days int `help:"Window length in days." default:"14"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	state, err := ctx.LoadActivePathState()
	if err != nil {
		return err
	}

	fmt.Printf("Active path: %s\n", state.Path.Name)
	if state.Settings.VacationActive {
		fmt.Println("Vacation mode: ON (obligation tracking suspended)")
	}
	if state.Settings.PrecisionMode == models.PrecisionAdvanced {
		fmt.Println("Precision mode: advanced (obligation tracking suspended)")
	}

	summary, err := ctx.ComputeWindowSummary(state, c.Days)
	if err != nil {
		return err
	}

	miss := adherence.ComputeMissState(summary.DayStates)
	stats := adherence.ComputeDayCompletionStats(summary.DayStates)

	fmt.Printf("\nLast %d days (%s to %s):\n", c.Days, summary.WindowStartKey, summary.WindowEndKey)
	fmt.Printf("  Obligations satisfied: %d of %d\n", summary.SatisfiedObligations, summary.TotalObligations)
	fmt.Printf("  Days satisfied:        %d of %d\n", summary.SatisfiedDays, summary.RequiredDays)
	fmt.Printf("  Days practiced:        %d\n", stats.DaysPracticed)
	fmt.Printf("  Current streak:        %d\n", stats.StreakCurrent)
	fmt.Printf("  Best streak:           %d\n", stats.StreakBest)

	switch {
	case miss.Broken:
		fmt.Printf("\n❌ Contract broken: %d consecutive obligation days missed.\n", miss.ConsecutiveMissedDays)
	case miss.ConsecutiveMissedDays > 0:
		fmt.Printf("\n⚠ %d missed obligation day(s). %d more and the contract breaks.\n",
			miss.ConsecutiveMissedDays, constants.ContractBrokenThreshold-miss.ConsecutiveMissedDays)
	case summary.RequiredDays > 0:
		fmt.Println("\n✓ Contract on track.")
	}

	// Whole-attempt completion drives the benchmark call to action.
	complete := false
	if attempt, err := ctx.ComputeAttemptSummary(state); err == nil {
		complete = contract.IsContractComplete(attempt.TotalObligations, attempt.SatisfiedObligations)
		if complete {
			fmt.Println("\n🎉 Contract complete: every obligation satisfied.")
		}
	}
	if state.Path.RequiresBenchmark {
		fmt.Printf("\nBenchmark: %s\n", contract.BenchmarkCTALabel(complete, state.Settings.HasBenchmark()))
	}

	return nil
}
