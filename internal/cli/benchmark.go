package cli

import (
	"fmt"
	"time"

	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/curriculum"
)

type BenchmarkCmd struct {
	Clear bool `help:"Clear the recorded benchmark instead of recording one."`
}

func (c *BenchmarkCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if c.Clear {
		settings.BenchmarkRecordedAt = nil
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Benchmark cleared.")
		return nil
	}

	now := time.Now().Format(time.RFC3339)
	settings.BenchmarkRecordedAt = &now
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println("Benchmark recorded.")

	if settings.ActivePathID != "" {
		if path := curriculum.PathByID(settings.ActivePathID); path != nil && path.RequiresBenchmark {
			if state, err := ctx.LoadActivePathState(); err == nil {
				complete := false
				if attempt, err := ctx.ComputeAttemptSummary(state); err == nil {
					complete = contract.IsContractComplete(attempt.TotalObligations, attempt.SatisfiedObligations)
				}
				fmt.Printf("Next: %s\n", contract.BenchmarkCTALabel(complete, true))
			}
		}
	}

	return nil
}
