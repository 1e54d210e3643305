package cli

import (
	"fmt"

	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/curriculum"
)

type PathsCmd struct {
	ID string `arg:"" optional:"" help:"Show details for one path."`
}

func (c *PathsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if c.ID != "" {
		path := curriculum.PathByID(c.ID)
		if path == nil {
			return fmt.Errorf("unknown path %q", c.ID)
		}

		resolved := contract.Resolve(path)
		fmt.Printf("%s (%s)\n", path.Name, path.ID)
		if path.Tagline != "" {
			fmt.Printf("  %s\n", path.Tagline)
		}
		if path.Simple {
			fmt.Println("  Simple path: no schedule commitment.")
			return nil
		}
		fmt.Println("\nContract:")
		fmt.Printf("  Total days:          %s\n", formatOptionalInt(resolved.TotalDays))
		fmt.Printf("  Practice days/week:  %s\n", formatOptionalInt(resolved.PracticeDaysPerWeek))
		fmt.Printf("  Required legs/day:   %s\n", formatOptionalInt(resolved.RequiredLegsPerDay))
		fmt.Printf("  Max legs/day:        %s\n", formatOptionalInt(resolved.MaxLegsPerDay))
		fmt.Printf("  Required time slots: %s\n", formatOptionalInt(resolved.RequiredTimeSlots))
		if resolved.Inconsistent() {
			fmt.Println("  ⚠ Contract is invalid: required legs exceed max legs per day.")
		}
		if path.RequiresBenchmark {
			fmt.Println("  Requires a breath benchmark before activation.")
		}
		return nil
	}

	fmt.Println("Available paths:")
	for _, path := range curriculum.Paths {
		marker := " "
		if path.ID == settings.ActivePathID {
			marker = "*"
		}
		fmt.Printf("%s %-14s %s\n", marker, path.ID, path.Name)
	}
	if settings.ActivePathID != "" {
		fmt.Println("\n* = active path")
	}
	return nil
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "unconstrained"
	}
	return fmt.Sprintf("%d", *v)
}
