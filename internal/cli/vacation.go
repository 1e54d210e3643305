package cli

import (
	"fmt"

	"github.com/calumwright/praxis/internal/logger"
)

type VacationCmd struct {
	Off bool `help:"End vacation mode and resume obligation tracking."`
}

func (c *VacationCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	target := !c.Off
	if settings.VacationActive == target {
		if target {
			fmt.Println("Vacation mode is already on.")
		} else {
			fmt.Println("Vacation mode is already off.")
		}
		return nil
	}

	settings.VacationActive = target
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Info("Vacation mode changed", "active", target)
	if target {
		fmt.Println("Vacation mode ON. Days are excluded from obligations until it ends.")
	} else {
		fmt.Println("Vacation mode OFF. Obligation tracking resumed.")
	}
	return nil
}
