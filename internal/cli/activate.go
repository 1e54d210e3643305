package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/curriculum"
	"github.com/calumwright/praxis/internal/logger"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

type ActivateCmd struct {
	Path  string   `arg:"" help:"Path ID to activate."`
	Days  []int    `help:"Practice days of week (0=Sunday..6). Prompted interactively when omitted."`
	Times []string `help:"Practice time slots (HH:MM). Prompted interactively when omitted."`
	Start string   `help:"Curriculum start date (YYYY-MM-DD, default: today)."`
}

func (c *ActivateCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	path := curriculum.PathByID(c.Path)
	if path == nil {
		return fmt.Errorf("unknown path %q", c.Path)
	}

	if res := contract.ValidateBenchmarkPrerequisite(path, settings.HasBenchmark()); !res.OK {
		return fmt.Errorf("%s", res.Error)
	}

	days, times := c.Days, c.Times
	if !path.Simple && len(days) == 0 && len(times) == 0 {
		days, times, err = promptSelections(path)
		if err != nil {
			return err
		}
	}

	res := contract.ValidatePathActivationSelections(path, days, times)
	if !res.OK {
		return fmt.Errorf("%s", res.Error)
	}

	if slotRes := contract.ValidateSelectedTimes(res.Selections.SelectedTimes, contract.ConstraintForPath(path)); !slotRes.OK {
		return fmt.Errorf("%s", slotRes.Error)
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	start := time.Now().In(loc)
	if c.Start != "" {
		start, err = utils.ParseDateKey(c.Start, loc)
		if err != nil {
			return err
		}
	}

	ctx.PerformAutomaticBackup()

	settings.ActivePathID = path.ID
	settings.CurriculumStartDate = start.Format(time.RFC3339)
	settings.PracticeTimeSlots = res.Selections.SelectedTimes
	settings.SelectedDaysOfWeek = res.Selections.SelectedDaysOfWeek
	settings.VacationActive = false

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Info("Path activated", "path", path.ID, "start", settings.CurriculumStartDate)
	fmt.Printf("Activated path: %s\n", path.Name)
	if len(settings.PracticeTimeSlots) > 0 {
		fmt.Printf("Practice slots: %s\n", strings.Join(settings.PracticeTimeSlots, ", "))
	}
	fmt.Printf("Curriculum starts: %s\n", utils.DateKey(start))
	return nil
}

var weekdayOptions = []huh.Option[int]{
	huh.NewOption("Sunday", 0),
	huh.NewOption("Monday", 1),
	huh.NewOption("Tuesday", 2),
	huh.NewOption("Wednesday", 3),
	huh.NewOption("Thursday", 4),
	huh.NewOption("Friday", 5),
	huh.NewOption("Saturday", 6),
}

// promptSelections collects day and slot choices interactively, validating
// against the path's constraints inside the form so the user sees the
// contract's own error text inline.
func promptSelections(path *models.Path) ([]int, []string, error) {
	resolved := contract.Resolve(path)
	constraint := contract.ConstraintForPath(path)

	var days []int
	var timesRaw string

	dayTitle := "Practice days"
	if resolved.PracticeDaysPerWeek != nil {
		dayTitle = fmt.Sprintf("Practice days (choose %d)", *resolved.PracticeDaysPerWeek)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(dayTitle).
				Options(weekdayOptions...).
				Value(&days).
				Validate(func(selected []int) error {
					if resolved.PracticeDaysPerWeek != nil && len(selected) != *resolved.PracticeDaysPerWeek {
						return fmt.Errorf("select exactly %d days", *resolved.PracticeDaysPerWeek)
					}
					return nil
				}),
			huh.NewInput().
				Title("Practice times").
				Description("Comma-separated HH:MM slots, e.g. 07:00,19:30").
				Value(&timesRaw).
				Validate(func(s string) error {
					times := splitTimes(s)
					for _, t := range times {
						if !utils.ValidateTimeFormat(t) {
							return fmt.Errorf("invalid time %q (expected HH:MM)", t)
						}
					}
					if res := contract.ValidateSelectedTimes(times, constraint); !res.OK {
						return fmt.Errorf("%s", res.Error)
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return nil, nil, err
	}

	return days, splitTimes(timesRaw), nil
}

func splitTimes(s string) []string {
	var times []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			times = append(times, part)
		}
	}
	return times
}
