package cli

import (
	"fmt"
	"strings"

	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/keyring"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone  *string  `help:"IANA timezone name, or 'Local'."`
	Precision *string  `help:"Precision mode: curriculum or advanced."`
	Times     []string `help:"Replace the practice time slots (HH:MM)."`
	Days      []int    `help:"Replace the practice days of week (0=Sunday..6)."`

	SetConnectionString    string `help:"Store a PostgreSQL connection string in the OS keyring."`
	DeleteConnectionString bool   `help:"Remove the stored PostgreSQL connection string."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if c.SetConnectionString != "" {
		if err := keyring.SetConnectionString(c.SetConnectionString); err != nil {
			return err
		}
		fmt.Println("Connection string stored in OS keyring.")
		return nil
	}
	if c.DeleteConnectionString {
		if err := keyring.DeleteConnectionString(); err != nil {
			return err
		}
		fmt.Println("Connection string removed from OS keyring.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Active Path:       %s\n", orNone(settings.ActivePathID))
		fmt.Printf("  Curriculum Start:  %s\n", orNone(settings.CurriculumStartDate))
		fmt.Printf("  Time Slots:        %s\n", orNone(strings.Join(settings.PracticeTimeSlots, ", ")))
		fmt.Printf("  Practice Days:     %s\n", formatDays(settings.SelectedDaysOfWeek))
		fmt.Printf("  Precision Mode:    %s\n", settings.PrecisionMode)
		fmt.Printf("  Vacation Active:   %v\n", settings.VacationActive)
		benchmark := "none"
		if settings.BenchmarkRecordedAt != nil {
			benchmark = *settings.BenchmarkRecordedAt
		}
		fmt.Printf("  Benchmark:         %s\n", benchmark)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Precision != nil {
		mode := models.PrecisionMode(*c.Precision)
		if mode != models.PrecisionCurriculum && mode != models.PrecisionAdvanced {
			return fmt.Errorf("invalid precision mode %q (expected curriculum or advanced)", *c.Precision)
		}
		settings.PrecisionMode = mode
		updated = true
	}
	if len(c.Times) > 0 {
		for _, t := range c.Times {
			if !utils.ValidateTimeFormat(t) {
				return fmt.Errorf("invalid time %q (expected HH:MM)", t)
			}
		}
		settings.PracticeTimeSlots = utils.NormalizeTimeSlots(c.Times, constants.MaxStoredTimeSlots)
		updated = true
	}
	if len(c.Days) > 0 {
		settings.SelectedDaysOfWeek = utils.NormalizeDaysOfWeek(c.Days)
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func formatDays(days []int) string {
	if len(days) == 0 {
		return "none (Sunday off by default)"
	}
	names := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var parts []string
	for _, d := range days {
		if d >= 0 && d <= 6 {
			parts = append(parts, names[d])
		}
	}
	return strings.Join(parts, ", ")
}
