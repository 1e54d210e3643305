package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calumwright/praxis/internal/adherence"
)

type RailCmd struct {
	Days  int  `help:"Window length in days." default:"14"`
	Plain bool `help:"Disable color output."`
}

var (
	railGreenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	railRedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	railGrayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (c *RailCmd) Run(ctx *Context) error {
	state, err := ctx.LoadActivePathState()
	if err != nil {
		return err
	}

	summary, err := ctx.ComputeWindowSummary(state, c.Days)
	if err != nil {
		return err
	}

	fmt.Printf("%s rail (%s to %s):\n\n", state.Path.Name, summary.WindowStartKey, summary.WindowEndKey)

	var dates, marks, legs []string
	weekdays := [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	for _, day := range summary.RailDays {
		dates = append(dates, fmt.Sprintf("%s %s", weekdays[day.DayOfWeek], day.DateKeyLocal[5:]))
		marks = append(marks, c.renderMark(day))
		legs = append(legs, renderLegs(day))
	}

	for i := range dates {
		fmt.Printf("  %s  %s  %s\n", dates[i], marks[i], legs[i])
	}

	fmt.Println()
	fmt.Printf("  %s satisfied on time   %s satisfied off time   %s missed   %s no obligation\n",
		c.colorize("●", railGreenStyle), c.colorize("●", railRedStyle), "○", c.colorize("·", railGrayStyle))
	return nil
}

func (c *RailCmd) renderMark(day adherence.RailDay) string {
	switch day.DayStatus {
	case adherence.DayGreen:
		return c.colorize("●", railGreenStyle)
	case adherence.DayRed:
		return c.colorize("●", railRedStyle)
	case adherence.DayBlank:
		return "○"
	default:
		return c.colorize("·", railGrayStyle)
	}
}

func (c *RailCmd) colorize(s string, style lipgloss.Style) string {
	if c.Plain {
		return s
	}
	return style.Render(s)
}

func renderLegs(day adherence.RailDay) string {
	if day.DayStatus == adherence.DayGray {
		switch {
		case day.IsVacation:
			return "vacation"
		case day.IsOffDay:
			return "off day"
		case day.CurriculumDayNumber == 0:
			return ""
		default:
			return "rest"
		}
	}

	var parts []string
	for _, slot := range day.SatisfiedSlots {
		label := fmt.Sprintf("L%d", slot.LegNumber)
		if slot.Time != "" {
			label += "@" + slot.Time
		}
		switch {
		case slot.Satisfied() && slot.DeltaMinutes != nil:
			parts = append(parts, fmt.Sprintf("%s %+dm", label, *slot.DeltaMinutes))
		case slot.Time == "":
			parts = append(parts, label+" (no slot)")
		default:
			parts = append(parts, label+" missed")
		}
	}
	return strings.Join(parts, "  ")
}
