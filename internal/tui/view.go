package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.loadErr != nil {
		return docStyle.Render(dangerStyle.Render("Error: ") + m.loadErr.Error() + "\n\nPress q to quit, r to retry.")
	}

	var content string
	switch m.state {
	case StateRail:
		content = m.viewRail()
	case StateStatus:
		content = m.viewStatus()
	case StateSessions:
		content = m.viewSessions()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Rail", "Status", "Sessions"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

var tuiWeekdays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func (m Model) viewRail() string {
	if m.data.Summary == nil {
		return docStyle.Render("No adherence data.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.data.PathName) + "\n\n")

	for _, day := range m.data.Summary.RailDays {
		mark := "·"
		style := grayStyle
		switch day.DayStatus {
		case adherence.DayGreen:
			mark, style = "●", greenStyle
		case adherence.DayRed:
			mark, style = "●", redStyle
		case adherence.DayBlank:
			mark, style = "○", titleStyle
		}

		detail := ""
		for _, slot := range day.SatisfiedSlots {
			if slot.Satisfied() && slot.DeltaMinutes != nil {
				detail += fmt.Sprintf("  L%d %+dm", slot.LegNumber, *slot.DeltaMinutes)
			} else if slot.Time != "" {
				detail += fmt.Sprintf("  L%d missed", slot.LegNumber)
			}
		}

		b.WriteString(fmt.Sprintf("%s %s  %s%s\n",
			tuiWeekdays[day.DayOfWeek], day.DateKeyLocal[5:], style.Render(mark), detail))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewStatus() string {
	if m.data.Summary == nil {
		return docStyle.Render("No adherence data.")
	}
	s := m.data.Summary

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.data.PathName) + "\n\n")
	if m.data.VacationActive {
		b.WriteString("Vacation mode: ON\n")
	}
	if m.data.PrecisionMode == models.PrecisionAdvanced {
		b.WriteString("Precision mode: advanced\n")
	}
	b.WriteString(fmt.Sprintf("Obligations satisfied: %d of %d\n", s.SatisfiedObligations, s.TotalObligations))
	b.WriteString(fmt.Sprintf("Days satisfied:        %d of %d\n", s.SatisfiedDays, s.RequiredDays))
	b.WriteString(fmt.Sprintf("Days practiced:        %d\n", m.data.Stats.DaysPracticed))
	b.WriteString(fmt.Sprintf("Current streak:        %d\n", m.data.Stats.StreakCurrent))
	b.WriteString(fmt.Sprintf("Best streak:           %d\n", m.data.Stats.StreakBest))

	if m.data.MissState.Broken {
		b.WriteString("\n" + dangerStyle.Render(fmt.Sprintf("Contract broken: %d consecutive missed days.", m.data.MissState.ConsecutiveMissedDays)) + "\n")
	} else if m.data.MissState.ConsecutiveMissedDays > 0 {
		b.WriteString(fmt.Sprintf("\nMissed obligation days: %d\n", m.data.MissState.ConsecutiveMissedDays))
	}

	if m.data.BenchmarkCTA != "" {
		b.WriteString("\nBenchmark: " + m.data.BenchmarkCTA + "\n")
	}

	return docStyle.Render(b.String())
}

func (m Model) viewSessions() string {
	if len(m.data.Sessions) == 0 {
		return docStyle.Render("No sessions in the window.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent sessions") + "\n\n")
	for i := range m.data.Sessions {
		session := &m.data.Sessions[i]
		when := session.StartedAt
		if started, ok := session.StartedAtTime(); ok {
			when = started.Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("%s  %s", when, session.PracticeID)
		if session.ScheduleMatched != nil {
			style := greenStyle
			if session.ScheduleMatched.Status == models.MatchRed {
				style = redStyle
			}
			line += "  " + style.Render(fmt.Sprintf("leg %d %+dm", session.ScheduleMatched.LegNumber, session.ScheduleMatched.DeltaMinutes))
		}
		if session.Completion == models.CompletionAbandoned {
			line += "  " + grayStyle.Render("[abandoned]")
		}
		b.WriteString(line + "\n")
	}

	return docStyle.Render(b.String())
}
