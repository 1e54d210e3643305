package cli

import (
	"fmt"
	"time"

	"github.com/calumwright/praxis/internal/category"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

type SessionsCmd struct {
	Days   int    `help:"Number of trailing days to show." default:"14"`
	Delete string `help:"Delete the session with this ID instead of listing."`
}

func (c *SessionsCmd) Run(ctx *Context) error {
	if c.Delete != "" {
		ctx.PerformAutomaticBackup()
		if err := ctx.Store.DeleteSession(c.Delete); err != nil {
			return err
		}
		fmt.Printf("Deleted session: %s\n", c.Delete)
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	end := time.Now().In(loc)
	start := end.AddDate(0, 0, -(c.Days - 1))
	sessions, err := ctx.Store.GetSessionsInRange(utils.DateKey(start), utils.DateKey(end))
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Printf("No sessions in the last %d days.\n", c.Days)
		return nil
	}

	fmt.Printf("Sessions (last %d days):\n\n", c.Days)
	for i := range sessions {
		session := &sessions[i]
		started, ok := session.StartedAtTime()
		when := session.StartedAt
		if ok {
			when = started.In(loc).Format("2006-01-02 15:04")
		}

		cat := category.Resolve(session)
		if cat == "" {
			cat = "uncategorized"
		}

		match := "-"
		if session.ScheduleMatched != nil {
			match = fmt.Sprintf("leg %d %s %+dm",
				session.ScheduleMatched.LegNumber, session.ScheduleMatched.Status, session.ScheduleMatched.DeltaMinutes)
		}

		flag := ""
		if session.Completion == models.CompletionAbandoned {
			flag = " [abandoned]"
		} else if session.SatisfiedObligation != nil && !*session.SatisfiedObligation {
			flag = " [not counted]"
		}

		fmt.Printf("%s  %-20s %-16s %s%s\n", when, session.PracticeID, cat, match, flag)
		fmt.Printf("  id: %s\n", session.ID)
	}

	return nil
}
