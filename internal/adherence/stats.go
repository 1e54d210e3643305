package adherence

import "github.com/calumwright/praxis/internal/constants"

// MissState is the contract's current miss standing, derived from the most
// recent days of a window.
type MissState struct {
	ConsecutiveMissedDays int
	Broken                bool
}

// ComputeMissState walks the day list from most recent backward. Days
// without obligations are skipped outright: they neither count as misses
// nor interrupt the run. The walk stops at the first satisfied obligation
// day. Two or more consecutive missed obligation days break the contract.
func ComputeMissState(dayStates []DayState) MissState {
	missed := 0
	for i := len(dayStates) - 1; i >= 0; i-- {
		day := dayStates[i]
		if !day.IsObligationDay {
			continue
		}
		if day.DaySatisfied {
			break
		}
		missed++
	}
	return MissState{
		ConsecutiveMissedDays: missed,
		Broken:                missed >= constants.ContractBrokenThreshold,
	}
}

// DayCompletionStats are streak metrics over a window's obligation days.
type DayCompletionStats struct {
	DaysPracticed int
	StreakCurrent int
	StreakBest    int
}

// ComputeDayCompletionStats filters the window to obligation days before
// finding runs, so an off-day or vacation never breaks a streak. Streak
// lengths are therefore counted in obligation-day ordinal terms, not
// calendar days: two satisfied obligation days separated by a vacation
// still form a 2-day streak.
func ComputeDayCompletionStats(dayStates []DayState) DayCompletionStats {
	var obligationDays []DayState
	for _, day := range dayStates {
		if day.IsObligationDay {
			obligationDays = append(obligationDays, day)
		}
	}
	if len(obligationDays) == 0 {
		return DayCompletionStats{}
	}

	stats := DayCompletionStats{}
	running := 0
	for _, day := range obligationDays {
		if day.DaySatisfied {
			stats.DaysPracticed++
			running++
			if running > stats.StreakBest {
				stats.StreakBest = running
			}
		} else {
			running = 0
		}
	}

	for i := len(obligationDays) - 1; i >= 0; i-- {
		if !obligationDays[i].DaySatisfied {
			break
		}
		stats.StreakCurrent++
	}

	return stats
}
