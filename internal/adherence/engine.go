// Package adherence answers, for any rolling date window: which days and
// obligations of a practice contract were satisfied, how well-timed each
// satisfaction was, whether the contract is broken, and what the streak is.
//
// Every function is a pure transformation of explicit inputs; nothing here
// reads ambient state or performs I/O. Day states and rail days are
// recomputed from scratch on every query, which sidesteps cache
// invalidation at this data scale (weeks of daily data, not years).
package adherence

import (
	"fmt"
	"time"

	"github.com/calumwright/praxis/internal/category"
	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

// DayStatus is the display classification of a rail day.
type DayStatus string

const (
	// DayGray days carry zero obligations and are excluded from all counts.
	DayGray DayStatus = "gray"
	// DayBlank obligation days have at least one unmet leg.
	DayBlank DayStatus = "blank"
	// DayGreen obligation days have every leg matched on time.
	DayGreen DayStatus = "green"
	// DayRed obligation days have every leg matched, at least one late/early.
	DayRed DayStatus = "red"
)

// SlotMatch is the per-leg matching outcome for one day. An empty Status
// means the leg went unmet; an unmet leg with no scheduled time is a
// configuration gap, not a miss.
type SlotMatch struct {
	LegNumber        int
	CategoryID       models.CategoryID
	MatchPolicy      models.MatchPolicy
	Time             string // HH:MM, empty when no slot is configured
	Status           models.MatchStatus
	DeltaMinutes     *int
	MatchedSessionID string
}

// Satisfied reports whether the slot's obligation happened (green or red).
func (s SlotMatch) Satisfied() bool {
	return s.Status.Countable()
}

// DayState is the engine's per-day adherence output.
type DayState struct {
	DateKeyLocal    string
	IsObligationDay bool
	Obligations     int
	Satisfied       int
	DaySatisfied    bool
}

// RailDay is the display-oriented projection of a day, shaped for the
// calendar-strip visualization.
type RailDay struct {
	DateKeyLocal        string
	DayOfWeek           int // 0=Sunday..6
	IsOffDay            bool
	IsVacation          bool
	PrecisionMode       models.PrecisionMode
	CurriculumDayNumber int // 0 when no curriculum day maps to this date
	SatisfiedSlots      []SlotMatch
	DayStatus           DayStatus
}

// Summary is the full adherence picture for a window. DayStates and
// RailDays are index-aligned and always derivable from one another.
type Summary struct {
	WindowStartKey       string
	WindowEndKey         string
	TotalObligations     int
	SatisfiedObligations int
	RequiredDays         int
	SatisfiedDays        int
	DayStates            []DayState
	RailDays             []RailDay
}

// Window selects the evaluation range: either explicit local date keys, or
// the trailing WindowDays ending at Today.
type Window struct {
	StartKey   string
	EndKey     string
	Today      time.Time
	WindowDays int
}

// CurriculumLookup resolves a 1-based day number to its curriculum day, nil
// when the day is outside the curriculum's defined span.
type CurriculumLookup func(dayNumber int) *models.CurriculumDay

// Input carries everything one evaluation needs. All configuration is
// threaded explicitly; the engine holds no state between calls.
type Input struct {
	Window              Window
	Contract            contract.Contract
	Curriculum          CurriculumLookup
	CurriculumStartDate string // RFC3339; empty means no curriculum anchor
	TimeSlots           []string
	OffDaysOfWeek       []int
	VacationActive      bool
	PrecisionMode       models.PrecisionMode
	Sessions            []models.Session

	// Eligible is an optional additional predicate applied after the
	// completed-sessions filter. Nil accepts everything.
	Eligible func(*models.Session) bool

	// Location is the local timezone for date-key derivation. Nil means
	// time.Local.
	Location *time.Location
}

func (in *Input) location() *time.Location {
	if in.Location != nil {
		return in.Location
	}
	return time.Local
}

func resolveWindow(w Window, loc *time.Location) (startKey, endKey string) {
	if w.StartKey != "" && w.EndKey != "" {
		return w.StartKey, w.EndKey
	}

	days := w.WindowDays
	if days < 1 {
		days = constants.DefaultWindowDays
	}
	today := w.Today
	if today.IsZero() {
		today = time.Now().In(loc)
	}
	end := today.In(loc)
	start := end.AddDate(0, 0, -(days - 1))
	return utils.DateKey(start), utils.DateKey(end)
}

func enumerateDateKeys(startKey, endKey string, loc *time.Location) []string {
	if startKey == "" || endKey == "" || startKey > endKey {
		return nil
	}
	cursor, err := utils.ParseDateKey(startKey, loc)
	if err != nil {
		return nil
	}
	end, err := utils.ParseDateKey(endKey, loc)
	if err != nil {
		return nil
	}

	var keys []string
	for !cursor.After(end) {
		keys = append(keys, utils.DateKey(cursor))
		cursor = cursor.AddDate(0, 0, 1)
	}
	return keys
}

// curriculumDayNumber returns the 1-based day number for a date, 0 when the
// date precedes the curriculum start or no start is configured.
func curriculumDayNumber(dateKey, startRFC3339 string, loc *time.Location) int {
	if startRFC3339 == "" {
		return 0
	}
	startTime, err := time.Parse(time.RFC3339, startRFC3339)
	if err != nil {
		return 0
	}
	startTime = startTime.In(loc)
	start := time.Date(startTime.Year(), startTime.Month(), startTime.Day(), 0, 0, 0, 0, loc)

	target, err := utils.ParseDateKey(dateKey, loc)
	if err != nil {
		return 0
	}

	diff := int(target.Sub(start).Hours() / 24)
	if diff < 0 {
		return 0
	}
	return diff + 1
}

// matchesLegCategory checks a session against a leg's category and policy.
func matchesLegCategory(session *models.Session, leg models.Leg) bool {
	if leg.CategoryID == "" {
		return false
	}
	cat := category.Resolve(session)
	if cat == "" || cat != leg.CategoryID {
		return false
	}
	if leg.MatchPolicy == models.MatchExactPractice {
		if leg.PracticeID == "" || session.PracticeID != leg.PracticeID {
			return false
		}
	}
	return true
}

// deltaStatus grades an absolute time delta. Beyond the match window the
// session is not a candidate at all.
func deltaStatus(deltaMinutes int) models.MatchStatus {
	abs := deltaMinutes
	if abs < 0 {
		abs = -abs
	}
	if abs <= constants.GreenDeltaMin {
		return models.MatchGreen
	}
	if abs <= constants.MatchWindowMin {
		return models.MatchRed
	}
	return ""
}

// EligibleAfter builds a session predicate scoping the log to the active
// contract attempt: only sessions started at or after the given anchor
// qualify. An unparseable anchor accepts everything.
func EligibleAfter(startRFC3339 string) func(*models.Session) bool {
	anchor, err := time.Parse(time.RFC3339, startRFC3339)
	valid := err == nil
	return func(s *models.Session) bool {
		if !valid {
			return true
		}
		started, ok := s.StartedAtTime()
		if !ok {
			return false
		}
		return !started.Before(anchor)
	}
}

type candidate struct {
	session      *models.Session
	deltaMinutes int
	status       models.MatchStatus
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// matchLeg finds the best session for a required leg among the day's not yet
// consumed sessions: smallest absolute delta wins, ties broken by encounter
// order. Sessions carrying a snapshot never fall back to computed matching,
// and a countable snapshot is accepted at any delta; the match window gates
// only computed candidates.
func matchLeg(leg models.Leg, scheduledMinutes int, sessions []*models.Session, used map[string]bool, loc *time.Location) *candidate {
	var best *candidate
	bestAbs := 0

	for _, session := range sessions {
		if used[session.ID] {
			continue
		}
		if session.SatisfiedObligation != nil && !*session.SatisfiedObligation {
			continue
		}

		if session.ScheduleMatched != nil {
			snap := session.ScheduleMatched
			if snap.LegNumber == leg.LegNumber && snap.Status.Countable() {
				if abs := absInt(snap.DeltaMinutes); best == nil || abs < bestAbs {
					bestAbs = abs
					best = &candidate{session: session, deltaMinutes: snap.DeltaMinutes, status: snap.Status}
				}
			}
			continue
		}

		if !matchesLegCategory(session, leg) {
			continue
		}

		started, okTime := session.StartedAtTime()
		if !okTime {
			continue
		}
		deltaMin := utils.MinutesOfDay(started.In(loc)) - scheduledMinutes
		status := deltaStatus(deltaMin)
		if status == "" {
			continue
		}
		if abs := absInt(deltaMin); best == nil || abs < bestAbs {
			bestAbs = abs
			best = &candidate{session: session, deltaMinutes: deltaMin, status: status}
		}
	}

	return best
}

// ComputeObligationSummary evaluates a window against the contract. It is
// the shared model behind the rail view and the miss-state/streak metrics.
//
// Matching is a greedy one-session-per-leg assignment, not a globally
// optimal one: a pathological multi-session day could admit an assignment
// satisfying more legs. Accepted as a known limitation given at most a
// handful of legs per day; it is deterministic and cheap.
//
// Structurally contradictory configuration (a day requiring more legs than
// the contract's daily maximum) returns an error immediately so adherence
// numbers can never silently under-count.
func ComputeObligationSummary(in Input) (*Summary, error) {
	if in.Contract.Inconsistent() {
		return nil, fmt.Errorf("invalid contract: required legs per day %d exceeds max %d",
			*in.Contract.RequiredLegsPerDay, *in.Contract.MaxLegsPerDay)
	}

	loc := in.location()
	startKey, endKey := resolveWindow(in.Window, loc)
	dayKeys := enumerateDateKeys(startKey, endKey, loc)

	precisionMode := in.PrecisionMode
	if precisionMode == "" {
		precisionMode = models.PrecisionCurriculum
	}

	offDays := make(map[int]bool, len(in.OffDaysOfWeek))
	for _, d := range in.OffDaysOfWeek {
		if d >= 0 && d <= 6 {
			offDays[d] = true
		}
	}

	// Completed sessions only, bucketed by local date key.
	sessionsByDay := make(map[string][]*models.Session)
	for i := range in.Sessions {
		session := &in.Sessions[i]
		if session.Completion != models.CompletionCompleted {
			continue
		}
		if in.Eligible != nil && !in.Eligible(session) {
			continue
		}
		started, okTime := session.StartedAtTime()
		if !okTime {
			continue
		}
		key := utils.DateKey(started.In(loc))
		sessionsByDay[key] = append(sessionsByDay[key], session)
	}

	summary := &Summary{
		WindowStartKey: startKey,
		WindowEndKey:   endKey,
	}

	for _, dateKeyLocal := range dayKeys {
		date, err := utils.ParseDateKey(dateKeyLocal, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid window date %q: %w", dateKeyLocal, err)
		}
		dayOfWeek := int(date.Weekday())

		day := DayState{DateKeyLocal: dateKeyLocal}
		rail := RailDay{
			DateKeyLocal:  dateKeyLocal,
			DayOfWeek:     dayOfWeek,
			IsVacation:    in.VacationActive,
			PrecisionMode: precisionMode,
			DayStatus:     DayGray,
		}

		switch {
		case precisionMode == models.PrecisionAdvanced:
			// No obligation tracking in advanced mode.
		case in.VacationActive:
			// Vacation suspends the contract.
		case offDays[dayOfWeek]:
			rail.IsOffDay = true
		default:
			dayNumber := curriculumDayNumber(dateKeyLocal, in.CurriculumStartDate, loc)
			rail.CurriculumDayNumber = dayNumber
			if dayNumber == 0 || in.Curriculum == nil {
				break
			}
			currDay := in.Curriculum(dayNumber)
			if currDay == nil {
				break
			}
			requiredLegs := currDay.RequiredLegs()
			if len(requiredLegs) == 0 {
				break
			}

			if in.Contract.MaxLegsPerDay != nil && len(requiredLegs) > *in.Contract.MaxLegsPerDay {
				return nil, fmt.Errorf("curriculum day %d declares %d required legs, contract allows at most %d",
					dayNumber, len(requiredLegs), *in.Contract.MaxLegsPerDay)
			}

			day.IsObligationDay = true
			day.Obligations = len(requiredLegs)

			daySessions := sessionsByDay[dateKeyLocal]
			used := make(map[string]bool)

			for _, leg := range requiredLegs {
				slot := SlotMatch{
					LegNumber:   leg.LegNumber,
					CategoryID:  leg.CategoryID,
					MatchPolicy: leg.MatchPolicy,
				}

				timeIndex := leg.LegNumber - 1
				if timeIndex >= 0 && timeIndex < len(in.TimeSlots) {
					slot.Time = in.TimeSlots[timeIndex]
				}

				scheduledMinutes, timeErr := -1, error(nil)
				if slot.Time != "" {
					scheduledMinutes, timeErr = utils.ParseTimeToMinutes(slot.Time)
				}
				if slot.Time == "" || timeErr != nil {
					// Missing or unparseable slot: the leg is unmet but
					// uncountable, a configuration gap rather than a miss.
					rail.SatisfiedSlots = append(rail.SatisfiedSlots, slot)
					continue
				}

				if best := matchLeg(leg, scheduledMinutes, daySessions, used, loc); best != nil {
					used[best.session.ID] = true
					delta := best.deltaMinutes
					slot.Status = best.status
					slot.DeltaMinutes = &delta
					slot.MatchedSessionID = best.session.ID
				}
				rail.SatisfiedSlots = append(rail.SatisfiedSlots, slot)
			}

			hasUnmet, hasRed := false, false
			for _, slot := range rail.SatisfiedSlots {
				switch slot.Status {
				case "":
					hasUnmet = true
				case models.MatchRed:
					hasRed = true
				}
				if slot.Satisfied() {
					day.Satisfied++
				}
			}
			switch {
			case hasUnmet:
				rail.DayStatus = DayBlank
			case hasRed:
				rail.DayStatus = DayRed
			default:
				rail.DayStatus = DayGreen
			}
		}

		day.DaySatisfied = day.Obligations > 0 && day.Satisfied == day.Obligations

		summary.TotalObligations += day.Obligations
		summary.SatisfiedObligations += day.Satisfied
		if day.IsObligationDay {
			summary.RequiredDays++
		}
		if day.DaySatisfied {
			summary.SatisfiedDays++
		}
		summary.DayStates = append(summary.DayStates, day)
		summary.RailDays = append(summary.RailDays, rail)
	}

	return summary, nil
}
