package models

import (
	"fmt"
	"time"
)

// Completion marks how a session ended. Only completed sessions are ever
// considered by the adherence engine.
type Completion string

const (
	CompletionCompleted Completion = "completed"
	CompletionAbandoned Completion = "abandoned"
)

// MatchStatus grades how well-timed a matched session was. Green and red
// both satisfy the obligation; only the timing differs.
type MatchStatus string

const (
	MatchGreen MatchStatus = "green"
	MatchRed   MatchStatus = "red"
)

// Countable reports whether the status contributes to adherence counts.
func (s MatchStatus) Countable() bool {
	return s == MatchGreen || s == MatchRed
}

// ScheduleMatch is the deterministic snapshot computed when a session is
// recorded. The engine prefers snapshots over recomputed matching when
// present.
type ScheduleMatch struct {
	LegNumber     int         `json:"leg_number"`
	CategoryID    CategoryID  `json:"category_id"`
	MatchPolicy   MatchPolicy `json:"match_policy"`
	ScheduledTime string      `json:"scheduled_time"` // HH:MM
	DeltaMinutes  int         `json:"delta_minutes"`  // positive = late
	Status        MatchStatus `json:"status"`
	MatchedAt     string      `json:"matched_at"` // RFC3339
}

// ConfigSnapshot carries the loosely-structured practice configuration a
// session was recorded with. Only PracticeType participates in category
// resolution.
type ConfigSnapshot struct {
	PracticeType string `json:"practice_type,omitempty"`
}

// Session is one append-only practice log entry.
type Session struct {
	ID             string          `json:"id"`
	Completion     Completion      `json:"completion"`
	StartedAt      string          `json:"started_at"` // RFC3339
	PracticeID     string          `json:"practice_id,omitempty"`
	PracticeMode   string          `json:"practice_mode,omitempty"`
	ConfigSnapshot *ConfigSnapshot `json:"config_snapshot,omitempty"`
	Domain         string          `json:"domain,omitempty"` // legacy tag

	// ScheduleMatched is the record-time snapshot, nil for legacy sessions.
	ScheduleMatched *ScheduleMatch `json:"schedule_matched,omitempty"`

	// SatisfiedObligation records whether the session counted toward an
	// obligation at record time. Nil for legacy sessions; explicit false
	// excludes the session from matching entirely.
	SatisfiedObligation *bool `json:"satisfied_obligation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if s.Completion == "" {
		return fmt.Errorf("session completion cannot be empty")
	}
	if s.StartedAt != "" {
		if _, err := time.Parse(time.RFC3339, s.StartedAt); err != nil {
			return fmt.Errorf("invalid started_at timestamp: %w", err)
		}
	}
	return nil
}

// StartedAtTime parses StartedAt, returning the zero time on failure.
func (s *Session) StartedAtTime() (time.Time, bool) {
	if s.StartedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s.StartedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
