package models

// PrecisionMode selects whether the curriculum rail measures adherence.
// Advanced mode suspends obligation tracking entirely.
type PrecisionMode string

const (
	PrecisionCurriculum PrecisionMode = "curriculum"
	PrecisionAdvanced   PrecisionMode = "advanced"
)

// Settings is the persisted application state a running contract depends on.
// Everything here is threaded into engine calls as explicit parameters; the
// engine never reads it ambiently.
type Settings struct {
	Timezone     string `json:"timezone"`
	ActivePathID string `json:"active_path_id,omitempty"`

	// CurriculumStartDate anchors curriculum day numbering (RFC3339).
	CurriculumStartDate string `json:"curriculum_start_date,omitempty"`

	// PracticeTimeSlots are the chosen HH:MM slots, ordered; leg N resolves
	// to slot N-1.
	PracticeTimeSlots []string `json:"practice_time_slots,omitempty"`

	// SelectedDaysOfWeek are the committed practice days (0=Sunday..6).
	// Off-days are derived as the complement once a selection exists.
	SelectedDaysOfWeek []int `json:"selected_days_of_week,omitempty"`

	PrecisionMode  PrecisionMode `json:"precision_mode"`
	VacationActive bool          `json:"vacation_active"`

	// BenchmarkRecordedAt is the RFC3339 timestamp of the baseline
	// measurement for the current attempt, nil when none exists.
	BenchmarkRecordedAt *string `json:"benchmark_recorded_at,omitempty"`
}

// HasBenchmark reports whether a baseline measurement exists for the
// current attempt.
func (s Settings) HasBenchmark() bool {
	return s.BenchmarkRecordedAt != nil && *s.BenchmarkRecordedAt != ""
}

// OffDaysOfWeek derives the non-practice weekdays from the committed
// selection. With no selection on record the legacy default applies
// (Sunday off).
func (s Settings) OffDaysOfWeek() []int {
	if len(s.SelectedDaysOfWeek) == 0 {
		return []int{0}
	}
	selected := make(map[int]bool, len(s.SelectedDaysOfWeek))
	for _, d := range s.SelectedDaysOfWeek {
		if d >= 0 && d <= 6 {
			selected[d] = true
		}
	}
	var off []int
	for d := 0; d <= 6; d++ {
		if !selected[d] {
			off = append(off, d)
		}
	}
	return off
}
