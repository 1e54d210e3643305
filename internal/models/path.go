package models

// ContractSpec is the explicit contract override block a path definition may
// carry. Zero values mean "unset"; normalization happens in the contract
// resolver, never here.
type ContractSpec struct {
	TotalDays           int `json:"total_days,omitempty"`
	PracticeDaysPerWeek int `json:"practice_days_per_week,omitempty"`
	RequiredLegsPerDay  int `json:"required_legs_per_day,omitempty"`
	MaxLegsPerDay       int `json:"max_legs_per_day,omitempty"`
	RequiredTimeSlots   int `json:"required_time_slots,omitempty"`
}

// ScheduleSelection constrains how many time-of-day slots a user may choose
// when activating a path. Zero counts mean "unset".
type ScheduleSelection struct {
	RequiredCount int    `json:"required_count,omitempty"`
	MinCount      int    `json:"min_count,omitempty"`
	MaxCount      int    `json:"max_count,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Tracking holds legacy shorthand tracking fields older path definitions
// used before the contract block existed.
type Tracking struct {
	DurationDays int `json:"duration_days,omitempty"`
}

// Path is a practice path definition from the catalog.
type Path struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`

	// Simple paths have no schedule commitment and no slot constraints.
	Simple bool `json:"simple,omitempty"`

	// DurationWeeks is the oldest shorthand: total days = weeks * 7.
	DurationWeeks int `json:"duration_weeks,omitempty"`

	Tracking          *Tracking          `json:"tracking,omitempty"`
	Contract          *ContractSpec      `json:"contract,omitempty"`
	ScheduleSelection *ScheduleSelection `json:"schedule_selection,omitempty"`

	// RequiresBenchmark gates activation on a recorded baseline measurement.
	RequiresBenchmark bool `json:"requires_benchmark,omitempty"`

	// CurriculumID names the built-in curriculum this path follows.
	CurriculumID string `json:"curriculum_id,omitempty"`
}
