package models

import (
	"reflect"
	"testing"
)

func TestOffDaysOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		want     []int
	}{
		{"no selection defaults to Sunday off", nil, []int{0}},
		{"six day week", []int{1, 2, 3, 4, 5, 6}, []int{0}},
		{"weekdays only", []int{1, 2, 3, 4, 5}, []int{0, 6}},
		{"every day selected", []int{0, 1, 2, 3, 4, 5, 6}, nil},
		{"out of range entries ignored", []int{1, 9, -2}, []int{0, 2, 3, 4, 5, 6}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Settings{SelectedDaysOfWeek: tc.selected}.OffDaysOfWeek()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("OffDaysOfWeek() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasBenchmark(t *testing.T) {
	empty := ""
	recorded := "2025-06-01T08:00:00Z"

	if (Settings{}).HasBenchmark() {
		t.Error("nil benchmark reported present")
	}
	if (Settings{BenchmarkRecordedAt: &empty}).HasBenchmark() {
		t.Error("empty benchmark reported present")
	}
	if !(Settings{BenchmarkRecordedAt: &recorded}).HasBenchmark() {
		t.Error("recorded benchmark reported absent")
	}
}

func TestSessionValidate(t *testing.T) {
	valid := Session{ID: "s1", Completion: CompletionCompleted, StartedAt: "2025-06-02T07:00:00Z"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid session rejected: %v", err)
	}

	noID := Session{Completion: CompletionCompleted}
	if err := noID.Validate(); err == nil {
		t.Error("missing id accepted")
	}

	noCompletion := Session{ID: "s1"}
	if err := noCompletion.Validate(); err == nil {
		t.Error("missing completion accepted")
	}

	badTime := Session{ID: "s1", Completion: CompletionCompleted, StartedAt: "yesterday"}
	if err := badTime.Validate(); err == nil {
		t.Error("malformed started_at accepted")
	}
}

func TestStartedAtTime(t *testing.T) {
	s := Session{StartedAt: "2025-06-02T07:00:00Z"}
	got, ok := s.StartedAtTime()
	if !ok || got.Hour() != 7 {
		t.Errorf("StartedAtTime = %v, %v", got, ok)
	}

	if _, ok := (&Session{}).StartedAtTime(); ok {
		t.Error("empty started_at parsed")
	}
	if _, ok := (&Session{StartedAt: "junk"}).StartedAtTime(); ok {
		t.Error("malformed started_at parsed")
	}
}
