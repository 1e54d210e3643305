package utils

import (
	"reflect"
	"testing"
	"time"
)

func TestDateKeyRoundTrip(t *testing.T) {
	loc := time.UTC
	parsed, err := ParseDateKey("2025-06-02", loc)
	if err != nil {
		t.Fatalf("ParseDateKey failed: %v", err)
	}
	if got := DateKey(parsed); got != "2025-06-02" {
		t.Errorf("DateKey = %q", got)
	}
	if parsed.Hour() != 0 || parsed.Location() != loc {
		t.Errorf("expected midnight in UTC, got %v", parsed)
	}

	if _, err := ParseDateKey("06/02/2025", loc); err == nil {
		t.Error("expected error for a non-canonical date")
	}
}

func TestAddDaysToDateKey(t *testing.T) {
	got, err := AddDaysToDateKey("2025-06-30", 2, time.UTC)
	if err != nil {
		t.Fatalf("AddDaysToDateKey failed: %v", err)
	}
	if got != "2025-07-02" {
		t.Errorf("AddDaysToDateKey = %q, want 2025-07-02", got)
	}

	got, err = AddDaysToDateKey("2025-06-01", -1, time.UTC)
	if err != nil {
		t.Fatalf("AddDaysToDateKey failed: %v", err)
	}
	if got != "2025-05-31" {
		t.Errorf("AddDaysToDateKey = %q, want 2025-05-31", got)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"7:30", 450, false}, // single-digit hours parse
		{"noon", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseTimeToMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(450); got != "07:30" {
		t.Errorf("FormatMinutes(450) = %q", got)
	}
	if got := FormatMinutes(0); got != "00:00" {
		t.Errorf("FormatMinutes(0) = %q", got)
	}
}

func TestNormalizeTimeSlots(t *testing.T) {
	t.Run("drops invalid, dedupes, sorts", func(t *testing.T) {
		got := NormalizeTimeSlots([]string{"19:00", "bogus", "07:00", "19:00", ""}, 24)
		want := []string{"07:00", "19:00"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizeTimeSlots = %v, want %v", got, want)
		}
	})

	t.Run("caps at max count after sorting", func(t *testing.T) {
		got := NormalizeTimeSlots([]string{"21:00", "07:00", "13:00"}, 2)
		want := []string{"07:00", "13:00"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizeTimeSlots = %v, want %v", got, want)
		}
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		if got := NormalizeTimeSlots(nil, 3); got != nil {
			t.Errorf("NormalizeTimeSlots(nil) = %v", got)
		}
	})
}

func TestNormalizeDaysOfWeek(t *testing.T) {
	got := NormalizeDaysOfWeek([]int{6, 0, 3, 6, -1, 7, 3})
	want := []int{0, 3, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeDaysOfWeek = %v, want %v", got, want)
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "UTC", "America/New_York"} {
		if !ValidateTimezone(tz) {
			t.Errorf("ValidateTimezone(%q) = false", tz)
		}
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("ValidateTimezone accepted an unknown zone")
	}
}
