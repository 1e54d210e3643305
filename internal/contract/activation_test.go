package contract

import (
	"testing"

	"github.com/calumwright/praxis/internal/models"
)

func strictPath() *models.Path {
	return &models.Path{
		ID: "initiation-2",
		Contract: &models.ContractSpec{
			TotalDays:           14,
			PracticeDaysPerWeek: 6,
			RequiredLegsPerDay:  2,
			MaxLegsPerDay:       2,
			RequiredTimeSlots:   2,
		},
		RequiresBenchmark: true,
	}
}

func TestValidatePathActivationSelections(t *testing.T) {
	t.Run("valid selections pass and come back normalized", func(t *testing.T) {
		res := ValidatePathActivationSelections(strictPath(),
			[]int{5, 1, 2, 3, 4, 1, 6}, // duplicate 1
			[]string{"19:00", "07:00"})
		if !res.OK {
			t.Fatalf("expected OK, got %+v", res.Result)
		}
		if got := res.Selections.SelectedDaysOfWeek; len(got) != 6 || got[0] != 1 {
			t.Errorf("days not deduped and sorted: %v", got)
		}
		if got := res.Selections.SelectedTimes; len(got) != 2 || got[0] != "07:00" {
			t.Errorf("times not sorted: %v", got)
		}
	})

	t.Run("wrong day count fails with exact text", func(t *testing.T) {
		res := ValidatePathActivationSelections(strictPath(),
			[]int{1, 2, 3}, []string{"07:00", "19:00"})
		if res.OK {
			t.Fatal("expected failure")
		}
		if res.Error != "Select exactly 6 active practice days." {
			t.Errorf("Error = %q", res.Error)
		}
	})

	t.Run("wrong slot count fails with exact text", func(t *testing.T) {
		res := ValidatePathActivationSelections(strictPath(),
			[]int{1, 2, 3, 4, 5, 6}, []string{"07:00"})
		if res.OK {
			t.Fatal("expected failure")
		}
		if res.Error != "Select exactly 2 time slots." {
			t.Errorf("Error = %q", res.Error)
		}
	})

	t.Run("invalid times are dropped before counting", func(t *testing.T) {
		res := ValidatePathActivationSelections(strictPath(),
			[]int{1, 2, 3, 4, 5, 6}, []string{"07:00", "25:99"})
		if res.OK {
			t.Error("an invalid slot must not count toward the requirement")
		}
	})

	t.Run("inconsistent contract fails closed", func(t *testing.T) {
		path := &models.Path{
			Contract: &models.ContractSpec{RequiredLegsPerDay: 3, MaxLegsPerDay: 2},
		}
		res := ValidatePathActivationSelections(path, nil, nil)
		if res.OK {
			t.Fatal("expected failure")
		}
		if res.Error != "Path contract is invalid: required legs exceed max legs per day." {
			t.Errorf("Error = %q", res.Error)
		}
	})

	t.Run("unconstrained path accepts anything", func(t *testing.T) {
		res := ValidatePathActivationSelections(&models.Path{Simple: true}, nil, nil)
		if !res.OK {
			t.Errorf("expected OK, got %+v", res.Result)
		}
	})
}

func TestValidateBenchmarkPrerequisite(t *testing.T) {
	t.Run("required and missing", func(t *testing.T) {
		res := ValidateBenchmarkPrerequisite(strictPath(), false)
		if res.OK {
			t.Fatal("expected failure")
		}
		if res.Error != "Record a breath benchmark before beginning this path." {
			t.Errorf("Error = %q", res.Error)
		}
	})

	t.Run("required and present", func(t *testing.T) {
		if res := ValidateBenchmarkPrerequisite(strictPath(), true); !res.OK {
			t.Errorf("expected OK, got %+v", res)
		}
	})

	t.Run("not required", func(t *testing.T) {
		if res := ValidateBenchmarkPrerequisite(&models.Path{}, false); !res.OK {
			t.Errorf("expected OK, got %+v", res)
		}
	})
}

func TestIsContractComplete(t *testing.T) {
	tests := []struct {
		name             string
		total, satisfied int
		want             bool
	}{
		{"mid contract is never complete", 24, 12, false},
		{"all obligations satisfied", 24, 24, true},
		{"over satisfaction still complete", 24, 30, true},
		{"zero obligations never complete", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsContractComplete(tc.total, tc.satisfied); got != tc.want {
				t.Errorf("IsContractComplete(%d, %d) = %v, want %v", tc.total, tc.satisfied, got, tc.want)
			}
		})
	}
}

func TestBenchmarkCTALabel(t *testing.T) {
	if got := BenchmarkCTALabel(true, true); got != CTARetakeBenchmark {
		t.Errorf("complete+benchmark = %q", got)
	}
	if got := BenchmarkCTALabel(false, true); got != CTABenchmarkComplete {
		t.Errorf("incomplete+benchmark = %q", got)
	}
	if got := BenchmarkCTALabel(false, false); got != CTATakeBenchmark {
		t.Errorf("no benchmark = %q", got)
	}
	if got := BenchmarkCTALabel(true, false); got != CTATakeBenchmark {
		t.Errorf("complete without benchmark = %q", got)
	}
}
