package contract

import (
	"fmt"

	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/utils"
)

// Selections is a user's normalized activation choices.
type Selections struct {
	SelectedDaysOfWeek []int
	SelectedTimes      []string
}

// NormalizeSelections canonicalizes raw activation input. Times are not
// truncated to the contract here; validation must fail-closed if the count
// exceeds it.
func NormalizeSelections(daysOfWeek []int, times []string) Selections {
	return Selections{
		SelectedDaysOfWeek: utils.NormalizeDaysOfWeek(daysOfWeek),
		SelectedTimes:      utils.NormalizeTimeSlots(times, constants.MaxStoredTimeSlots),
	}
}

// ActivationResult carries the validation outcome along with the resolved
// contract and normalized selections so callers need not re-derive them.
type ActivationResult struct {
	Result
	Contract   Contract
	Selections Selections
}

// ValidatePathActivationSelections checks a user's day and slot choices
// against the path's contract before activation. An internally inconsistent
// contract is reported here as a failure with fixed text rather than a
// panic; the engine treats the same condition as a hard error.
func ValidatePathActivationSelections(path *models.Path, daysOfWeek []int, times []string) ActivationResult {
	c := Resolve(path)
	normalized := NormalizeSelections(daysOfWeek, times)
	res := ActivationResult{Contract: c, Selections: normalized}

	if c.Inconsistent() {
		res.Result = fail("Path contract is invalid: required legs exceed max legs per day.")
		return res
	}
	if c.PracticeDaysPerWeek != nil && len(normalized.SelectedDaysOfWeek) != *c.PracticeDaysPerWeek {
		res.Result = fail(fmt.Sprintf("Select exactly %d active practice days.", *c.PracticeDaysPerWeek))
		return res
	}
	if c.RequiredTimeSlots != nil && len(normalized.SelectedTimes) != *c.RequiredTimeSlots {
		res.Result = fail(fmt.Sprintf("Select exactly %d time slots.", *c.RequiredTimeSlots))
		return res
	}

	res.Result = ok()
	return res
}

// ValidateBenchmarkPrerequisite gates activation on the baseline
// measurement when the path requires one.
func ValidateBenchmarkPrerequisite(path *models.Path, hasBenchmark bool) Result {
	if path != nil && path.RequiresBenchmark && !hasBenchmark {
		return fail("Record a breath benchmark before beginning this path.")
	}
	return ok()
}

// IsContractComplete reports whether every obligation of the ENTIRE
// contract has been satisfied. Total must be the whole contract's
// obligation count, not the count elapsed so far; a mid-contract user is
// never complete.
func IsContractComplete(totalObligations, satisfiedObligations int) bool {
	return totalObligations > 0 && satisfiedObligations >= totalObligations
}

// Benchmark call-to-action labels.
const (
	CTARetakeBenchmark   = "Re-run benchmark"
	CTABenchmarkComplete = "Benchmark complete"
	CTATakeBenchmark     = "Take benchmark"
)

// BenchmarkCTALabel picks the benchmark call-to-action. The re-run label is
// offered only once the whole contract is complete AND a benchmark exists.
func BenchmarkCTALabel(contractComplete, hasBenchmark bool) string {
	switch {
	case contractComplete && hasBenchmark:
		return CTARetakeBenchmark
	case hasBenchmark:
		return CTABenchmarkComplete
	default:
		return CTATakeBenchmark
	}
}
