package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/contract"
	"github.com/calumwright/praxis/internal/models"
	"github.com/calumwright/praxis/internal/storage"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "praxis.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &Context{Store: store}
}

func activateFoundation(t *testing.T, ctx *Context, startDate string) {
	t.Helper()
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	settings.Timezone = "UTC"
	settings.ActivePathID = "foundation"
	settings.CurriculumStartDate = startDate
	settings.PracticeTimeSlots = []string{"07:00"}
	settings.SelectedDaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
}

func TestLoadActivePathState(t *testing.T) {
	t.Run("no active path", func(t *testing.T) {
		ctx := setupTestContext(t)
		if _, err := ctx.LoadActivePathState(); err == nil {
			t.Fatal("expected error with no active path")
		}
	})

	t.Run("unknown path id", func(t *testing.T) {
		ctx := setupTestContext(t)
		settings, _ := ctx.Store.GetSettings()
		settings.ActivePathID = "ghost-path"
		if err := ctx.Store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		if _, err := ctx.LoadActivePathState(); err == nil {
			t.Fatal("expected error for a path missing from the catalog")
		}
	})

	t.Run("resolves path contract and program", func(t *testing.T) {
		ctx := setupTestContext(t)
		activateFoundation(t, ctx, "2025-06-02T00:00:00Z")

		state, err := ctx.LoadActivePathState()
		if err != nil {
			t.Fatalf("LoadActivePathState failed: %v", err)
		}
		if state.Path.ID != "foundation" {
			t.Errorf("Path.ID = %q", state.Path.ID)
		}
		if state.Program == nil || state.Program.TotalDays() != 14 {
			t.Errorf("Program not resolved: %+v", state.Program)
		}
		if state.Contract.TotalDays == nil || *state.Contract.TotalDays != 14 {
			t.Errorf("Contract.TotalDays = %v", state.Contract.TotalDays)
		}
		if state.Location != time.UTC {
			t.Errorf("Location = %v", state.Location)
		}
	})
}

func TestComputeAttemptSummary(t *testing.T) {
	ctx := setupTestContext(t)
	activateFoundation(t, ctx, "2025-06-02T00:00:00Z")

	// Foundation requires one 07:00 breathwork leg on 12 of its 14 days.
	// Record a matching session for every non-rest day.
	state, err := ctx.LoadActivePathState()
	if err != nil {
		t.Fatalf("LoadActivePathState failed: %v", err)
	}
	start, _ := time.Parse(time.RFC3339, "2025-06-02T07:00:00Z")
	for day := 0; day < 14; day++ {
		if (day+1)%7 == 0 {
			continue // rest day
		}
		startedAt := start.AddDate(0, 0, day).Format(time.RFC3339)
		err := ctx.Store.AddSession(models.Session{
			ID:         startedAt,
			Completion: models.CompletionCompleted,
			StartedAt:  startedAt,
			PracticeID: "breath-box",
		})
		if err != nil {
			t.Fatalf("AddSession failed: %v", err)
		}
	}

	summary, err := ctx.ComputeAttemptSummary(state)
	if err != nil {
		t.Fatalf("ComputeAttemptSummary failed: %v", err)
	}
	if summary.WindowStartKey != "2025-06-02" || summary.WindowEndKey != "2025-06-15" {
		t.Errorf("window = %s..%s", summary.WindowStartKey, summary.WindowEndKey)
	}
	if summary.TotalObligations != 12 {
		t.Errorf("TotalObligations = %d, want 12", summary.TotalObligations)
	}
	if summary.SatisfiedObligations != 12 {
		t.Errorf("SatisfiedObligations = %d, want 12", summary.SatisfiedObligations)
	}
	if !contract.IsContractComplete(summary.TotalObligations, summary.SatisfiedObligations) {
		t.Error("a fully satisfied attempt should be complete")
	}

	t.Run("missing start date fails", func(t *testing.T) {
		state.Settings.CurriculumStartDate = ""
		if _, err := ctx.ComputeAttemptSummary(state); err == nil {
			t.Error("expected error without a start date")
		}
	})
}

func TestAttemptSummaryMidContract(t *testing.T) {
	ctx := setupTestContext(t)
	activateFoundation(t, ctx, "2025-06-02T00:00:00Z")

	state, err := ctx.LoadActivePathState()
	if err != nil {
		t.Fatalf("LoadActivePathState failed: %v", err)
	}
	// Only the first six days practiced.
	start, _ := time.Parse(time.RFC3339, "2025-06-02T07:00:00Z")
	for day := 0; day < 6; day++ {
		startedAt := start.AddDate(0, 0, day).Format(time.RFC3339)
		err := ctx.Store.AddSession(models.Session{
			ID:         startedAt,
			Completion: models.CompletionCompleted,
			StartedAt:  startedAt,
			PracticeID: "breath-box",
		})
		if err != nil {
			t.Fatalf("AddSession failed: %v", err)
		}
	}

	summary, err := ctx.ComputeAttemptSummary(state)
	if err != nil {
		t.Fatalf("ComputeAttemptSummary failed: %v", err)
	}
	if contract.IsContractComplete(summary.TotalObligations, summary.SatisfiedObligations) {
		t.Error("a half-finished attempt must not read as complete")
	}
}

func TestEngineInputWiring(t *testing.T) {
	ctx := setupTestContext(t)
	activateFoundation(t, ctx, "2025-06-02T00:00:00Z")

	state, err := ctx.LoadActivePathState()
	if err != nil {
		t.Fatalf("LoadActivePathState failed: %v", err)
	}

	window := adherence.Window{StartKey: "2025-06-02", EndKey: "2025-06-08"}
	in := state.EngineInput(window, nil)
	if in.Curriculum == nil {
		t.Error("curriculum lookup not wired")
	}
	if in.Eligible == nil {
		t.Error("eligibility predicate not wired")
	}
	if len(in.OffDaysOfWeek) != 0 {
		t.Errorf("all days selected should leave no off days, got %v", in.OffDaysOfWeek)
	}
	if len(in.TimeSlots) != 1 || in.TimeSlots[0] != "07:00" {
		t.Errorf("TimeSlots = %v", in.TimeSlots)
	}

	// Sessions recorded before the attempt start are out of scope.
	early := models.Session{StartedAt: "2025-06-01T07:00:00Z"}
	if in.Eligible(&early) {
		t.Error("pre-attempt session passed the eligibility predicate")
	}
}
