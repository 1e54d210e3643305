package storage

import (
	"path/filepath"
	"testing"

	"github.com/calumwright/praxis/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "praxis.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONInitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "praxis.json")

	store := NewJSONStore(path)
	if err := store.Load(); err == nil {
		t.Fatal("expected error loading an uninitialized store")
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("expected error initializing twice")
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	settings, err := reopened.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Timezone != "Local" || settings.PrecisionMode != models.PrecisionCurriculum {
		t.Errorf("default settings mismatch: %+v", settings)
	}
}

func TestJSONPersistenceAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "praxis.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	session := sampleSession("s1", "2025-06-02T07:00:00Z")
	excluded := false
	session.SatisfiedObligation = &excluded
	session.ScheduleMatched = &models.ScheduleMatch{LegNumber: 1, Status: models.MatchGreen}
	if err := store.AddSession(session); err != nil {
		t.Fatalf("AddSession failed: %v", err)
	}

	settings, _ := store.GetSettings()
	settings.ActivePathID = "foundation"
	settings.PracticeTimeSlots = []string{"07:00"}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := reopened.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.SatisfiedObligation == nil || *got.SatisfiedObligation {
		t.Errorf("SatisfiedObligation = %v, want explicit false", got.SatisfiedObligation)
	}
	if got.ScheduleMatched == nil || got.ScheduleMatched.LegNumber != 1 {
		t.Errorf("ScheduleMatched = %+v", got.ScheduleMatched)
	}

	reSettings, err := reopened.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if reSettings.ActivePathID != "foundation" || len(reSettings.PracticeTimeSlots) != 1 {
		t.Errorf("settings not persisted: %+v", reSettings)
	}
}

func TestJSONSessionOperations(t *testing.T) {
	store := setupJSONStore(t)

	t.Run("update requires an existing session", func(t *testing.T) {
		if err := store.UpdateSession(sampleSession("ghost", "2025-06-02T07:00:00Z")); err == nil {
			t.Error("expected error updating a missing session")
		}
	})

	t.Run("delete requires an existing session", func(t *testing.T) {
		if err := store.DeleteSession("ghost"); err == nil {
			t.Error("expected error deleting a missing session")
		}
	})

	t.Run("get all sorts by start time", func(t *testing.T) {
		for _, s := range []models.Session{
			sampleSession("late", "2025-06-03T07:00:00Z"),
			sampleSession("early", "2025-06-02T07:00:00Z"),
		} {
			if err := store.AddSession(s); err != nil {
				t.Fatalf("AddSession failed: %v", err)
			}
		}
		all, err := store.GetAllSessions()
		if err != nil {
			t.Fatalf("GetAllSessions failed: %v", err)
		}
		if len(all) != 2 || all[0].ID != "early" {
			t.Errorf("unexpected order: %+v", all)
		}
	})

	t.Run("range filter by day prefix", func(t *testing.T) {
		got, err := store.GetSessionsInRange("2025-06-03", "2025-06-03")
		if err != nil {
			t.Fatalf("GetSessionsInRange failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "late" {
			t.Errorf("unexpected range result: %+v", got)
		}
	})
}
