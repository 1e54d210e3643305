package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/calumwright/praxis/internal/backup"
	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/curriculum"
	"github.com/calumwright/praxis/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Settings integrity (only if DB is reachable)
	if dbReachable {
		if err := checkSettingsIntegrity(ctx); err != nil {
			fmt.Printf("❌ Settings integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings integrity: SKIPPED (database not reachable)\n")
	}

	// Check 3: Active path resolvable (only if DB is reachable)
	if dbReachable {
		if err := checkActivePath(ctx); err != nil {
			fmt.Printf("❌ Active path: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Active path: OK\n")
		}
	} else {
		fmt.Printf("⊘ Active path: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Concurrent processes (warning only)
	if err := checkConcurrentProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more checks failed")
	}
	fmt.Println("All diagnostics passed.")
	return nil
}

func checkDBReachable(ctx *Context) error {
	return ctx.Store.Load()
}

func checkSettingsIntegrity(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone: %s", settings.Timezone)
	}
	for _, slot := range settings.PracticeTimeSlots {
		if !utils.ValidateTimeFormat(slot) {
			return fmt.Errorf("invalid practice time slot: %s", slot)
		}
	}
	for _, d := range settings.SelectedDaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid day of week: %d", d)
		}
	}
	if settings.CurriculumStartDate != "" {
		if _, err := time.Parse(time.RFC3339, settings.CurriculumStartDate); err != nil {
			return fmt.Errorf("invalid curriculum start date: %w", err)
		}
	}
	return nil
}

func checkActivePath(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.ActivePathID == "" {
		return nil // no active path is a valid state
	}
	path := curriculum.PathByID(settings.ActivePathID)
	if path == nil {
		return fmt.Errorf("active path %q is not in the catalog", settings.ActivePathID)
	}
	if path.CurriculumID != "" {
		if _, err := curriculum.ProgramByID(path.CurriculumID); err != nil {
			return err
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'praxis backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil // reachability is reported by its own check
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("configured timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	return nil
}

// checkConcurrentProcesses warns when another praxis process is running,
// since concurrent SQLite writers can contend for the database lock.
func checkConcurrentProcesses() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %v", err)
	}

	self := os.Getpid()
	count := 0
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("found %d other running praxis process(es)", count)
	}
	return nil
}
