package constants

const (
	AppName            = "praxis"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/praxis/praxis.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultWindowDays is the rolling adherence window length
	DefaultWindowDays = 14

	// Matching thresholds in minutes, measured against the scheduled slot time.
	// A session within GreenDeltaMin is on time; within MatchWindowMin it still
	// counts but is flagged late/early; beyond MatchWindowMin it is not a
	// candidate at all.
	GreenDeltaMin  = 15
	MatchWindowMin = 60

	// Schedule selection defaults applied when a path declares no explicit
	// slot-count constraint.
	DefaultMinTimeSlots = 1
	DefaultMaxTimeSlots = 3

	// MaxStoredTimeSlots bounds normalization only. Validation must still
	// fail-closed when a selection exceeds the contract.
	MaxStoredTimeSlots = 24

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "praxis-"
	BackupFileSuffix = ".db"

	// ContractBrokenThreshold is the number of consecutive missed obligation
	// days after which the contract reads as broken.
	ContractBrokenThreshold = 2
)
