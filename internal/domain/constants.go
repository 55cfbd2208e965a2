package domain

// Default configuration values
const (
	DefaultStepMinutes = 15
)

// Business validation constants
const (
	MinStepMinutes     = 1
	MaxStepMinutes     = 240 // 4 hours
	MinSessionCapacity = 1
	MaxNotesLength     = 1000

	MaxServiceNameLength     = 100
	MaxServiceDuration       = 24 * 60
	MaxActivityDetailsLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
