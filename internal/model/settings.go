package model

// Settings holds the user-tunable application settings. Rollover is
// declared for forward compatibility with carry-over budgeting; nothing
// consumes it yet.
type Settings struct {
	Currency      string `json:"currency"`
	Locale        string `json:"locale"`
	CycleStartDay int    `json:"cycleStartDay"`
	Rollover      bool   `json:"rollover"`
}

// DefaultSettings returns the settings installed on first run.
func DefaultSettings() Settings {
	return Settings{
		CycleStartDay: 1,
		Currency:      "THB",
		Locale:        "th-TH",
		Rollover:      false,
	}
}

// ClampCycleStartDay returns the day forced into the valid [1,31] range.
// Cycle math itself requires a pre-clamped day; this is the boundary that
// does the clamping.
func ClampCycleStartDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}
