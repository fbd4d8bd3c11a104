package lending

// =============================================================================
// CONFIG - Engine parameters, passed explicitly into every call
// =============================================================================

// Config carries the penalty and grace parameters. There are no ambient
// defaults inside the engine; every Resolve/ComputePenalty call receives
// its own Config so callers can vary parameters per evaluation.
type Config struct {
	// DailyPenaltyRate is the flat charge, in currency units, for each
	// overdue day that is not exempted by a grace window.
	DailyPenaltyRate Money

	// GraceCycleDays is the length of the recurring grace cycle, anchored
	// on the obligation's created date. Must be positive.
	GraceCycleDays int

	// GraceWindowDays is the width of the penalty-exempt window at the
	// start of each cycle. Zero disables grace entirely; it may not exceed
	// GraceCycleDays.
	GraceWindowDays int
}

const (
	DefaultDailyPenaltyRate = 5000
	DefaultGraceCycleDays   = 90
)

// DefaultConfig returns the operation's standard parameters: 5000/day
// penalty on a 90-day cycle with no grace window configured.
func DefaultConfig() Config {
	return Config{
		DailyPenaltyRate: NewMoney(DefaultDailyPenaltyRate),
		GraceCycleDays:   DefaultGraceCycleDays,
	}
}

// Validate fails fast on parameters the engine must never compute with.
func (c Config) Validate() error {
	if c.DailyPenaltyRate.IsNegative() {
		return &ConfigError{Field: "daily penalty rate", Reason: "is negative"}
	}
	if c.GraceCycleDays <= 0 {
		return &ConfigError{Field: "grace cycle days", Reason: "must be positive"}
	}
	if c.GraceWindowDays < 0 {
		return &ConfigError{Field: "grace window days", Reason: "is negative"}
	}
	if c.GraceWindowDays > c.GraceCycleDays {
		return &ConfigError{Field: "grace window days", Reason: "exceeds cycle length"}
	}
	return nil
}

// GracePolicy extracts the grace parameters from the config.
func (c Config) GracePolicy() GracePolicy {
	return GracePolicy{CycleDays: c.GraceCycleDays, WindowDays: c.GraceWindowDays}
}
