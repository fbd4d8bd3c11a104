/*
grace.go - Recurring grace-window policy

PURPOSE:
  Decides whether an obligation, as of a given date, falls inside a
  penalty-exempt grace window. Windows recur: each cycle of CycleDays,
  counted from the obligation's created date, opens with WindowDays of
  exemption. The policy is a pure function of (created, asOf).

CYCLE GEOMETRY:
  elapsed = DaysBetween(created, asOf)
  position = elapsed mod CycleDays
  in grace iff position < WindowDays

  With CycleDays=90 and WindowDays=5, days 0-4, 90-94, 180-184, ... of an
  obligation's life are exempt. A future-dated as-of (elapsed < 0) is never
  in grace; the obligation simply is not due yet.

SEE ALSO:
  - penalty.go: Counts exempt days in closed form using the same geometry
  - config.go: Parameter defaults and validation
*/
package lending

// GracePolicy is the recurring exemption rule. Zero WindowDays means no
// day is ever exempt.
type GracePolicy struct {
	CycleDays  int
	WindowDays int
}

// InGrace reports whether asOf falls inside a grace window for an
// obligation created on the given date. CycleDays must be positive.
func (p GracePolicy) InGrace(created, asOf Date) (bool, error) {
	if p.CycleDays <= 0 {
		return false, &ConfigError{Field: "grace cycle days", Reason: "must be positive"}
	}
	if p.WindowDays < 0 {
		return false, &ConfigError{Field: "grace window days", Reason: "is negative"}
	}
	elapsed := DaysBetween(created, asOf)
	return p.inGraceAt(elapsed), nil
}

// inGraceAt is the cycle test on an elapsed-day offset. Assumes the policy
// has been validated.
func (p GracePolicy) inGraceAt(elapsed int) bool {
	if elapsed < 0 {
		return false
	}
	return elapsed%p.CycleDays < p.WindowDays
}

// graceDaysBefore counts elapsed-day offsets in [0, n) that fall inside a
// grace window. Closed form: full cycles contribute WindowDays each, the
// trailing partial cycle contributes up to WindowDays.
func (p GracePolicy) graceDaysBefore(n int) int {
	if n <= 0 || p.WindowDays == 0 {
		return 0
	}
	full := n / p.CycleDays
	rem := n % p.CycleDays
	if rem > p.WindowDays {
		rem = p.WindowDays
	}
	return full*p.WindowDays + rem
}

// graceDaysIn counts grace days among elapsed-day offsets in [from, to].
// Both bounds are non-negative offsets from the created date.
func (p GracePolicy) graceDaysIn(from, to int) int {
	if to < from {
		return 0
	}
	return p.graceDaysBefore(to+1) - p.graceDaysBefore(from)
}
