/*
penalty.go - Daily penalty accrual

PURPOSE:
  Computes the total penalty owed on an obligation as of a date. Each day
  in (dueDate, asOf] contributes the daily rate unless the grace policy
  exempts it. The total is recomputed fresh on every call - there is no
  persisted running total - so the result is always consistent with the
  as-of date and the current parameters.

CLOSED FORM:
  Rather than walking day by day, overdue days are mapped to elapsed-day
  offsets from the created date and the exempt count is taken from the
  grace policy's cycle geometry in O(1).

SEE ALSO:
  - grace.go: Exempt-day counting
  - resolver.go: Uses this to assemble the full assessment
*/
package lending

// ComputePenalty returns the penalty accrued on the obligation as of the
// given date. Zero when the obligation is paid or not yet past due. Fails
// on invalid configuration or impossible date orderings.
func ComputePenalty(o Obligation, asOf Date, cfg Config) (Money, error) {
	if err := cfg.Validate(); err != nil {
		return ZeroMoney(), err
	}
	if err := checkDateOrdering(o, asOf); err != nil {
		return ZeroMoney(), err
	}
	return penaltyOwed(o, asOf, cfg), nil
}

// penaltyOwed assumes config and ordering are already validated.
func penaltyOwed(o Obligation, asOf Date, cfg Config) Money {
	if o.IsPaid() || asOf.BeforeOrEqual(o.DueDate) {
		return ZeroMoney()
	}

	overdueDays := DaysBetween(o.DueDate, asOf)

	// Overdue days as offsets from the created date: the first chargeable
	// day is the one after the due date, the last is the as-of day itself.
	first := DaysBetween(o.CreatedDate, o.DueDate) + 1
	last := DaysBetween(o.CreatedDate, asOf)
	exempt := cfg.GracePolicy().graceDaysIn(first, last)

	return cfg.DailyPenaltyRate.MulDays(overdueDays - exempt)
}

// checkDateOrdering rejects record states that would produce negative day
// counts downstream.
func checkDateOrdering(o Obligation, asOf Date) error {
	if asOf.Before(o.CreatedDate) {
		return &DateOrderingError{What: "as-of date", Date: asOf, Boundary: o.CreatedDate}
	}
	if o.DueDate.Before(o.CreatedDate) {
		return &DateOrderingError{What: "due date", Date: o.DueDate, Boundary: o.CreatedDate}
	}
	for _, p := range o.Payments {
		if p.Date.Before(o.CreatedDate) {
			return &DateOrderingError{What: "payment date", Date: p.Date, Boundary: o.CreatedDate}
		}
	}
	return nil
}
