/*
resolver.go - Obligation status resolution

PURPOSE:
  The single entry point consumers use to get a complete picture of an
  obligation: its status, remaining principal, accrued penalty, total due,
  and days overdue. The UI and admin layers call this with already-fetched
  records and an as-of date; the resolver never touches storage or the
  clock.

STATUS PRECEDENCE:
  paid > current > in_grace > overdue

  A zero balance is terminal regardless of dates. An as-of date on or
  before the due date is current regardless of grace geometry. Grace only
  matters once past due.

SEE ALSO:
  - penalty.go: Accrual computation
  - grace.go: Window membership
*/
package lending

// Assessment is the resolved picture of an obligation at an as-of date.
type Assessment struct {
	Status             Status
	RemainingPrincipal Money
	PenaltyOwed        Money
	TotalDue           Money
	DaysOverdue        int

	// OverPaid flags a payment sum exceeding the principal. The remaining
	// balance is clamped to zero, but the condition is surfaced for audit
	// rather than masked.
	OverPaid bool
}

// Resolve computes the assessment. Idempotent and side-effect-free:
// identical inputs always yield identical output.
func Resolve(o Obligation, asOf Date, cfg Config) (Assessment, error) {
	if err := cfg.Validate(); err != nil {
		return Assessment{}, err
	}
	if err := checkDateOrdering(o, asOf); err != nil {
		return Assessment{}, err
	}

	paid := o.PaymentsTotal()
	a := Assessment{
		RemainingPrincipal: o.RemainingPrincipal(),
		PenaltyOwed:        ZeroMoney(),
		OverPaid:           paid.GreaterThan(o.Principal),
	}

	switch {
	case !a.RemainingPrincipal.IsPositive():
		a.Status = StatusPaid

	case asOf.BeforeOrEqual(o.DueDate):
		a.Status = StatusCurrent

	default:
		a.PenaltyOwed = penaltyOwed(o, asOf, cfg)
		if cfg.GracePolicy().inGraceAt(DaysBetween(o.CreatedDate, asOf)) {
			a.Status = StatusInGrace
		} else {
			a.Status = StatusOverdue
			a.DaysOverdue = DaysBetween(o.DueDate, asOf)
		}
	}

	a.TotalDue = a.RemainingPrincipal.Add(a.PenaltyOwed)
	return a, nil
}
