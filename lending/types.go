/*
Package lending provides the core obligation payment and penalty engine.

PURPOSE:
  This package contains the domain model and algorithms for tracking
  loan-style obligations: what a client owes, whether they are late, how
  much daily penalty has accrued, and whether a recurring grace window
  currently exempts them from accrual.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: An integral-currency-unit amount (backed by decimal.Decimal)
  - Client: The debtor, identified by a national document number
  - Obligation: A debt with principal, a due date, and a payment history
  - Payment: An immutable settlement record, applied against principal
  - Status: The derived state of an obligation at an as-of date

DESIGN PRINCIPLES:
  1. Purity: every computation is a function of its inputs; the engine
     holds no state, performs no I/O, and never reads the wall clock
  2. Precision: uses decimal.Decimal to avoid floating-point errors
  3. Immutability: payments are appended by callers, never mutated here
  4. Explicit configuration: penalty rate and grace cycle are passed
     into every call, never read from ambient globals

USAGE:
  ob := lending.Obligation{
      ID:          "ob-123",
      ClientID:    "cl-7",
      Principal:   lending.NewMoney(500000),
      DueDate:     lending.NewDate(2024, time.March, 1),
      CreatedDate: lending.NewDate(2024, time.January, 1),
  }
  result, err := lending.Resolve(ob, lending.Today(), lending.DefaultConfig())

SEE ALSO:
  - calendar.go: Date type and day arithmetic
  - grace.go: Recurring grace-window policy
  - penalty.go: Daily penalty accrual
  - resolver.go: Status resolution entry point
*/
package lending

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Integral currency units
// =============================================================================

// Money is an amount in whole currency units. The operation runs in a
// single currency with no fractional sub-units, but decimal backing keeps
// arithmetic exact regardless of magnitude.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(units int64) Money {
	return Money{Value: decimal.NewFromInt(units)}
}

func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Value: d}
}

// ParseMoney parses a decimal string. Malformed input yields zero.
func ParseMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{Value: decimal.Zero}
	}
	return Money{Value: d}
}

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(o Money) Money        { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money        { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Neg() Money               { return Money{Value: m.Value.Neg()} }
func (m Money) MulDays(n int) Money      { return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) IsZero() bool             { return m.Value.IsZero() }
func (m Money) IsNegative() bool         { return m.Value.IsNegative() }
func (m Money) IsPositive() bool         { return m.Value.IsPositive() }
func (m Money) GreaterThan(o Money) bool { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool    { return m.Value.LessThan(o.Value) }
func (m Money) Equal(o Money) bool       { return m.Value.Equal(o.Value) }
func (m Money) String() string           { return m.Value.String() }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ClientID string
type ObligationID string

// =============================================================================
// CLIENT - The debtor
// =============================================================================

// Client owns zero or more obligations. The document number is the public
// lookup key used by the client-facing consultation.
type Client struct {
	ID             ClientID
	Name           string
	DocumentNumber string
	Phone          string
	Email          string // optional
}

// =============================================================================
// OBLIGATION - A tracked debt
// =============================================================================

// Obligation is a debt owed by a client. CreatedDate anchors grace-cycle
// counting; DueDate is when the principal becomes payable. Payments are in
// insertion order, which callers guarantee to be chronological.
type Obligation struct {
	ID          ObligationID
	ClientID    ClientID
	Principal   Money
	DueDate     Date
	CreatedDate Date
	Payments    []Payment
}

// PaymentsTotal sums all recorded payments.
func (o Obligation) PaymentsTotal() Money {
	total := ZeroMoney()
	for _, p := range o.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// RemainingPrincipal is principal minus payments, floored at zero.
func (o Obligation) RemainingPrincipal() Money {
	remaining := o.Principal.Sub(o.PaymentsTotal())
	if remaining.IsNegative() {
		return ZeroMoney()
	}
	return remaining
}

// IsPaid reports whether the balance has reached zero. Once paid, an
// obligation accrues no further penalty.
func (o Obligation) IsPaid() bool {
	return !o.RemainingPrincipal().IsPositive()
}

// Payment is a single settlement against an obligation. Payments never
// exist independently and are destroyed with their obligation.
type Payment struct {
	Amount Money
	Date   Date
}

// =============================================================================
// STATUS - Derived obligation state
// =============================================================================

type Status string

const (
	// StatusCurrent: the as-of date has not passed the due date.
	StatusCurrent Status = "current"

	// StatusInGrace: past due, but the as-of date falls inside a recurring
	// grace window. No penalty accrues for days inside the window.
	StatusInGrace Status = "in_grace"

	// StatusOverdue: past due and outside any grace window.
	StatusOverdue Status = "overdue"

	// StatusPaid: remaining balance is zero. Terminal.
	StatusPaid Status = "paid"
)
