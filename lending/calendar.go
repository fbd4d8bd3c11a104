package lending

import (
	"math"
	"time"
)

// =============================================================================
// DATE - Day-granular point in time
// =============================================================================

// Date is a calendar date. Comparisons and day arithmetic normalize to
// midnight UTC so time-of-day components and DST shifts never leak into
// day counts.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf converts an arbitrary time.Time, keeping only the calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.normalize().AddDate(0, 0, n)} }

// Properties
func (d Date) IsZero() bool   { return d.Time.IsZero() }
func (d Date) String() string { return d.normalize().Format("2006-01-02") }

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

// DaysBetween returns the number of whole calendar days from `from` to `to`,
// rounding any partial day up so a fraction of a day still counts as a full
// day of difference. Negative when `to` precedes `from`. Both endpoints are
// normalized to date-only values first, which keeps the count exact across
// DST transitions and makes DaysBetween(a, b) == -DaysBetween(b, a).
func DaysBetween(from, to Date) int {
	diff := to.normalize().Sub(from.normalize())
	return int(math.Ceil(diff.Hours() / 24))
}
