package lending_test

import (
	"testing"
	"time"

	"github.com/inversionesmg/lending-engine/lending"
)

func TestDaysBetween_SameDate_IsZero(t *testing.T) {
	d := lending.NewDate(2024, time.March, 15)
	if got := lending.DaysBetween(d, d); got != 0 {
		t.Errorf("expected 0 days between a date and itself, got %d", got)
	}
}

func TestDaysBetween_Antisymmetric(t *testing.T) {
	a := lending.NewDate(2024, time.January, 1)
	b := lending.NewDate(2024, time.April, 10)

	forward := lending.DaysBetween(a, b)
	backward := lending.DaysBetween(b, a)

	if forward != 100 {
		t.Errorf("expected 100 days from Jan 1 to Apr 10 (leap year), got %d", forward)
	}
	if forward != -backward {
		t.Errorf("expected antisymmetry: %d != -(%d)", forward, backward)
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	// GIVEN: two dates built from wall-clock times late and early in the day
	morning := lending.DateOf(time.Date(2024, time.June, 1, 1, 0, 0, 0, time.UTC))
	night := lending.DateOf(time.Date(2024, time.June, 2, 23, 59, 0, 0, time.UTC))

	// THEN: the count is whole calendar days, not elapsed 24h blocks
	if got := lending.DaysBetween(morning, night); got != 1 {
		t.Errorf("expected 1 day ignoring time of day, got %d", got)
	}
}

func TestDaysBetween_CrossesDSTBoundary(t *testing.T) {
	// Dates are normalized to UTC midnights, so a local DST transition
	// between the endpoints must not shift the count.
	before := lending.NewDate(2024, time.March, 9)
	after := lending.NewDate(2024, time.March, 11)

	if got := lending.DaysBetween(before, after); got != 2 {
		t.Errorf("expected 2 days across DST weekend, got %d", got)
	}
}

func TestDate_Comparisons(t *testing.T) {
	a := lending.NewDate(2024, time.May, 1)
	b := lending.NewDate(2024, time.May, 2)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before is wrong")
	}
	if !a.BeforeOrEqual(a) || !a.AfterOrEqual(a) {
		t.Error("OrEqual comparisons must hold for equal dates")
	}
	if !b.After(a) {
		t.Error("After is wrong")
	}
}

func TestDate_AddDays_RoundTrips(t *testing.T) {
	d := lending.NewDate(2024, time.February, 28)

	next := d.AddDays(1)
	if next.String() != "2024-02-29" {
		t.Errorf("expected leap day, got %s", next)
	}
	if lending.DaysBetween(d, d.AddDays(90)) != 90 {
		t.Error("AddDays and DaysBetween disagree")
	}
}

func TestParseDate(t *testing.T) {
	d, err := lending.ParseDate("2024-01-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-01-11" {
		t.Errorf("round trip failed: %s", d)
	}

	if _, err := lending.ParseDate("11/01/2024"); err == nil {
		t.Error("expected error for non-ISO format")
	}
}
