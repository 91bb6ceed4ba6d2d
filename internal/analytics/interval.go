// Package analytics holds the pure computation behind the revenue and
// occupancy reports: interval arithmetic, rate resolution, reservation
// apportionment and the KPI rollups. Nothing in this package touches the
// store; every function is a plain function of its inputs.
package analytics

import (
	"time"
)

// DayStart normalizes a timestamp to UTC midnight. All interval arithmetic in
// this package works on calendar days; time-of-day carries no meaning.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NightsBetween returns the number of nights from a to b, i.e. the number of
// calendar days in [a, b). Negative when b is before a.
func NightsBetween(a, b time.Time) int {
	return int(DayStart(b).Sub(DayStart(a)) / (24 * time.Hour))
}

// DaysInPeriod returns the number of billable nights a query period
// [periodStart, periodEnd] spans, using the same end-exclusive night count as
// NightsInOverlap so occupancy numerators and denominators stay comparable.
func DaysInPeriod(periodStart, periodEnd time.Time) int {
	n := NightsBetween(periodStart, periodEnd)
	if n < 0 {
		return 0
	}
	return n
}

// NightsInOverlap counts the nights of the stay [arrival, departure) that fall
// inside the query period. A night belongs to the date it starts on, so a
// reservation departing on the period's first day contributes 0 nights; the
// guest has already checked out by the report's reference instant. Never
// negative, 0 when the intervals are disjoint.
func NightsInOverlap(arrival, departure, periodStart, periodEnd time.Time) int {
	start := DayStart(arrival)
	if ps := DayStart(periodStart); ps.After(start) {
		start = ps
	}
	end := DayStart(departure)
	if pe := DayStart(periodEnd); pe.Before(end) {
		end = pe
	}
	nights := NightsBetween(start, end)
	if nights < 0 {
		return 0
	}
	return nights
}
