package util

import (
	"math"
	"time"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Solo cycle length: 100 days after the start date, both boundary days
// included, so the window spans 101 calendar days.
const (
	SoloCycleDays      = 100
	SoloCycleTotalDays = SoloCycleDays + 1
)

const PerfectDayCoinBonus = 25

const PerfectDayReason = "perfect day bonus"

// StartOfDay normalizes t to 00:00:00 in its own location. All due dates
// and streak arithmetic work on day granularity.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (b after a is
// positive), comparing at day granularity. Rounding absorbs DST-shortened
// and DST-lengthened days.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24))
}
