package service

import (
	"time"

	"mentora_backend/internal/model"
)

// monthlyRule is the decoded form of a monthly action's assigned day: a
// fixed day of month, or the last calendar day of each month for the
// LastDayOfMonth sentinel. Decoding happens once, here, at the recurrence
// boundary.
type monthlyRule struct {
	lastDay bool
	day     int
}

func decodeMonthlyRule(assignedDays []int) (monthlyRule, bool) {
	if len(assignedDays) == 0 {
		return monthlyRule{}, false
	}
	if assignedDays[0] == model.LastDayOfMonth {
		return monthlyRule{lastDay: true}, true
	}
	if assignedDays[0] < 1 || assignedDays[0] > 31 {
		return monthlyRule{}, false
	}
	return monthlyRule{day: assignedDays[0]}, true
}

// OccursOn reports whether one occurrence of the action falls on date.
// Deterministic and side-effect free; the date's time of day is ignored.
//
// Biweekly parity is anchored to the calendar year (day-of-year / 7), not
// to the cycle start. This reproduces the platform's historical behavior:
// the on/off week pattern restarts at every year boundary regardless of
// when the cycle began. Callers relying on cycle-relative parity must not
// assume it here.
func OccursOn(action *model.Action, date time.Time) bool {
	switch action.Frequency {
	case model.FrequencyDaily:
		return true

	case model.FrequencyWeekly:
		return weekdayAssigned(action.AssignedDays, date)

	case model.FrequencyBiweekly:
		weekIndex := (date.YearDay() - 1) / 7
		if weekIndex%2 != 0 {
			return false
		}
		return weekdayAssigned(action.AssignedDays, date)

	case model.FrequencyMonthly:
		rule, ok := decodeMonthlyRule(action.AssignedDays)
		if !ok {
			return false
		}
		if rule.lastDay {
			return date.Day() == lastDayOfMonth(date)
		}
		return date.Day() == rule.day

	case model.FrequencyOneTime:
		// The generator calls this exactly once, for the cycle start date.
		return true

	default:
		return false
	}
}

func weekdayAssigned(assignedDays []int, date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range assignedDays {
		if d == weekday {
			return true
		}
	}
	return false
}

func lastDayOfMonth(date time.Time) int {
	firstOfNext := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
