package domain

import (
	"math"
	"time"
)

// Today returns the calendar date of now, taken in now's own location, as
// midnight UTC: the same shape time.Parse produces for DateLayout strings.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date offset days from now's date.
func AddDays(now time.Time, days int) time.Time {
	return Today(now).AddDate(0, 0, days)
}

// Cutoff returns the inclusive YYYY-MM-DD upper bound for a window of days from now.
func Cutoff(now time.Time, days int) string {
	return AddDays(now, days).Format(DateLayout)
}

// DaysUntil returns whole calendar days from now's date to due. Negative when overdue.
func DaysUntil(due, now time.Time) int {
	y, m, d := due.Date()
	dueDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(math.Round(dueDay.Sub(Today(now)).Hours() / 24))
}

// UrgencyFor buckets a due date for deadline timelines.
func UrgencyFor(due, now time.Time) Urgency {
	days := DaysUntil(due, now)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 3:
		return UrgencyUrgent
	case days <= 7:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}
