package services

import "time"

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay keeps the calendar date of value as seen in its own location
// and pins it to UTC midnight. Storage uses this form.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CalendarDaysBetween returns the number of whole calendar days from a to b.
// DST transitions do not shift the result.
func CalendarDaysBetween(a time.Time, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, days int) time.Time {
	return dateOnly(t).AddDate(0, 0, days)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return a.Format(dayLayout) == b.Format(dayLayout)
}

func betweenCalendarDaysInclusive(day time.Time, start time.Time, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	current := CalendarDay(day)
	return !current.Before(CalendarDay(start)) && !current.After(CalendarDay(end))
}
