package parse

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// dateIn returns t's calendar date at midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ResolveDate resolves a date token from the text extraction path against a
// reference instant and timezone. It recognizes the case-insensitive
// literals "today" and "yesterday", then attempts a strict ISO YYYY-MM-DD
// parse. Anything else resolves to today in loc; it never fails.
func ResolveDate(token string, ref time.Time, loc *time.Location) time.Time {
	today := dateIn(ref, loc)

	switch strings.ToLower(strings.TrimSpace(token)) {
	case "today":
		return today
	case "yesterday":
		return today.AddDate(0, 0, -1)
	}

	parsed, err := time.ParseInLocation(isoDate, strings.TrimSpace(token), loc)
	if err != nil {
		return today
	}
	return parsed
}

// ResolveAndValidateDate is the stricter variant used by the voice path.
// The model-provided dateStr is parsed as ISO; a date more than one day in
// the future or more than one year in the past is treated as implausible,
// and the original transcript is scanned for relative-date keywords instead.
func ResolveAndValidateDate(dateStr, transcript string, ref time.Time, loc *time.Location) time.Time {
	today := dateIn(ref, loc)

	parsed, err := time.ParseInLocation(isoDate, strings.TrimSpace(dateStr), loc)
	if err != nil {
		return relativeDateFromText(transcript, today)
	}

	tomorrow := today.AddDate(0, 0, 1)
	oneYearAgo := today.AddDate(-1, 0, 0)
	if parsed.After(tomorrow) || parsed.Before(oneYearAgo) {
		return relativeDateFromText(transcript, today)
	}
	return parsed
}

// relativeDateFromText derives a date from relative-date keywords in the
// transcript. The "this week" and "this month" offsets are fixed heuristics,
// not calendar arithmetic.
func relativeDateFromText(transcript string, today time.Time) time.Time {
	lower := strings.ToLower(transcript)

	switch {
	case strings.Contains(lower, "yesterday"):
		return today.AddDate(0, 0, -1)
	case strings.Contains(lower, "today"), strings.Contains(lower, "now"):
		return today
	case strings.Contains(lower, "last week"):
		return today.AddDate(0, 0, -7)
	case strings.Contains(lower, "last month"):
		return today.AddDate(0, -1, 0)
	case strings.Contains(lower, "this week"):
		return today.AddDate(0, 0, -3)
	case strings.Contains(lower, "this month"):
		return today.AddDate(0, 0, -10)
	}

	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	for i, name := range weekdays {
		if strings.Contains(lower, name) {
			return mostRecentWeekday(today, i+1)
		}
	}

	return today
}

// mostRecentWeekday returns the most recent occurrence of the target ISO
// weekday (Monday=1 .. Sunday=7) on or before today. A target falling on
// today's weekday or later in the week resolves to last week's occurrence.
func mostRecentWeekday(today time.Time, target int) time.Time {
	daysBack := isoWeekday(today.Weekday()) - target
	if daysBack <= 0 {
		daysBack += 7
	}
	return today.AddDate(0, 0, -daysBack)
}

// isoWeekday converts Go's Sunday-based weekday to ISO numbering.
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
