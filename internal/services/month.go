package services

import (
	"time"

	apperrors "spendwise/internal/errors"
)

const monthLayout = "2006-01"

// parseMonth validates a "YYYY-MM" month string.
func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidMonth
	}
	return t, nil
}

// monthRange returns the [start, end) date interval covering the given month.
func monthRange(month string) (start, end time.Time, err error) {
	start, err = parseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// currentMonth formats now as "YYYY-MM".
func currentMonth(now time.Time) string {
	return now.Format(monthLayout)
}
