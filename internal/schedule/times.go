package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// timeToMinutes converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// A bare hour ("14") is accepted with the minute treated as 0; seconds are
// ignored.
func timeToMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 0 || parts[0] == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	minute := 0
	if len(parts) > 1 && parts[1] != "" {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}

	return hour*60 + minute, nil
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// intervalsOverlap uses half-open intervals: touching endpoints do not
// overlap.
func intervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

type window struct {
	open  int
	close int
}

// businessWindow returns the clinic's opening window for a weekday.
// Mon–Thu 09:00–18:00, Fri 09:00–13:00, closed on weekends.
func businessWindow(wd time.Weekday) (window, bool) {
	switch wd {
	case time.Saturday, time.Sunday:
		return window{}, false
	case time.Friday:
		return window{open: 9 * 60, close: 13 * 60}, true
	default:
		return window{open: 9 * 60, close: 18 * 60}, true
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
