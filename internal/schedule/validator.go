package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateAgainstSchedules checks a proposed [start, end) interval against a
// professional's weekly windows. The three failure modes are distinct so the
// front end can tell the patient what went wrong:
//
//	no rows for the weekday      -> ErrScheduleMissing
//	rows exist, none active      -> ErrScheduleInactive
//	active rows, none covers it  -> ErrOutsideWindow
func validateAgainstSchedules(professionalID uuid.UUID, weekday time.Weekday, startMin, endMin int, schedules []ServiceSchedule) error {
	var dayRows, activeRows int

	for _, s := range schedules {
		if s.ProfessionalID != professionalID || s.Weekday != int(weekday) {
			continue
		}
		dayRows++
		if !s.IsActive {
			continue
		}
		activeRows++

		open, err := timeToMinutes(s.StartTime)
		if err != nil {
			continue
		}
		close, err := timeToMinutes(s.EndTime)
		if err != nil {
			continue
		}

		if startMin >= open && endMin <= close {
			return nil
		}
	}

	switch {
	case dayRows == 0:
		return ErrScheduleMissing
	case activeRows == 0:
		return ErrScheduleInactive
	default:
		return ErrOutsideWindow
	}
}

// ValidateScheduleWindow guards creation and editing of ServiceSchedule rows
// themselves: windows must sit inside the clinic's opening envelope and the
// clinic does not open on weekends.
func ValidateScheduleWindow(weekday int, startTime, endTime string) error {
	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("%w: weekday %d out of range", ErrOutsideWindow, weekday)
	}

	bw, open := businessWindow(time.Weekday(weekday))
	if !open {
		return fmt.Errorf("%w: clinic closed on %s", ErrOutsideWindow, time.Weekday(weekday))
	}

	start, err := timeToMinutes(startTime)
	if err != nil {
		return err
	}
	end, err := timeToMinutes(endTime)
	if err != nil {
		return err
	}

	if start >= end {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTime, startTime, endTime)
	}
	if start < bw.open || end > bw.close {
		return fmt.Errorf("%w: window %s–%s outside opening hours %s–%s",
			ErrOutsideWindow, minutesToClock(start), minutesToClock(end),
			minutesToClock(bw.open), minutesToClock(bw.close))
	}

	return nil
}
