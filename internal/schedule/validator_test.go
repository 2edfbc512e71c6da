package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateAgainstSchedules(t *testing.T) {
	profID := uuid.New()
	otherID := uuid.New()

	schedules := []ServiceSchedule{
		// Monday 09:00–18:00, active.
		{ID: uuid.New(), ProfessionalID: profID, Weekday: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true},
		// Tuesday exists but disabled.
		{ID: uuid.New(), ProfessionalID: profID, Weekday: 2, StartTime: "09:00", EndTime: "18:00", IsActive: false},
		// Wednesday split shift.
		{ID: uuid.New(), ProfessionalID: profID, Weekday: 3, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{ID: uuid.New(), ProfessionalID: profID, Weekday: 3, StartTime: "14:00", EndTime: "18:00", IsActive: true},
		// Another professional's Saturday row must not leak in.
		{ID: uuid.New(), ProfessionalID: otherID, Weekday: 6, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	}

	tests := []struct {
		name    string
		weekday time.Weekday
		start   int
		end     int
		wantErr error
	}{
		{name: "inside window", weekday: time.Monday, start: 600, end: 630},
		{name: "exactly fills window", weekday: time.Monday, start: 540, end: 1080},
		{name: "no rows for weekday", weekday: time.Saturday, start: 600, end: 630, wantErr: ErrScheduleMissing},
		{name: "rows exist but inactive", weekday: time.Tuesday, start: 600, end: 630, wantErr: ErrScheduleInactive},
		{name: "before window opens", weekday: time.Monday, start: 480, end: 510, wantErr: ErrOutsideWindow},
		{name: "runs past window close", weekday: time.Monday, start: 1070, end: 1100, wantErr: ErrOutsideWindow},
		{name: "split shift morning", weekday: time.Wednesday, start: 570, end: 600},
		{name: "split shift afternoon", weekday: time.Wednesday, start: 900, end: 930},
		{name: "split shift lunch gap", weekday: time.Wednesday, start: 750, end: 780, wantErr: ErrOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAgainstSchedules(profID, tt.weekday, tt.start, tt.end, schedules)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAgainstSchedulesNoRowsAtAll(t *testing.T) {
	err := validateAgainstSchedules(uuid.New(), time.Monday, 600, 630, nil)
	assert.ErrorIs(t, err, ErrScheduleMissing)
}

func TestValidateScheduleWindow(t *testing.T) {
	tests := []struct {
		name    string
		weekday int
		start   string
		end     string
		wantErr error
	}{
		{name: "weekday window ok", weekday: 1, start: "09:00", end: "18:00"},
		{name: "friday morning ok", weekday: 5, start: "09:00", end: "13:00"},
		{name: "saturday rejected", weekday: 6, start: "09:00", end: "12:00", wantErr: ErrOutsideWindow},
		{name: "sunday rejected", weekday: 0, start: "09:00", end: "12:00", wantErr: ErrOutsideWindow},
		{name: "friday afternoon rejected", weekday: 5, start: "09:00", end: "14:00", wantErr: ErrOutsideWindow},
		{name: "opens too early", weekday: 2, start: "08:00", end: "12:00", wantErr: ErrOutsideWindow},
		{name: "closes too late", weekday: 2, start: "09:00", end: "19:00", wantErr: ErrOutsideWindow},
		{name: "start equals end", weekday: 2, start: "10:00", end: "10:00", wantErr: ErrInvalidTime},
		{name: "start after end", weekday: 2, start: "12:00", end: "10:00", wantErr: ErrInvalidTime},
		{name: "garbage start time", weekday: 2, start: "late", end: "12:00", wantErr: ErrInvalidTime},
		{name: "weekday out of range", weekday: 7, start: "09:00", end: "12:00", wantErr: ErrOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScheduleWindow(tt.weekday, tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
