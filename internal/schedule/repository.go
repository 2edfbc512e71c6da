package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate             = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime             = errors.New("invalid time, expected HH:MM")
	ErrScheduleMissing         = errors.New("professional does not work this day")
	ErrScheduleInactive        = errors.New("schedule inactive for this day")
	ErrOutsideWindow           = errors.New("time outside professional's scale")
	ErrConflict                = errors.New("slot conflicts with an existing appointment")
	ErrProfessionalNotFound    = errors.New("professional not found")
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrBookingInProgress       = errors.New("another booking for this slot is in progress, please retry")
)

// ConflictError reports the occupied window that blocked a booking so the
// caller can show the patient what is already taken.
type ConflictError struct {
	StartMinutes int
	EndMinutes   int
	Track        Track
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot overlaps an existing %s appointment from %s to %s",
		e.Track, minutesToClock(e.StartMinutes), minutesToClock(e.EndMinutes))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Window returns the occupied interval formatted as HH:MM–HH:MM.
func (e *ConflictError) Window() string {
	return minutesToClock(e.StartMinutes) + "–" + minutesToClock(e.EndMinutes)
}

// Storage contains all persistence interactions needed by the engine.
type Storage interface {
	GetAppointmentsByDateRange(ctx context.Context, start, end time.Time) ([]Appointment, error)
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListAppointmentsByStatus(ctx context.Context, status AppointmentStatus) ([]Appointment, error)

	GetAllAppointmentTypes(ctx context.Context) ([]AppointmentType, error)
	GetAllProfessionals(ctx context.Context) ([]Professional, error)
	GetProfessionalByID(ctx context.Context, id uuid.UUID) (*Professional, error)

	GetAllServiceSchedules(ctx context.Context) ([]ServiceSchedule, error)
	GetSchedulesByProfessional(ctx context.Context, professionalID uuid.UUID) ([]ServiceSchedule, error)
	CreateServiceSchedule(ctx context.Context, s *ServiceSchedule) (*ServiceSchedule, error)

	CreateAppointment(ctx context.Context, a *Appointment) (*Appointment, error)

	// UpdateAppointmentStatus is a compare-and-set: the row only moves when
	// it is still in the expected `from` state, which keeps the lifecycle
	// worker idempotent and safe to run from several processes.
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to AppointmentStatus) (*Appointment, error)
}
