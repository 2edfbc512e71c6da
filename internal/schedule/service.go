package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	redisclient "github.com/clinicore/scheduling/internal/redis"
)

// Engine is the availability and conflict-resolution core. It is logically
// single-threaded per request: reads, then validation, then at most one
// write. Booking writes are additionally serialized per (track, date) with a
// distributed lock because the conflict check is check-then-act.
type Engine struct {
	store  Storage
	locker redisclient.Locker
	rules  Rules
	log    zerolog.Logger
	now    func() time.Time
}

func NewEngine(store Storage, locker redisclient.Locker, rules Rules, log zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		locker: locker,
		rules:  rules,
		log:    log,
		now:    time.Now,
	}
}

// GetAvailability lists bookable slots per weekday in [startDate, endDate].
// endDate defaults to startDate; the requested type decides the slot
// duration, defaulting to 30 minutes.
func (e *Engine) GetAvailability(ctx context.Context, startDate, endDate, appointmentType string) ([]DayAvailability, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		if end, err = parseDate(endDate); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidDate, endDate, startDate)
	}

	types, err := e.store.GetAllAppointmentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load appointment types: %w", err)
	}

	duration := DefaultDuration
	if appointmentType != "" {
		duration = e.rules.ResolveDuration(appointmentType, types)
	}

	appts, err := e.store.GetAppointmentsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	return computeAvailability(start, end, duration, appts, types, e.rules, e.now()), nil
}

// ValidateBooking runs the full pre-persistence check chain: duration
// resolution, weekly schedule validation, then track-aware conflict
// detection. A nil return means the slot can be booked.
func (e *Engine) ValidateBooking(ctx context.Context, professionalID uuid.UUID, date, clock, appointmentType string) error {
	_, err := e.validateBooking(ctx, professionalID, date, clock, appointmentType, uuid.Nil)
	return err
}

type validatedBooking struct {
	date     time.Time
	startMin int
	duration int
	prof     *Professional
}

func (e *Engine) validateBooking(ctx context.Context, professionalID uuid.UUID, date, clock, appointmentType string, excludeID uuid.UUID) (*validatedBooking, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	startMin, err := timeToMinutes(clock)
	if err != nil {
		return nil, err
	}

	prof, err := e.store.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load professional: %w", err)
	}

	types, err := e.store.GetAllAppointmentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load appointment types: %w", err)
	}
	duration := e.rules.ResolveDuration(appointmentType, types)

	schedules, err := e.store.GetSchedulesByProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	if err := validateAgainstSchedules(professionalID, day.Weekday(), startMin, startMin+duration, schedules); err != nil {
		return nil, err
	}

	sameDay, err := e.store.GetAppointmentsByDateRange(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("load same-day appointments: %w", err)
	}

	if conflict := findConflict(proposedBooking{
		StartMinutes:    startMin,
		DurationMinutes: duration,
		Type:            appointmentType,
		ExcludeID:       excludeID,
	}, sameDay, types, e.rules); conflict != nil {
		return nil, conflict
	}

	return &validatedBooking{date: day, startMin: startMin, duration: duration, prof: prof}, nil
}

// CreateBooking validates and persists an appointment. The conflict check is
// re-run inside the per-(track, date) lock so two concurrent requests for
// the same slot cannot both pass it.
func (e *Engine) CreateBooking(ctx context.Context, cmd BookingCommand) (*Appointment, error) {
	track := e.rules.ClassifyTrack(cmd.Type)
	day, err := parseDate(cmd.Date)
	if err != nil {
		return nil, err
	}

	var created *Appointment

	lockKey := fmt.Sprintf("booking:%s:%s", track, day.Format(dateLayout))
	err = e.locker.WithLock(ctx, lockKey, func(lockCtx context.Context) error {
		v, err := e.validateBooking(lockCtx, cmd.ProfessionalID, cmd.Date, cmd.Time, cmd.Type, uuid.Nil)
		if err != nil {
			return err
		}

		appt := &Appointment{
			PatientID:      cmd.PatientID,
			Type:           cmd.Type,
			Date:           v.date,
			Time:           minutesToClock(v.startMin) + ":00",
			Professional:   v.prof.Name,
			ProfessionalID: &v.prof.ID,
			Status:         StatusScheduled,
			Notes:          cmd.Notes,
		}

		created, err = e.store.CreateAppointment(lockCtx, appt)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		e.log.Info().
			Str("appointment_id", created.ID.String()).
			Str("professional", created.Professional).
			Str("date", created.Date.Format(dateLayout)).
			Str("time", created.Time).
			Str("type", created.Type).
			Msg("appointment booked")

		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingInProgress
		}
		return nil, err
	}

	return created, nil
}

// CancelAppointment marks an appointment cancelled. Cancellation is allowed
// from any non-terminal state and is itself terminal.
func (e *Engine) CancelAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := e.store.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if appt.Status.IsTerminal() {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := e.store.UpdateAppointmentStatus(ctx, id, appt.Status, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	e.log.Info().Str("appointment_id", id.String()).Msg("appointment cancelled")
	return updated, nil
}

// CreateServiceSchedule adds a weekly window for a professional after
// checking it against the clinic's opening envelope.
func (e *Engine) CreateServiceSchedule(ctx context.Context, cmd ScheduleCommand) (*ServiceSchedule, error) {
	if _, err := e.store.GetProfessionalByID(ctx, cmd.ProfessionalID); err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load professional: %w", err)
	}

	if err := ValidateScheduleWindow(cmd.Weekday, cmd.StartTime, cmd.EndTime); err != nil {
		return nil, err
	}

	return e.store.CreateServiceSchedule(ctx, &ServiceSchedule{
		ProfessionalID: cmd.ProfessionalID,
		Weekday:        cmd.Weekday,
		StartTime:      cmd.StartTime,
		EndTime:        cmd.EndTime,
		IsActive:       true,
	})
}

// ListSchedulesByProfessional returns a professional's weekly windows.
func (e *Engine) ListSchedulesByProfessional(ctx context.Context, professionalID uuid.UUID) ([]ServiceSchedule, error) {
	if _, err := e.store.GetProfessionalByID(ctx, professionalID); err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load professional: %w", err)
	}
	return e.store.GetSchedulesByProfessional(ctx, professionalID)
}

// ListAppointmentsByDate returns all appointments on one calendar date.
func (e *Engine) ListAppointmentsByDate(ctx context.Context, date string) ([]Appointment, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return e.store.GetAppointmentsByDateRange(ctx, day, day)
}

// AdvanceLifecycle promotes appointments along
// scheduled -> in_progress -> attended based on wall-clock time. It is
// idempotent and never touches terminal states; the compare-and-set storage
// update makes concurrent runs safe.
func (e *Engine) AdvanceLifecycle(ctx context.Context) error {
	now := e.now()
	today := dateOnly(now)
	nowMin := minutesOfDay(now)

	types, err := e.store.GetAllAppointmentTypes(ctx)
	if err != nil {
		return fmt.Errorf("load appointment types: %w", err)
	}

	// Step 1: today's scheduled appointments whose start time has passed.
	scheduled, err := e.store.ListAppointmentsByStatus(ctx, StatusScheduled)
	if err != nil {
		return fmt.Errorf("list scheduled appointments: %w", err)
	}

	started := 0
	for _, a := range scheduled {
		if !sameDate(a.Date, today) {
			continue
		}
		start, err := timeToMinutes(a.Time)
		if err != nil || start > nowMin {
			continue
		}
		if _, err := e.store.UpdateAppointmentStatus(ctx, a.ID, StatusScheduled, StatusInProgress); err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				continue // somebody else already moved it
			}
			e.log.Warn().Err(err).Str("appointment_id", a.ID.String()).Msg("failed to start appointment")
			continue
		}
		started++
	}

	// Step 2: in-progress appointments whose computed end has passed.
	inProgress, err := e.store.ListAppointmentsByStatus(ctx, StatusInProgress)
	if err != nil {
		return fmt.Errorf("list in-progress appointments: %w", err)
	}

	finished := 0
	for _, a := range inProgress {
		start, err := timeToMinutes(a.Time)
		if err != nil {
			continue
		}
		endAt := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, start+e.rules.ResolveDuration(a.Type, types), 0, 0, a.Date.Location())
		if now.Before(endAt) {
			continue
		}
		if _, err := e.store.UpdateAppointmentStatus(ctx, a.ID, StatusInProgress, StatusAttended); err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				continue
			}
			e.log.Warn().Err(err).Str("appointment_id", a.ID.String()).Msg("failed to finish appointment")
			continue
		}
		finished++
	}

	if started > 0 || finished > 0 {
		e.log.Info().Int("started", started).Int("finished", finished).Msg("lifecycle advanced")
	}

	return nil
}
