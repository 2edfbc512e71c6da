package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStorage struct {
	pool *pgxpool.Pool
}

func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var professionalID *uuid.UUID

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.Type,
		&a.Date,
		&a.Time,
		&a.Professional,
		&professionalID,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.ProfessionalID = professionalID
	return &a, nil
}

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	var specialty *string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Role,
		&specialty,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	p.Specialty = specialty
	return &p, nil
}

func scanServiceSchedule(row pgx.Row) (*ServiceSchedule, error) {
	var s ServiceSchedule

	err := row.Scan(
		&s.ID,
		&s.ProfessionalID,
		&s.Weekday,
		&s.StartTime,
		&s.EndTime,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func scanAppointmentType(row pgx.Row) (*AppointmentType, error) {
	var t AppointmentType
	var defaultProfessionalID *uuid.UUID

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.DurationMinutes,
		&defaultProfessionalID,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.DefaultProfessionalID = defaultProfessionalID
	return &t, nil
}

const appointmentColumns = `id, patient_id, type, date, time, professional, professional_id, status, notes, created_at, updated_at`

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Interface methods

func (r *PgStorage) GetAppointmentsByDateRange(ctx context.Context, start, end time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE date >= $1 AND date <= $2
		ORDER BY date, time
	`, start, end)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgStorage) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgStorage) ListAppointmentsByStatus(ctx context.Context, status AppointmentStatus) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE status = $1
		ORDER BY date, time
	`, status)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgStorage) GetAllAppointmentTypes(ctx context.Context) ([]AppointmentType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, duration_minutes, default_professional_id, is_active, created_at, updated_at
		FROM appointment_types
		WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AppointmentType
	for rows.Next() {
		t, err := scanAppointmentType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgStorage) GetAllProfessionals(ctx context.Context) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, role, specialty, status, created_at, updated_at
		FROM professionals
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgStorage) GetProfessionalByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, role, specialty, status, created_at, updated_at
		FROM professionals
		WHERE id = $1
	`, id)
	return scanProfessional(row)
}

func (r *PgStorage) GetAllServiceSchedules(ctx context.Context) ([]ServiceSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, professional_id, weekday, start_time, end_time, is_active, created_at, updated_at
		FROM service_schedules
		ORDER BY professional_id, weekday, start_time
	`)
	if err != nil {
		return nil, err
	}
	return collectServiceSchedules(rows)
}

func (r *PgStorage) GetSchedulesByProfessional(ctx context.Context, professionalID uuid.UUID) ([]ServiceSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, professional_id, weekday, start_time, end_time, is_active, created_at, updated_at
		FROM service_schedules
		WHERE professional_id = $1
		ORDER BY weekday, start_time
	`, professionalID)
	if err != nil {
		return nil, err
	}
	return collectServiceSchedules(rows)
}

func collectServiceSchedules(rows pgx.Rows) ([]ServiceSchedule, error) {
	defer rows.Close()

	var result []ServiceSchedule
	for rows.Next() {
		s, err := scanServiceSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgStorage) CreateServiceSchedule(ctx context.Context, s *ServiceSchedule) (*ServiceSchedule, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO service_schedules (id, professional_id, weekday, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, professional_id, weekday, start_time, end_time, is_active, created_at, updated_at
	`, id, s.ProfessionalID, s.Weekday, s.StartTime, s.EndTime, s.IsActive)

	created, err := scanServiceSchedule(row)
	if err != nil {
		return nil, fmt.Errorf("insert service schedule: %w", err)
	}
	return created, nil
}

func (r *PgStorage) CreateAppointment(ctx context.Context, a *Appointment) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, type, date, time, professional, professional_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING `+appointmentColumns+`
	`, id, a.PatientID, a.Type, a.Date, a.Time, a.Professional, a.ProfessionalID, a.Status, a.Notes)

	return scanAppointment(row)
}

func (r *PgStorage) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to AppointmentStatus) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		RETURNING `+appointmentColumns+`
	`, id, to, from)

	return scanAppointment(row)
}
