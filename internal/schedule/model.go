package schedule

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusAttended   AppointmentStatus = "attended"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusAttended || s == StatusCancelled
}

type ProfessionalRole string

const (
	RoleDoctor ProfessionalRole = "doctor"
	RoleNurse  ProfessionalRole = "nurse"
)

type ProfessionalStatus string

const (
	ProfessionalActive   ProfessionalStatus = "active"
	ProfessionalInactive ProfessionalStatus = "inactive"
)

// Track is the conflict domain an appointment type belongs to. Medical and
// nursing appointments run on independent professionals, so only same-track
// overlaps count as double bookings.
type Track string

const (
	TrackMedical Track = "medical"
	TrackNursing Track = "nursing"
	TrackNone    Track = ""
)

type AppointmentType struct {
	ID                    uuid.UUID
	Name                  string
	Slug                  string
	DurationMinutes       int
	DefaultProfessionalID *uuid.UUID
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Professional struct {
	ID        uuid.UUID
	Name      string
	Role      ProfessionalRole
	Specialty *string
	Status    ProfessionalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceSchedule is one recurring weekly availability window for one
// professional. A professional may have several windows on the same weekday
// (split shifts); only active windows count toward booking validation.
type ServiceSchedule struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	Weekday        int // 0=Sunday .. 6=Saturday
	StartTime      string
	EndTime        string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Appointment keeps the legacy loose linkage: Type matches an
// AppointmentType slug or name case-insensitively, and Professional is a
// display name rather than a foreign key. Newer paths carry ProfessionalID.
type Appointment struct {
	ID             uuid.UUID
	PatientID      uuid.UUID
	Type           string
	Date           time.Time // calendar date, midnight local
	Time           string    // HH:MM:SS
	Professional   string
	ProfessionalID *uuid.UUID
	Status         AppointmentStatus
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DayAvailability is one entry of an availability query result.
type DayAvailability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

// BookingCommand carries everything needed to validate and persist a booking.
type BookingCommand struct {
	PatientID      uuid.UUID
	ProfessionalID uuid.UUID
	Date           string // YYYY-MM-DD
	Time           string // HH:MM or HH:MM:SS
	Type           string
	Notes          string
}

// ScheduleCommand creates one weekly window for a professional.
type ScheduleCommand struct {
	ProfessionalID uuid.UUID
	Weekday        int
	StartTime      string
	EndTime        string
}
