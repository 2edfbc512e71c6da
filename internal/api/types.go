package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/scheduling/internal/schedule"
)

type CreateAppointmentRequest struct {
	PatientID      string `json:"patient_id"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Type           string `json:"type"`
	Notes          string `json:"notes,omitempty"`
}

type ValidateBookingRequest struct {
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Type           string `json:"type"`
}

type ValidateBookingResponse struct {
	OK bool `json:"ok"`
}

type CreateScheduleRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AppointmentResponse struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	Type         string    `json:"type"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Professional string    `json:"professional"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ScheduleResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Weekday        int       `json:"weekday"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	IsActive       bool      `json:"is_active"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Window  string `json:"conflicting_window,omitempty"`
}

func toAppointmentResponse(a *schedule.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		PatientID:    a.PatientID,
		Type:         a.Type,
		Date:         a.Date.Format("2006-01-02"),
		Time:         a.Time,
		Professional: a.Professional,
		Status:       string(a.Status),
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}

func toScheduleResponse(s *schedule.ServiceSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:             s.ID,
		ProfessionalID: s.ProfessionalID,
		Weekday:        s.Weekday,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		IsActive:       s.IsActive,
	}
}
