package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicore/scheduling/internal/schedule"
)

// SchedulingEngine is the slice of the engine the HTTP layer needs.
type SchedulingEngine interface {
	GetAvailability(ctx context.Context, startDate, endDate, appointmentType string) ([]schedule.DayAvailability, error)
	ValidateBooking(ctx context.Context, professionalID uuid.UUID, date, clock, appointmentType string) error
	CreateBooking(ctx context.Context, cmd schedule.BookingCommand) (*schedule.Appointment, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) (*schedule.Appointment, error)
	ListAppointmentsByDate(ctx context.Context, date string) ([]schedule.Appointment, error)
	CreateServiceSchedule(ctx context.Context, cmd schedule.ScheduleCommand) (*schedule.ServiceSchedule, error)
	ListSchedulesByProfessional(ctx context.Context, professionalID uuid.UUID) ([]schedule.ServiceSchedule, error)
	AdvanceLifecycle(ctx context.Context) error
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

func getAvailabilityHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start := q.Get("start")
		if start == "" {
			start = q.Get("date")
		}
		if start == "" {
			writeError(w, http.StatusBadRequest, "missing_start_date", "start query parameter is required")
			return
		}

		days, err := svc.GetAvailability(r.Context(), start, q.Get("end"), q.Get("type"))
		if err != nil {
			handleEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, days)
	}
}

func createAppointmentHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}

		professionalID, err := uuid.Parse(req.ProfessionalID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "professional_id must be a valid UUID")
			return
		}

		appt, err := svc.CreateBooking(r.Context(), schedule.BookingCommand{
			PatientID:      patientID,
			ProfessionalID: professionalID,
			Date:           req.Date,
			Time:           req.Time,
			Type:           req.Type,
			Notes:          req.Notes,
		})
		if err != nil {
			handleEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func validateBookingHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ValidateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		professionalID, err := uuid.Parse(req.ProfessionalID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "professional_id must be a valid UUID")
			return
		}

		if err := svc.ValidateBooking(r.Context(), professionalID, req.Date, req.Time, req.Type); err != nil {
			handleEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ValidateBookingResponse{OK: true})
	}
}

func listAppointmentsHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			writeError(w, http.StatusBadRequest, "missing_date", "date query parameter is required")
			return
		}

		appts, err := svc.ListAppointmentsByDate(r.Context(), date)
		if err != nil {
			handleEngineError(w, err)
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, toAppointmentResponse(&appts[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func cancelAppointmentHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.CancelAppointment(r.Context(), id)
		if err != nil {
			handleEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func createScheduleHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		professionalID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		var req CreateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		created, err := svc.CreateServiceSchedule(r.Context(), schedule.ScheduleCommand{
			ProfessionalID: professionalID,
			Weekday:        req.Weekday,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
		})
		if err != nil {
			handleEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toScheduleResponse(created))
	}
}

func listSchedulesHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		professionalID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professional_id", "id must be a valid UUID")
			return
		}

		schedules, err := svc.ListSchedulesByProfessional(r.Context(), professionalID)
		if err != nil {
			handleEngineError(w, err)
			return
		}

		resp := make([]ScheduleResponse, 0, len(schedules))
		for i := range schedules {
			resp = append(resp, toScheduleResponse(&schedules[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func advanceLifecycleHandler(svc SchedulingEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.AdvanceLifecycle(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleEngineError(w http.ResponseWriter, err error) {
	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:   "slot_conflict",
			Details: conflict.Error(),
			Window:  conflict.Window(),
		})
		return
	}

	switch {
	case errors.Is(err, schedule.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, schedule.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
	case errors.Is(err, schedule.ErrProfessionalNotFound):
		writeError(w, http.StatusNotFound, "professional_not_found", err.Error())
	case errors.Is(err, schedule.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, schedule.ErrScheduleMissing):
		writeError(w, http.StatusUnprocessableEntity, "schedule_missing", err.Error())
	case errors.Is(err, schedule.ErrScheduleInactive):
		writeError(w, http.StatusUnprocessableEntity, "schedule_inactive", err.Error())
	case errors.Is(err, schedule.ErrOutsideWindow):
		writeError(w, http.StatusUnprocessableEntity, "outside_window", err.Error())
	case errors.Is(err, schedule.ErrConflict):
		writeError(w, http.StatusConflict, "slot_conflict", err.Error())
	case errors.Is(err, schedule.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, schedule.ErrBookingInProgress):
		writeError(w, http.StatusConflict, "booking_in_progress", "slot is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
