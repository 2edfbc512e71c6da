package schedule

import "github.com/google/uuid"

// proposedBooking is the slot a patient is trying to take. ExcludeID lets a
// stored appointment be revalidated without conflicting with itself.
type proposedBooking struct {
	StartMinutes    int
	DurationMinutes int
	Type            string
	ExcludeID       uuid.UUID
}

// findConflict applies the track-aware overlap rule at booking time: a
// proposed slot is rejected only when it overlaps a non-cancelled same-day
// appointment on the same track. Cross-track overlaps are legal because the
// two tracks run on independent professionals. This is deliberately less
// conservative than the track-agnostic filter used by availability queries.
func findConflict(p proposedBooking, sameDay []Appointment, types []AppointmentType, rules Rules) *ConflictError {
	track := rules.ClassifyTrack(p.Type)
	if track == TrackNone {
		return nil
	}

	end := p.StartMinutes + p.DurationMinutes

	for _, a := range sameDay {
		if a.Status == StatusCancelled {
			continue
		}
		if p.ExcludeID != uuid.Nil && a.ID == p.ExcludeID {
			continue
		}
		if rules.ClassifyTrack(a.Type) != track {
			continue
		}

		start, err := timeToMinutes(a.Time)
		if err != nil {
			continue
		}
		occupiedEnd := start + rules.ResolveDuration(a.Type, types)

		if intervalsOverlap(p.StartMinutes, end, start, occupiedEnd) {
			return &ConflictError{StartMinutes: start, EndMinutes: occupiedEnd, Track: track}
		}
	}

	return nil
}
