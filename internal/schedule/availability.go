package schedule

import "time"

type occupied struct {
	start int
	end   int
}

// computeAvailability enumerates the bookable slots for each weekday in
// [start, end]. Candidates run on the 30-minute grid from opening time; a
// candidate survives when the requested duration fits before closing, it is
// not in the past (for today), and it touches no occupied interval on that
// date. Occupancy here is track-agnostic on purpose: the availability view
// is a convenience filter, stricter booking-time checks are track-aware.
func computeAvailability(start, end time.Time, durationMin int, appts []Appointment, types []AppointmentType, rules Rules, now time.Time) []DayAvailability {
	if durationMin <= 0 {
		durationMin = DefaultDuration
	}

	byDate := make(map[string][]occupied)
	for _, a := range appts {
		if !rules.IsBlocking(a.Status) {
			continue
		}
		s, err := timeToMinutes(a.Time)
		if err != nil {
			continue
		}
		key := a.Date.Format(dateLayout)
		byDate[key] = append(byDate[key], occupied{start: s, end: s + rules.ResolveDuration(a.Type, types)})
	}

	today := dateOnly(now)
	nowMin := minutesOfDay(now)

	var out []DayAvailability

	for day := dateOnly(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		bw, open := businessWindow(day.Weekday())
		if !open {
			continue
		}

		taken := byDate[day.Format(dateLayout)]
		isToday := sameDate(day, today)

		slots := []string{}
		for slot := bw.open; slot+durationMin <= bw.close; slot += SlotStep {
			if isToday && slot <= nowMin {
				continue
			}

			free := true
			for _, o := range taken {
				if intervalsOverlap(slot, slot+durationMin, o.start, o.end) {
					free = false
					break
				}
			}
			if free {
				slots = append(slots, minutesToClock(slot))
			}
		}

		out = append(out, DayAvailability{
			Date:           day.Format(dateLayout),
			AvailableSlots: slots,
		})
	}

	return out
}
