package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conflictTestTypes = []AppointmentType{
	{ID: uuid.New(), Name: "Consulta", Slug: "consulta", DurationMinutes: 30},
	{ID: uuid.New(), Name: "Retorno", Slug: "retorno", DurationMinutes: 30},
	{ID: uuid.New(), Name: "Aplicação", Slug: "aplicacao", DurationMinutes: 15},
}

func appt(typ string, clock string, status AppointmentStatus) Appointment {
	return Appointment{
		ID:     uuid.New(),
		Type:   typ,
		Date:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		Time:   clock,
		Status: status,
	}
}

func TestFindConflictSameTrack(t *testing.T) {
	existing := []Appointment{appt("consulta", "10:00:00", StatusScheduled)}

	// "retorno" is on the medical track too, 10:15 overlaps 10:00–10:30.
	c := findConflict(proposedBooking{
		StartMinutes:    615,
		DurationMinutes: 30,
		Type:            "retorno",
	}, existing, conflictTestTypes, DefaultRules())

	require.NotNil(t, c)
	assert.Equal(t, 600, c.StartMinutes)
	assert.Equal(t, 630, c.EndMinutes)
	assert.Equal(t, "10:00–10:30", c.Window())
	assert.ErrorIs(t, c, ErrConflict)
}

func TestFindConflictCrossTrack(t *testing.T) {
	existing := []Appointment{appt("consulta", "10:00:00", StatusScheduled)}

	// Nursing overlaps medical at the same wall-clock slot: allowed.
	c := findConflict(proposedBooking{
		StartMinutes:    600,
		DurationMinutes: 15,
		Type:            "aplicacao",
	}, existing, conflictTestTypes, DefaultRules())

	assert.Nil(t, c)
}

func TestFindConflictIgnoresCancelled(t *testing.T) {
	existing := []Appointment{appt("consulta", "10:00:00", StatusCancelled)}

	c := findConflict(proposedBooking{
		StartMinutes:    600,
		DurationMinutes: 30,
		Type:            "consulta",
	}, existing, conflictTestTypes, DefaultRules())

	assert.Nil(t, c)
}

func TestFindConflictNoFalseSelfConflict(t *testing.T) {
	a := appt("consulta", "10:00:00", StatusScheduled)

	c := findConflict(proposedBooking{
		StartMinutes:    600,
		DurationMinutes: 30,
		Type:            "consulta",
		ExcludeID:       a.ID,
	}, []Appointment{a}, conflictTestTypes, DefaultRules())

	assert.Nil(t, c)
}

func TestFindConflictTouchingSlotsDoNotOverlap(t *testing.T) {
	existing := []Appointment{appt("consulta", "10:00:00", StatusScheduled)}

	// 10:30 starts exactly where the existing one ends.
	c := findConflict(proposedBooking{
		StartMinutes:    630,
		DurationMinutes: 30,
		Type:            "consulta",
	}, existing, conflictTestTypes, DefaultRules())

	assert.Nil(t, c)
}

func TestFindConflictUnclassifiedTypeNeverConflicts(t *testing.T) {
	existing := []Appointment{appt("consulta", "10:00:00", StatusScheduled)}

	c := findConflict(proposedBooking{
		StartMinutes:    600,
		DurationMinutes: 30,
		Type:            "exame",
	}, existing, conflictTestTypes, DefaultRules())
	assert.Nil(t, c)

	// And an unclassified existing appointment blocks nothing either.
	c = findConflict(proposedBooking{
		StartMinutes:    600,
		DurationMinutes: 30,
		Type:            "consulta",
	}, []Appointment{appt("exame", "10:00:00", StatusScheduled)}, conflictTestTypes, DefaultRules())
	assert.Nil(t, c)
}

func TestFindConflictAccentInsensitive(t *testing.T) {
	existing := []Appointment{appt("Aplicação", "10:00:00", StatusScheduled)}

	c := findConflict(proposedBooking{
		StartMinutes:    600,
		DurationMinutes: 15,
		Type:            "aplicacao",
	}, existing, conflictTestTypes, DefaultRules())

	require.NotNil(t, c)
	assert.Equal(t, TrackNursing, c.Track)
}

func TestFindConflictUsesExistingAppointmentDuration(t *testing.T) {
	// Existing aplicacao occupies 10:00–10:15 only; a nursing booking at
	// 10:15 must pass.
	existing := []Appointment{appt("aplicacao", "10:00:00", StatusScheduled)}

	c := findConflict(proposedBooking{
		StartMinutes:    615,
		DurationMinutes: 15,
		Type:            "tirzepatida",
	}, existing, conflictTestTypes, DefaultRules())

	assert.Nil(t, c)
}
