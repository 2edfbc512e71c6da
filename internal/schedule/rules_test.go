package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Consulta", want: "consulta"},
		{in: "Aplicação", want: "aplicacao"},
		{in: "APLICAÇÃO TIRZEPATIDA", want: "aplicacao tirzepatida"},
		{in: "  Retorno ", want: "retorno"},
		{in: "Concluído", want: "concluido"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeLabel(tt.in), "input %q", tt.in)
	}
}

func TestClassifyTrack(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		in   string
		want Track
	}{
		{in: "consulta", want: TrackMedical},
		{in: "Consulta", want: TrackMedical},
		{in: "retorno", want: TrackMedical},
		{in: "aplicacao", want: TrackNursing},
		{in: "Aplicação", want: TrackNursing},
		{in: "tirzepatida", want: TrackNursing}, // via alias
		{in: "aplicação tirzepatida", want: TrackNursing},
		{in: "exame", want: TrackNone},
		{in: "", want: TrackNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.ClassifyTrack(tt.in), "input %q", tt.in)
	}
}

func TestResolveDuration(t *testing.T) {
	rules := DefaultRules()
	types := []AppointmentType{
		{ID: uuid.New(), Name: "Consulta", Slug: "consulta", DurationMinutes: 45},
		{ID: uuid.New(), Name: "Aplicação Tirzepatida", Slug: "aplicacao_tirzepatida", DurationMinutes: 15},
		{ID: uuid.New(), Name: "Retorno", Slug: "retorno", DurationMinutes: 0}, // misconfigured row
	}

	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "match by slug", in: "consulta", want: 45},
		{name: "match case-insensitively", in: "CONSULTA", want: 45},
		{name: "match by display name", in: "Aplicação Tirzepatida", want: 15},
		{name: "alias applied before lookup", in: "tirzepatida", want: 15},
		{name: "unknown type falls back", in: "exame", want: DefaultDuration},
		{name: "empty identifier falls back", in: "", want: DefaultDuration},
		{name: "zero duration never returned", in: "retorno", want: DefaultDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.ResolveDuration(tt.in, types)
			assert.Equal(t, tt.want, got)
			assert.Positive(t, got)
		})
	}
}

func TestIsBlocking(t *testing.T) {
	rules := DefaultRules()

	blocking := []AppointmentStatus{
		"scheduled", "Scheduled", "confirmed", "completed", "pending", "in_progress", "attended",
		"agendado", "Confirmado", "concluído", "pendente",
	}
	for _, s := range blocking {
		assert.True(t, rules.IsBlocking(s), "status %q", s)
	}

	nonBlocking := []AppointmentStatus{"cancelled", "cancelado", "no_show", "faltou", ""}
	for _, s := range nonBlocking {
		assert.False(t, rules.IsBlocking(s), "status %q", s)
	}
}

func TestRulesAreSwappable(t *testing.T) {
	custom := Rules{
		TypeAliases:      map[string]string{},
		MedicalTypes:     setOf("checkup"),
		NursingTypes:     setOf("vaccination"),
		BlockingStatuses: setOf("booked"),
	}

	assert.Equal(t, TrackMedical, custom.ClassifyTrack("checkup"))
	assert.Equal(t, TrackNone, custom.ClassifyTrack("consulta"))
	assert.True(t, custom.IsBlocking("booked"))
	assert.False(t, custom.IsBlocking("scheduled"))
}
