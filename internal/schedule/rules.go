package schedule

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultDuration is used whenever an appointment type cannot be resolved.
const DefaultDuration = 30

// SlotStep is the granularity of the availability grid, in minutes.
const SlotStep = 30

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeLabel lowercases and strips diacritics so that "Aplicação" and
// "aplicacao" compare equal. Every label comparison in the engine goes
// through here; classification and blocking-status checks must not drift
// apart.
func normalizeLabel(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Rules holds the lookup tables the engine consults. They are plain data so
// tests can run with alternate configurations; keys must already be
// normalized.
type Rules struct {
	// TypeAliases maps patient-facing shorthand to the canonical slug,
	// applied before type lookup.
	TypeAliases map[string]string

	MedicalTypes map[string]struct{}
	NursingTypes map[string]struct{}

	// BlockingStatuses are the appointment statuses that occupy a slot in
	// availability queries. Legacy rows carry Portuguese labels, so both
	// vocabularies are listed.
	BlockingStatuses map[string]struct{}
}

func setOf(labels ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		m[normalizeLabel(l)] = struct{}{}
	}
	return m
}

func DefaultRules() Rules {
	return Rules{
		TypeAliases: map[string]string{
			"tirzepatida": "aplicacao_tirzepatida",
		},
		MedicalTypes: setOf("consulta", "retorno"),
		NursingTypes: setOf(
			"aplicacao",
			"aplicação",
			"tirzepatida",
			"aplicacao_tirzepatida",
			"aplicação tirzepatida",
		),
		BlockingStatuses: setOf(
			"scheduled", "confirmed", "completed", "pending", "in_progress", "attended",
			"agendado", "confirmado", "concluido", "pendente",
		),
	}
}

// ClassifyTrack places an appointment type on the medical or nursing track.
// Unknown types get TrackNone and never conflict with anything.
func (r Rules) ClassifyTrack(typeIdentifier string) Track {
	key := normalizeLabel(typeIdentifier)
	if alias, ok := r.TypeAliases[key]; ok {
		key = alias
	}
	if _, ok := r.MedicalTypes[key]; ok {
		return TrackMedical
	}
	if _, ok := r.NursingTypes[key]; ok {
		return TrackNursing
	}
	return TrackNone
}

// ResolveDuration maps a type identifier to its configured duration in
// minutes, matching slug and name case- and accent-insensitively. Unmatched
// identifiers fall back to DefaultDuration; the result is always positive.
func (r Rules) ResolveDuration(typeIdentifier string, types []AppointmentType) int {
	key := normalizeLabel(typeIdentifier)
	if alias, ok := r.TypeAliases[key]; ok {
		key = alias
	}

	for _, t := range types {
		if normalizeLabel(t.Slug) == key || normalizeLabel(t.Name) == key {
			if t.DurationMinutes > 0 {
				return t.DurationMinutes
			}
			return DefaultDuration
		}
	}

	return DefaultDuration
}

// IsBlocking reports whether an appointment in the given status occupies its
// slot for availability purposes.
func (r Rules) IsBlocking(status AppointmentStatus) bool {
	_, ok := r.BlockingStatuses[normalizeLabel(string(status))]
	return ok
}
