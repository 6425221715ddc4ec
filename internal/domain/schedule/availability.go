package schedule

import "time"

// ===============================
// Disponibilidade
// ===============================

// Available decide se o intervalo candidato pode ser reservado:
// sem cruzar agendamentos que ocupam agenda, sem cruzar bloqueios
// ativos e respeitando a antecedência mínima. Leitura pura.
func Available(candidate Interval, now time.Time, appointments, blocks []Interval) bool {
	if !candidate.Valid() {
		return false
	}
	if candidate.Start.Before(now.Add(LeadTime)) {
		return false
	}
	if candidate.OverlapsAny(appointments) {
		return false
	}
	if candidate.OverlapsAny(blocks) {
		return false
	}
	return true
}
