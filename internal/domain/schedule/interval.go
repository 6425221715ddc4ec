package schedule

import "time"

// ===============================
// Intervalo de tempo
// ===============================

// Interval é um intervalo meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps é o predicado canônico de conflito do sistema:
// [a,b) e [c,d) se cruzam sse a < d && b > c.
// Toda verificação de conflito (agendamento, bloqueio, reserva)
// passa por aqui — nunca reimplementar a comparação.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// OverlapsAny devolve true se iv cruza algum intervalo da lista.
func (iv Interval) OverlapsAny(others []Interval) bool {
	for _, other := range others {
		if iv.Overlaps(other) {
			return true
		}
	}
	return false
}
