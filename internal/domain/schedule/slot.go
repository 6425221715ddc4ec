package schedule

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
)

// Passo fixo entre candidatos a horário.
const SlotStep = 30 * time.Minute

// Antecedência mínima entre "agora" e o início de uma reserva.
const LeadTime = time.Hour

// ===============================
// Expediente do dia
// ===============================

// DaySchedule é o expediente do barbeiro resolvido para uma data concreta.
type DaySchedule struct {
	Opening time.Time
	Closing time.Time
	Workday bool
}

// ResolveDaySchedule monta o expediente de uma data a partir da configuração
// do barbeiro (horários "15:04" e lista de weekdays "1,2,3,4,5").
func ResolveDaySchedule(opening, closing, workdays string, date time.Time) (DaySchedule, error) {
	openT, err := time.Parse("15:04", opening)
	if err != nil {
		return DaySchedule{}, apperr.Validation("invalid_opening_time", "Horário de abertura inválido.")
	}
	closeT, err := time.Parse("15:04", closing)
	if err != nil {
		return DaySchedule{}, apperr.Validation("invalid_closing_time", "Horário de fechamento inválido.")
	}

	loc := date.Location()
	day := DaySchedule{
		Opening: time.Date(date.Year(), date.Month(), date.Day(), openT.Hour(), openT.Minute(), 0, 0, loc),
		Closing: time.Date(date.Year(), date.Month(), date.Day(), closeT.Hour(), closeT.Minute(), 0, 0, loc),
		Workday: workdayIncluded(workdays, date.Weekday()),
	}

	if !day.Opening.Before(day.Closing) {
		return DaySchedule{}, apperr.Validation("invalid_working_hours", "Expediente inválido.")
	}

	return day, nil
}

func workdayIncluded(workdays string, weekday time.Weekday) bool {
	for _, part := range strings.Split(workdays, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if time.Weekday(n) == weekday {
			return true
		}
	}
	return false
}

// ===============================
// Geração de slots
// ===============================

// Slots enumera os candidatos a horário de início para um serviço de
// duração dada: do início do expediente, de SlotStep em SlotStep, até
// (fechamento - duração). Sequência finita, preguiçosa e reiniciável;
// não consulta storage. Fora de dia de trabalho, não produz nada.
func Slots(day DaySchedule, duration time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if !day.Workday || duration <= 0 {
			return
		}
		for t := day.Opening; !t.Add(duration).After(day.Closing); t = t.Add(SlotStep) {
			if !yield(t) {
				return
			}
		}
	}
}
