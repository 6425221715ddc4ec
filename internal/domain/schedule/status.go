package schedule

import (
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
)

// ===============================
// Status do agendamento
// ===============================

type Status string

const (
	StatusAgendado    Status = "agendado"
	StatusConfirmado  Status = "confirmado"
	StatusEmAndamento Status = "em_andamento"
	StatusConcluido   Status = "concluido"
	StatusCancelado   Status = "cancelado"
	StatusFalta       Status = "falta"
)

// Janela permitida para iniciar o atendimento, relativa ao horário marcado.
const (
	StartWindowBefore = 30 * time.Minute
	StartWindowAfter  = 120 * time.Minute
)

var transitions = map[Status][]Status{
	StatusAgendado:    {StatusConfirmado, StatusEmAndamento, StatusCancelado, StatusFalta},
	StatusConfirmado:  {StatusEmAndamento, StatusCancelado, StatusFalta},
	StatusEmAndamento: {StatusConcluido, StatusCancelado},
	StatusConcluido:   {},
	StatusCancelado:   {StatusAgendado},
	StatusFalta:       {StatusAgendado},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Blocking indica se o status ocupa a agenda do barbeiro.
// cancelado e falta liberam o horário.
func (s Status) Blocking() bool {
	return s != StatusCancelado && s != StatusFalta
}

// BlockingStatuses são os status considerados nas consultas de conflito.
func BlockingStatuses() []string {
	return []string{
		string(StatusAgendado),
		string(StatusConfirmado),
		string(StatusEmAndamento),
		string(StatusConcluido),
	}
}

func InitialStatus() Status {
	return StatusAgendado
}

func canTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// NextStatus valida a transição pedida e devolve o status efetivo a gravar.
//
// Regras além da tabela:
//   - em_andamento só dentro da janela [-30min, +120min] do horário marcado;
//   - cancelado vira falta quando o horário já passou e o agendamento ainda
//     estava agendado/confirmado (política: cancelamento tardio é no-show).
func NextStatus(current, requested Status, startTime, now time.Time) (Status, error) {
	if !requested.Valid() {
		return "", apperr.Validation("invalid_status", "Status inválido.")
	}

	effective := requested

	if requested == StatusCancelado &&
		now.After(startTime) &&
		(current == StatusAgendado || current == StatusConfirmado) {
		effective = StatusFalta
	}

	if !canTransition(current, effective) {
		return "", apperr.State("invalid_transition", "Transição de status não permitida.")
	}

	if effective == StatusEmAndamento {
		windowStart := startTime.Add(-StartWindowBefore)
		windowEnd := startTime.Add(StartWindowAfter)
		if now.Before(windowStart) || now.After(windowEnd) {
			return "", apperr.State("outside_start_window", "Fora da janela para iniciar o atendimento.")
		}
	}

	return effective, nil
}
