package schedule

import (
	"context"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	"github.com/appbarber/agenda-api/internal/audit"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/models"
	"github.com/appbarber/agenda-api/internal/notify"
	"github.com/appbarber/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type UpdateStatusInput struct {
	BarberID      uint
	AppointmentID uint
	Status        string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if ap.BarberID != barber.ID {
		return nil, apperr.Authorization("not_owner", "Agendamento pertence a outro barbeiro.")
	}

	loc := timezone.Location(barber.Timezone)
	now := uc.now().In(loc)

	effective, err := domain.NextStatus(
		domain.Status(ap.Status),
		domain.Status(in.Status),
		ap.StartTime,
		now,
	)
	if err != nil {
		return nil, err
	}

	// Reagendamento (cancelado/falta → agendado) volta a ocupar a agenda:
	// o horário precisa estar livre e ainda no futuro.
	if effective == domain.StatusAgendado {
		if !ap.StartTime.After(now) {
			return nil, apperr.State("slot_in_past", "Horário já passou, não é possível reagendar.")
		}

		err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
			conflicts, err := tx.CountBlockingAppointments(ctx, ap.BarberID, ap.StartTime, ap.EndTime, true)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				return apperr.Conflict("slot_unavailable", "Horário não está mais disponível.")
			}

			blocked, err := tx.CountActiveBlockOverlaps(ctx, ap.BarberID, ap.StartTime, ap.EndTime, 0)
			if err != nil {
				return err
			}
			if blocked > 0 {
				return apperr.Conflict("slot_blocked", "Horário bloqueado.")
			}

			applyStatus(ap, effective, in.Notes, now)
			return tx.UpdateAppointment(ctx, ap)
		})
		if err != nil {
			return nil, err
		}
	} else {
		applyStatus(ap, effective, in.Notes, now)
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &ap.BarberID,
		ClientID: &ap.ClientID,
		Action:   "status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": ap.Status},
	})

	uc.notifier.Dispatch(notify.Event{
		Action:        "status_changed",
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		ClientID:      ap.ClientID,
		Status:        ap.Status,
		StartTime:     ap.StartTime,
	})

	return ap, nil
}

func applyStatus(ap *models.Appointment, status domain.Status, notes string, now time.Time) {
	ap.Status = string(status)
	ap.Notes = notes

	switch status {
	case domain.StatusCancelado, domain.StatusFalta:
		ap.CancelledAt = &now
	case domain.StatusConcluido:
		ap.CompletedAt = &now
	case domain.StatusAgendado:
		// Reagendamento limpa marcas de encerramento.
		ap.CancelledAt = nil
		ap.CompletedAt = nil
	}
}
