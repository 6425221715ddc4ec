package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	"github.com/appbarber/agenda-api/internal/audit"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/infra/lock"
	"github.com/appbarber/agenda-api/internal/models"
	"github.com/appbarber/agenda-api/internal/notify"
	"github.com/appbarber/agenda-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint

	Datetime string // YYYY-MM-DD HH:mm
	Notes    string
}

type BookingResult struct {
	Appointment *models.Appointment
	Barber      *models.Barber
	Service     *models.Service
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	locker   lock.Locker
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher

	maxFutureBookings int
	now               func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	locker lock.Locker,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Dispatcher,
	maxFutureBookings int,
) *CreateBooking {
	if locker == nil {
		locker = lock.NewNoopLocker()
	}
	if maxFutureBookings <= 0 {
		maxFutureBookings = 5
	}
	return &CreateBooking{
		repo:              repo,
		locker:            locker,
		audit:             auditDispatcher,
		notifier:          notifier,
		maxFutureBookings: maxFutureBookings,
		now:               time.Now,
	}
}

// Execute aplica o protocolo de commit da reserva: valida cadastros,
// recalcula o fim pela duração do serviço no momento do commit e refaz a
// checagem de disponibilidade dentro da transação, com lock de linha nos
// agendamentos candidatos. Quem perde a corrida recebe ConflictError.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*BookingResult, error) {

	// --------------------------------------------------
	// 1. Cadastros ativos
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.DurationMin <= 0 {
		return nil, apperr.Validation("invalid_duration", "Serviço com duração inválida.")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Horário no fuso do barbeiro + antecedência mínima
	// --------------------------------------------------
	loc := timezone.Location(barber.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Datetime, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_datetime", "Data ou hora inválida.")
	}

	now := uc.now().In(loc)
	if start.Before(now.Add(domain.LeadTime)) {
		return nil, apperr.Validation("too_soon", "Horário exige antecedência mínima de 1 hora.")
	}

	// Fim recalculado aqui, com a duração vigente do serviço.
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 3. Commit: lock de agenda + transação + re-checagem
	// --------------------------------------------------
	var created *models.Appointment

	err = uc.locker.WithAgendaLock(ctx, in.BarberID, start.Format("2006-01-02"), func(lockCtx context.Context) error {
		return uc.repo.InTx(lockCtx, func(tx domain.Repository) error {

			conflicts, err := tx.CountBlockingAppointments(lockCtx, in.BarberID, start, end, true)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				return apperr.Conflict("slot_unavailable", "Horário não está mais disponível.")
			}

			blocked, err := tx.CountActiveBlockOverlaps(lockCtx, in.BarberID, start, end, 0)
			if err != nil {
				return err
			}
			if blocked > 0 {
				return apperr.Conflict("slot_blocked", "Horário bloqueado pelo barbeiro.")
			}

			future, err := tx.CountFutureBookings(lockCtx, in.ClientID, now)
			if err != nil {
				return err
			}
			if future >= int64(uc.maxFutureBookings) {
				return apperr.Limit("booking_limit", "Limite de agendamentos futuros atingido.")
			}

			ap := &models.Appointment{
				BarberID:  barber.ID,
				ClientID:  client.ID,
				ServiceID: service.ID,
				StartTime: start,
				EndTime:   end,
				Status:    string(domain.InitialStatus()),
				Price:     service.Price,
				Notes:     in.Notes,
			}

			if err := tx.CreateAppointment(lockCtx, ap); err != nil {
				return err
			}

			created = ap
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, apperr.Conflict("agenda_busy", "Agenda em uso, tente novamente.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Pós-commit: auditoria + notificação (fire-and-forget)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarberID: &created.BarberID,
		ClientID: &created.ClientID,
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	uc.notifier.Dispatch(notify.Event{
		Action:        "booking_created",
		AppointmentID: created.ID,
		BarberID:      created.BarberID,
		ClientID:      created.ClientID,
		Status:        created.Status,
		StartTime:     created.StartTime,
	})

	return &BookingResult{
		Appointment: created,
		Barber:      barber,
		Service:     service,
	}, nil
}
