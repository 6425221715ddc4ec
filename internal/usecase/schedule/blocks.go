package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	"github.com/appbarber/agenda-api/internal/audit"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/models"
	"github.com/appbarber/agenda-api/internal/timezone"
)

// ======================================================
// CREATE BLOCK
// ======================================================

type CreateBlockInput struct {
	BarberID uint
	Start    string // YYYY-MM-DD HH:mm
	End      string // YYYY-MM-DD HH:mm
	Type     string
	Reason   string
}

type CreateBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBlock(repo domain.Repository, auditDispatcher *audit.Dispatcher) *CreateBlock {
	return &CreateBlock{repo: repo, audit: auditDispatcher, now: time.Now}
}

func (uc *CreateBlock) Execute(
	ctx context.Context,
	in CreateBlockInput,
) (*models.Block, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(barber.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Start, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_start", "Início inválido.")
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", in.End, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_end", "Fim inválido.")
	}

	iv := domain.NewInterval(start, end)
	if !iv.Valid() {
		return nil, apperr.Validation("invalid_range", "Início deve ser antes do fim.")
	}

	// Bloqueio no passado não faz sentido; o dia de hoje é permitido.
	now := uc.now().In(loc)
	if start.Before(timezone.StartOfDay(now)) {
		return nil, apperr.Validation("start_in_past", "Início no passado.")
	}

	blockType := domain.NormalizeBlockType(in.Type)

	var created *models.Block

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		// Agendamentos ocupando o período: o bloqueio nunca cancela nada
		// sozinho — devolve a lista para o barbeiro resolver manualmente.
		conflicting, err := tx.ListBlockingAppointments(ctx, in.BarberID, start, end)
		if err != nil {
			return err
		}
		if len(conflicting) > 0 {
			return apperr.Conflict("appointments_in_range", "Existem agendamentos no período.").
				WithDetails(describeAppointments(conflicting))
		}

		overlaps, err := tx.CountActiveBlockOverlaps(ctx, in.BarberID, start, end, 0)
		if err != nil {
			return err
		}
		if overlaps > 0 {
			return apperr.Conflict("block_overlap", "Já existe bloqueio no período.")
		}

		b := &models.Block{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   end,
			Type:      string(blockType),
			Reason:    in.Reason,
			Active:    true,
		}

		if err := tx.CreateBlock(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &created.BarberID,
		Action:   "block_created",
		Entity:   "block",
		EntityID: &created.ID,
		Metadata: map[string]any{"type": created.Type, "start": created.StartTime, "end": created.EndTime},
	})

	return created, nil
}

func describeAppointments(apps []models.Appointment) []string {
	out := make([]string, 0, len(apps))
	for _, ap := range apps {
		out = append(out, fmt.Sprintf(
			"%s %s — %s",
			ap.StartTime.Format("02/01/2006"),
			ap.StartTime.Format("15:04"),
			ap.Client.Name,
		))
	}
	return out
}

// ======================================================
// REMOVE BLOCK
// ======================================================

type RemoveBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRemoveBlock(repo domain.Repository, auditDispatcher *audit.Dispatcher) *RemoveBlock {
	return &RemoveBlock{repo: repo, audit: auditDispatcher, now: time.Now}
}

// Execute desativa um bloqueio futuro do próprio barbeiro (soft delete).
// Bloqueio já iniciado é imutável.
func (uc *RemoveBlock) Execute(
	ctx context.Context,
	barberID uint,
	blockID uint,
) error {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return err
	}

	b, err := uc.repo.GetBlock(ctx, blockID)
	if err != nil {
		return err
	}
	if b.BarberID != barber.ID || !b.Active {
		return apperr.NotFound("block_not_found", "Bloqueio não encontrado.")
	}

	now := uc.now().In(timezone.Location(barber.Timezone))
	if !b.StartTime.After(now) {
		return apperr.State("block_started", "Bloqueio já iniciado não pode ser removido.")
	}

	b.Active = false
	if err := uc.repo.UpdateBlock(ctx, b); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &b.BarberID,
		Action:   "block_removed",
		Entity:   "block",
		EntityID: &b.ID,
	})

	return nil
}
