package schedule

import (
	"context"
	"time"

	"github.com/appbarber/agenda-api/internal/models"
)

type Repository interface {
	// -------- Cadastros (leitura) --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Consultas de agenda --------
	ListBlockingAppointments(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListActiveBlocks(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Block, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Conflitos (commit) --------
	// lock=true trava as linhas candidatas (FOR UPDATE) dentro da transação.
	CountBlockingAppointments(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		lock bool,
	) (int64, error)

	CountActiveBlockOverlaps(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeBlockID uint,
	) (int64, error)

	CountFutureBookings(
		ctx context.Context,
		clientID uint,
		after time.Time,
	) (int64, error)

	// -------- Agendamento --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Bloqueio --------
	CreateBlock(
		ctx context.Context,
		b *models.Block,
	) error

	GetBlock(
		ctx context.Context,
		id uint,
	) (*models.Block, error)

	UpdateBlock(
		ctx context.Context,
		b *models.Block,
	) error

	// -------- Transação --------
	// InTx executa fn com um Repository ligado à transação; commit no
	// retorno nil, rollback em erro.
	InTx(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}
