package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/appbarber/agenda-api/internal/apperr"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Cadastros
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&barber).Error; err != nil {
		return nil, apperr.NotFound("barber_not_found", "Barbeiro não encontrado.")
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&service).Error; err != nil {
		return nil, apperr.NotFound("service_not_found", "Serviço não encontrado.")
	}
	return &service, nil
}

func (r *ScheduleGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&client).Error; err != nil {
		return nil, apperr.NotFound("client_not_found", "Cliente não encontrado.")
	}
	return &client, nil
}

// --------------------------------------------------
// Consultas de agenda
// --------------------------------------------------

// Condição SQL espelha o predicado canônico de intervalo meio-aberto:
// start_time < fim AND end_time > início.

func (r *ScheduleGormRepository) ListBlockingAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.BlockingStatuses(), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) ListActiveBlocks(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Block, error) {

	var blocks []models.Block
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND active = ? AND start_time < ? AND end_time > ?",
			barberID, true, end, start,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Conflitos
// --------------------------------------------------

func (r *ScheduleGormRepository) CountBlockingAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	lock bool,
) (int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var count int64
	if err := q.
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.BlockingStatuses(), end, start,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ScheduleGormRepository) CountActiveBlockOverlaps(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeBlockID uint,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where(
			"barber_id = ? AND active = ? AND start_time < ? AND end_time > ?",
			barberID, true, end, start,
		)

	if excludeBlockID > 0 {
		q = q.Where("id <> ?", excludeBlockID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ScheduleGormRepository) CountFutureBookings(
	ctx context.Context,
	clientID uint,
	after time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_id = ? AND start_time > ? AND status IN ?",
			clientID, after,
			[]string{
				string(domain.StatusAgendado),
				string(domain.StatusConfirmado),
				string(domain.StatusEmAndamento),
			},
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// --------------------------------------------------
// Agendamento
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, apperr.NotFound("appointment_not_found", "Agendamento não encontrado.")
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Bloqueio
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateBlock(
	ctx context.Context,
	b *models.Block,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *ScheduleGormRepository) GetBlock(
	ctx context.Context,
	id uint,
) (*models.Block, error) {

	var b models.Block
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, apperr.NotFound("block_not_found", "Bloqueio não encontrado.")
	}

	return &b, nil
}

func (r *ScheduleGormRepository) UpdateBlock(
	ctx context.Context,
	b *models.Block,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *ScheduleGormRepository) InTx(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
