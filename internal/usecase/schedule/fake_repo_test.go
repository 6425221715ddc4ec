package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/models"
)

// fakeRepo é um Repository em memória para os testes de use case.
// InTx serializa as transações com um mutex próprio, o que reproduz a
// semântica "um commit por vez na agenda" do banco.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	barbers  map[uint]*models.Barber
	services map[uint]*models.Service
	clients  map[uint]*models.Client

	appointments []*models.Appointment
	blocks       []*models.Block

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  map[uint]*models.Barber{},
		services: map[uint]*models.Service{},
		clients:  map[uint]*models.Client{},
		nextID:   1,
	}
}

func (r *fakeRepo) addBarber(b models.Barber) *models.Barber {
	r.barbers[b.ID] = &b
	return &b
}

func (r *fakeRepo) addService(s models.Service) *models.Service {
	r.services[s.ID] = &s
	return &s
}

func (r *fakeRepo) addClient(c models.Client) *models.Client {
	r.clients[c.ID] = &c
	return &c
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.nextID
	r.nextID++
	cp := ap
	r.appointments = append(r.appointments, &cp)
	return &cp
}

func (r *fakeRepo) addBlock(b models.Block) *models.Block {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	cp := b
	r.blocks = append(r.blocks, &cp)
	return &cp
}

// -------- Cadastros --------

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := r.barbers[id]; ok && b.Active {
		return b, nil
	}
	return nil, apperr.NotFound("barber_not_found", "Barbeiro não encontrado.")
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok && s.Active {
		return s, nil
	}
	return nil, apperr.NotFound("service_not_found", "Serviço não encontrado.")
}

func (r *fakeRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok && c.Active {
		return c, nil
	}
	return nil, apperr.NotFound("client_not_found", "Cliente não encontrado.")
}

// -------- Consultas --------

func (r *fakeRepo) ListBlockingAppointments(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iv := domain.NewInterval(start, end)
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || !domain.Status(ap.Status).Blocking() {
			continue
		}
		if iv.Overlaps(domain.NewInterval(ap.StartTime, ap.EndTime)) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveBlocks(_ context.Context, barberID uint, start, end time.Time) ([]models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iv := domain.NewInterval(start, end)
	var out []models.Block
	for _, b := range r.blocks {
		if b.BarberID != barberID || !b.Active {
			continue
		}
		if iv.Overlaps(domain.NewInterval(b.StartTime, b.EndTime)) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// -------- Conflitos --------

func (r *fakeRepo) CountBlockingAppointments(ctx context.Context, barberID uint, start, end time.Time, _ bool) (int64, error) {
	apps, err := r.ListBlockingAppointments(ctx, barberID, start, end)
	if err != nil {
		return 0, err
	}
	return int64(len(apps)), nil
}

func (r *fakeRepo) CountActiveBlockOverlaps(ctx context.Context, barberID uint, start, end time.Time, excludeID uint) (int64, error) {
	blocks, err := r.ListActiveBlocks(ctx, barberID, start, end)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, b := range blocks {
		if b.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CountFutureBookings(_ context.Context, clientID uint, after time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, ap := range r.appointments {
		if ap.ClientID != clientID || !ap.StartTime.After(after) {
			continue
		}
		switch domain.Status(ap.Status) {
		case domain.StatusAgendado, domain.StatusConfirmado, domain.StatusEmAndamento:
			count++
		}
	}
	return count, nil
}

// -------- Agendamento --------

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.nextID
	r.nextID++
	cp := *ap
	r.appointments = append(r.appointments, &cp)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("appointment_not_found", "Agendamento não encontrado.")
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.appointments {
		if cur.ID == ap.ID {
			cp := *ap
			r.appointments[i] = &cp
			return nil
		}
	}
	return apperr.NotFound("appointment_not_found", "Agendamento não encontrado.")
}

// -------- Bloqueio --------

func (r *fakeRepo) CreateBlock(_ context.Context, b *models.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.blocks = append(r.blocks, &cp)
	return nil
}

func (r *fakeRepo) GetBlock(_ context.Context, id uint) (*models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blocks {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("block_not_found", "Bloqueio não encontrado.")
}

func (r *fakeRepo) UpdateBlock(_ context.Context, b *models.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.blocks {
		if cur.ID == b.ID {
			cp := *b
			r.blocks[i] = &cp
			return nil
		}
	}
	return apperr.NotFound("block_not_found", "Bloqueio não encontrado.")
}

// -------- Transação --------

func (r *fakeRepo) InTx(_ context.Context, fn func(repo domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

var _ domain.Repository = (*fakeRepo)(nil)
