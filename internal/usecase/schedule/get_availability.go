package schedule

import (
	"context"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/models"
	"github.com/appbarber/agenda-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GetAvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type SlotView struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]SlotView, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	// Duração sempre resolvida do serviço cadastrado,
	// nunca do payload do cliente.
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.DurationMin <= 0 {
		return nil, apperr.Validation("invalid_duration", "Serviço com duração inválida.")
	}

	loc := timezone.Location(barber.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_date", "Data inválida.")
	}

	now := uc.now().In(loc)
	if date.Before(timezone.StartOfDay(now)) {
		return nil, apperr.Validation("date_in_past", "Data no passado.")
	}

	day, err := domain.ResolveDaySchedule(barber.OpeningTime, barber.ClosingTime, barber.Workdays, date)
	if err != nil {
		return nil, err
	}
	if !day.Workday {
		return []SlotView{}, nil
	}

	appointments, err := uc.repo.ListBlockingAppointments(ctx, in.BarberID, day.Opening, day.Closing)
	if err != nil {
		return nil, err
	}
	blocks, err := uc.repo.ListActiveBlocks(ctx, in.BarberID, day.Opening, day.Closing)
	if err != nil {
		return nil, err
	}

	busyAppointments := appointmentIntervals(appointments)
	busyBlocks := blockIntervals(blocks)

	duration := time.Duration(service.DurationMin) * time.Minute

	slots := []SlotView{}
	for start := range domain.Slots(day, duration) {
		candidate := domain.NewInterval(start, start.Add(duration))
		slots = append(slots, SlotView{
			Time:      start.Format("15:04"),
			Available: domain.Available(candidate, now, busyAppointments, busyBlocks),
		})
	}

	return slots, nil
}

func appointmentIntervals(apps []models.Appointment) []domain.Interval {
	out := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		out = append(out, domain.NewInterval(ap.StartTime, ap.EndTime))
	}
	return out
}

func blockIntervals(blocks []models.Block) []domain.Interval {
	out := make([]domain.Interval, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, domain.NewInterval(b.StartTime, b.EndTime))
	}
	return out
}
