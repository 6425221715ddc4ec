package schedule

import (
	"context"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/timezone"
)

type AgendaEntry struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	Notes       string    `json:"notes"`
}

type ListAgenda struct {
	repo domain.Repository
}

func NewListAgenda(repo domain.Repository) *ListAgenda {
	return &ListAgenda{repo: repo}
}

// Execute lista os agendamentos do dia do próprio barbeiro, em ordem.
func (uc *ListAgenda) Execute(
	ctx context.Context,
	barberID uint,
	dateStr string,
) ([]AgendaEntry, error) {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(barber.Timezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_date", "Data inválida.")
	}

	start := timezone.StartOfDay(date)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]AgendaEntry, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AgendaEntry{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			Notes:       ap.Notes,
		})
	}

	return out, nil
}
