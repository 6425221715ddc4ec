package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/appbarber/agenda-api/internal/apperr"
	domain "github.com/appbarber/agenda-api/internal/domain/schedule"
	"github.com/appbarber/agenda-api/internal/models"
)

func newUpdateStatus(repo *fakeRepo, now time.Time) *UpdateStatus {
	uc := NewUpdateStatus(repo, nil, nil)
	uc.now = func() time.Time { return now }
	return uc
}

func futureAppointment(t *testing.T, repo *fakeRepo, status domain.Status) *models.Appointment {
	t.Helper()
	return repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 1, ServiceID: 1,
		StartTime: at(t, "10:00").AddDate(0, 0, 1),
		EndTime:   at(t, "10:30").AddDate(0, 0, 1),
		Status:    string(status),
	})
}

func TestUpdateStatus_Confirm(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := futureAppointment(t, repo, domain.StatusAgendado)
	uc := newUpdateStatus(repo, testNow)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusConfirmado),
		Notes:         "confirmado por telefone",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != string(domain.StatusConfirmado) {
		t.Fatalf("expected confirmado, got %s", got.Status)
	}
	if got.Notes != "confirmado por telefone" {
		t.Fatalf("notes must be updated, got %q", got.Notes)
	}

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	if stored.Status != string(domain.StatusConfirmado) {
		t.Fatalf("status must be persisted, got %s", stored.Status)
	}
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	repo := newScheduleFixture(t)
	repo.addBarber(models.Barber{ID: 2, Name: "Rafael", Timezone: "UTC", Active: true})
	ap := futureAppointment(t, repo, domain.StatusAgendado)
	uc := newUpdateStatus(repo, testNow)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      2,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusConfirmado),
	})
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	if stored.Status != string(domain.StatusAgendado) {
		t.Fatalf("foreign update must not change anything, got %s", stored.Status)
	}
}

func TestUpdateStatus_LateCancelStoredAsFalta(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 1, ServiceID: 1,
		StartTime: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		Status:    string(domain.StatusConfirmado),
	})
	// Cancelamento chega um dia depois do horário.
	uc := newUpdateStatus(repo, time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC))

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusCancelado),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != string(domain.StatusFalta) {
		t.Fatalf("late cancel must be stored as falta, got %s", got.Status)
	}
	if got.CancelledAt == nil {
		t.Fatalf("falta must set the cancellation mark")
	}
}

func TestUpdateStatus_CompleteSetsMark(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 1, ServiceID: 1,
		StartTime: at(t, "07:30"),
		EndTime:   at(t, "08:00"),
		Status:    string(domain.StatusEmAndamento),
	})
	uc := newUpdateStatus(repo, testNow)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusConcluido),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CompletedAt == nil {
		t.Fatalf("concluido must set the completion mark")
	}
}

func TestUpdateStatus_StartOutsideWindow(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := futureAppointment(t, repo, domain.StatusConfirmado) // começa amanhã às 10:00
	uc := newUpdateStatus(repo, testNow)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusEmAndamento),
	})
	if !apperr.IsKind(err, apperr.KindState) {
		t.Fatalf("starting a day early must fail with state error, got %v", err)
	}
}

func TestUpdateStatus_RebookFreesSlotAgain(t *testing.T) {
	repo := newScheduleFixture(t)
	cancelledAt := testNow
	ap := repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 1, ServiceID: 1,
		StartTime:   at(t, "10:00").AddDate(0, 0, 1),
		EndTime:     at(t, "10:30").AddDate(0, 0, 1),
		Status:      string(domain.StatusCancelado),
		CancelledAt: &cancelledAt,
	})
	uc := newUpdateStatus(repo, testNow)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusAgendado),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != string(domain.StatusAgendado) {
		t.Fatalf("expected agendado, got %s", got.Status)
	}
	if got.CancelledAt != nil {
		t.Fatalf("rebooking must clear the cancellation mark")
	}
}

func TestUpdateStatus_RebookConflictsWithNewBooking(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 1, ServiceID: 1,
		StartTime: at(t, "10:00").AddDate(0, 0, 1),
		EndTime:   at(t, "10:30").AddDate(0, 0, 1),
		Status:    string(domain.StatusCancelado),
	})
	// Outro cliente tomou o horário depois do cancelamento.
	repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 2, ServiceID: 1,
		StartTime: at(t, "10:00").AddDate(0, 0, 1),
		EndTime:   at(t, "10:30").AddDate(0, 0, 1),
		Status:    string(domain.StatusAgendado),
	})
	uc := newUpdateStatus(repo, testNow)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusAgendado),
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	if stored.Status != string(domain.StatusCancelado) {
		t.Fatalf("failed rebooking must not change status, got %s", stored.Status)
	}
}

func TestUpdateStatus_RebookPastSlot(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := repo.addAppointment(models.Appointment{
		BarberID: 1, ClientID: 1, ServiceID: 1,
		StartTime: at(t, "07:00"),
		EndTime:   at(t, "07:30"),
		Status:    string(domain.StatusFalta),
	})
	uc := newUpdateStatus(repo, testNow)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusAgendado),
	})
	if !apperr.IsKind(err, apperr.KindState) {
		t.Fatalf("rebooking a past slot must fail with state error, got %v", err)
	}
}

func TestUpdateStatus_ConcluidoIsFinal(t *testing.T) {
	repo := newScheduleFixture(t)
	ap := futureAppointment(t, repo, domain.StatusConcluido)
	uc := newUpdateStatus(repo, testNow)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusCancelado),
	})
	if !apperr.IsKind(err, apperr.KindState) {
		t.Fatalf("concluido must be final, got %v", err)
	}
}

func TestUpdateStatus_UnknownAppointment(t *testing.T) {
	repo := newScheduleFixture(t)
	uc := newUpdateStatus(repo, testNow)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BarberID:      1,
		AppointmentID: 42,
		Status:        string(domain.StatusConfirmado),
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
