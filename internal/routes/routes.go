package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/appbarber/agenda-api/internal/audit"
	"github.com/appbarber/agenda-api/internal/config"
	"github.com/appbarber/agenda-api/internal/handlers"
	"github.com/appbarber/agenda-api/internal/infra/lock"
	infraRepo "github.com/appbarber/agenda-api/internal/infra/repository"
	"github.com/appbarber/agenda-api/internal/middleware"
	"github.com/appbarber/agenda-api/internal/notify"
	ucSchedule "github.com/appbarber/agenda-api/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker lock.Locker,
	notifier *notify.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucSchedule.NewGetAvailability(scheduleRepo)

	createBookingUC := ucSchedule.NewCreateBooking(
		scheduleRepo,
		locker,
		auditDispatcher,
		notifier,
		cfg.MaxFutureBookings,
	)

	createBlockUC := ucSchedule.NewCreateBlock(scheduleRepo, auditDispatcher)
	removeBlockUC := ucSchedule.NewRemoveBlock(scheduleRepo, auditDispatcher)

	updateStatusUC := ucSchedule.NewUpdateStatus(scheduleRepo, auditDispatcher, notifier)

	listAgendaUC := ucSchedule.NewListAgenda(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC)
	blockHandler := handlers.NewBlockHandler(createBlockUC, removeBlockUC)
	statusHandler := handlers.NewStatusHandler(updateStatusUC)
	agendaHandler := handlers.NewAgendaHandler(listAgendaUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO (leitura)
		// ------------------------------
		api.GET("/availability", availabilityHandler.Get)

		// ------------------------------
		// CLIENTE AUTENTICADO
		// ------------------------------
		client := api.Group("/")
		client.Use(middleware.AuthMiddleware(cfg, middleware.RoleClient))
		{
			client.POST("/bookings", bookingHandler.Create)
		}

		// ------------------------------
		// BARBEIRO AUTENTICADO
		// ------------------------------
		barber := api.Group("/me")
		barber.Use(middleware.AuthMiddleware(cfg, middleware.RoleBarber))
		{
			barber.GET("/agenda", agendaHandler.List)
			barber.POST("/blocks", blockHandler.Handle)
			barber.PATCH("/appointments/:id/status", statusHandler.Update)
		}
	}
}
