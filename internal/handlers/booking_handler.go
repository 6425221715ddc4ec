package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/appbarber/agenda-api/internal/httperr"
	"github.com/appbarber/agenda-api/internal/httpresp"
	"github.com/appbarber/agenda-api/internal/middleware"
	ucSchedule "github.com/appbarber/agenda-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createBooking *ucSchedule.CreateBooking
}

func NewBookingHandler(createBooking *ucSchedule.CreateBooking) *BookingHandler {
	return &BookingHandler{createBooking: createBooking}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Datetime  string `json:"datetime" binding:"required"` // YYYY-MM-DD HH:mm
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextActorID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.createBooking.Execute(c.Request.Context(), ucSchedule.CreateBookingInput{
		ClientID:  clientID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Datetime:  req.Datetime,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap := result.Appointment
	httpresp.Created(c, gin.H{
		"appointment_id":  ap.ID,
		"scheduled_date":  ap.StartTime.Format("2006-01-02"),
		"scheduled_time":  ap.StartTime.Format("15:04"),
		"barber_name":     result.Barber.Name,
		"service_name":    result.Service.Name,
		"formatted_price": fmt.Sprintf("R$ %.2f", ap.Price),
	})
}
