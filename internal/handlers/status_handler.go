package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appbarber/agenda-api/internal/httperr"
	"github.com/appbarber/agenda-api/internal/httpresp"
	"github.com/appbarber/agenda-api/internal/middleware"
	ucSchedule "github.com/appbarber/agenda-api/internal/usecase/schedule"
)

type StatusHandler struct {
	updateStatus *ucSchedule.UpdateStatus
}

func NewStatusHandler(updateStatus *ucSchedule.UpdateStatus) *StatusHandler {
	return &StatusHandler{updateStatus: updateStatus}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Update responde PATCH /api/me/appointments/:id/status
func (h *StatusHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextActorID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || appointmentID == 0 {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucSchedule.UpdateStatusInput{
		BarberID:      barberID,
		AppointmentID: uint(appointmentID),
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"appointment": gin.H{
			"id":             ap.ID,
			"status":         ap.Status,
			"notes":          ap.Notes,
			"client_name":    ap.Client.Name,
			"service_name":   ap.Service.Name,
			"scheduled_time": ap.StartTime.Format("2006-01-02 15:04"),
		},
	})
}
