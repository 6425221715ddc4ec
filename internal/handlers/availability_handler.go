package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appbarber/agenda-api/internal/httperr"
	"github.com/appbarber/agenda-api/internal/httpresp"
	ucSchedule "github.com/appbarber/agenda-api/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	getAvailability *ucSchedule.GetAvailability
}

func NewAvailabilityHandler(getAvailability *ucSchedule.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: getAvailability}
}

// Get responde GET /api/availability?barber_id=&service_id=&date=
// Um parâmetro "duration" eventualmente enviado pelo cliente é ignorado:
// a duração vem sempre do serviço cadastrado.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID, err := parseUintParam(c.Query("barber_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	serviceID, err := parseUintParam(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.getAvailability.Execute(c.Request.Context(), ucSchedule.GetAvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      dateStr,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": slots})
}

func parseUintParam(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(n), nil
}
