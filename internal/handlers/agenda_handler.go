package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/appbarber/agenda-api/internal/httperr"
	"github.com/appbarber/agenda-api/internal/httpresp"
	"github.com/appbarber/agenda-api/internal/middleware"
	ucSchedule "github.com/appbarber/agenda-api/internal/usecase/schedule"
)

type AgendaHandler struct {
	listAgenda *ucSchedule.ListAgenda
}

func NewAgendaHandler(listAgenda *ucSchedule.ListAgenda) *AgendaHandler {
	return &AgendaHandler{listAgenda: listAgenda}
}

// List responde GET /api/me/agenda?date=YYYY-MM-DD
func (h *AgendaHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextActorID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	entries, err := h.listAgenda.Execute(c.Request.Context(), barberID, dateStr)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"appointments": entries,
		"total":        len(entries),
	})
}
