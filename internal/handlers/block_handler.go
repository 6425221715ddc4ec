package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/appbarber/agenda-api/internal/httperr"
	"github.com/appbarber/agenda-api/internal/httpresp"
	"github.com/appbarber/agenda-api/internal/middleware"
	ucSchedule "github.com/appbarber/agenda-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type BlockHandler struct {
	createBlock *ucSchedule.CreateBlock
	removeBlock *ucSchedule.RemoveBlock
}

func NewBlockHandler(
	createBlock *ucSchedule.CreateBlock,
	removeBlock *ucSchedule.RemoveBlock,
) *BlockHandler {
	return &BlockHandler{
		createBlock: createBlock,
		removeBlock: removeBlock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BlockRequest struct {
	Action  string `json:"action" binding:"required"` // create | remove
	BlockID uint   `json:"block_id"`
	Start   string `json:"start"` // YYYY-MM-DD HH:mm
	End     string `json:"end"`   // YYYY-MM-DD HH:mm
	Type    string `json:"type"`
	Reason  string `json:"reason"`
}

// ======================================================
// HANDLE
// ======================================================

func (h *BlockHandler) Handle(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextActorID).(uint)

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	switch req.Action {
	case "create":
		block, err := h.createBlock.Execute(c.Request.Context(), ucSchedule.CreateBlockInput{
			BarberID: barberID,
			Start:    req.Start,
			End:      req.End,
			Type:     req.Type,
			Reason:   req.Reason,
		})
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.Created(c, gin.H{"block_id": block.ID})

	case "remove":
		if req.BlockID == 0 {
			httperr.BadRequest(c, "missing_block_id", "Bloqueio obrigatório.")
			return
		}
		if err := h.removeBlock.Execute(c.Request.Context(), barberID, req.BlockID); err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, gin.H{})

	default:
		httperr.BadRequest(c, "invalid_action", "Ação inválida.")
	}
}
