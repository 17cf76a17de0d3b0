package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-rewind/internal/services"
	"github.com/jstittsworth/fpl-rewind/pkg/utils"
)

type SummaryHandler struct {
	summary *services.SummaryService
}

func NewSummaryHandler(summary *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summary: summary,
	}
}

type gwSummaryRequest struct {
	IDs  []int `json:"ids" binding:"required"`
	From int   `json:"from" binding:"required,min=1"`
	To   int   `json:"to" binding:"required,min=1"`
}

// GetGWSummary resolves the posted ids against the remote bootstrap and
// returns per-player price and point summaries over the requested round
// range, keyed by the original ids.
func (h *SummaryHandler) GetGWSummary(c *gin.Context) {
	var req gwSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "ids, from>=1 and to>=1 are required", err.Error())
		return
	}
	if req.To < req.From {
		utils.SendValidationError(c, "to must be greater than or equal to from", "")
		return
	}

	idMap, results, err := h.summary.Summarize(c.Request.Context(), req.IDs, req.From, req.To)
	if err != nil {
		utils.SendUpstreamError(c, "failed to fetch gameweek summaries")
		return
	}

	utils.SendSuccess(c, gin.H{
		"id_map":  idMap,
		"results": results,
	})
}
