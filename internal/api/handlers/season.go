package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-rewind/internal/season"
	"github.com/jstittsworth/fpl-rewind/pkg/utils"
)

type SeasonHandler struct {
	seasons *season.Service
}

func NewSeasonHandler(seasons *season.Service) *SeasonHandler {
	return &SeasonHandler{
		seasons: seasons,
	}
}

// ListSeasons returns the seasons available under the configured data roots.
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	utils.SendSuccess(c, gin.H{
		"seasons": h.seasons.ListSeasons(),
	})
}

// ListPlayers returns the canonical player list for a season, optionally with
// cumulative points through a gameweek cutoff. A season whose data cannot be
// located yields an empty list, not an error.
func (h *SeasonHandler) ListPlayers(c *gin.Context) {
	seasonToken := c.Query("season")
	if seasonToken == "" {
		utils.SendValidationError(c, "season query parameter is required", "")
		return
	}

	var gw *int
	if raw := c.Query("gw"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.SendValidationError(c, "gw must be an integer", err.Error())
			return
		}
		gw = &n
	}

	players := h.seasons.ListPlayers(seasonToken, gw)
	utils.SendSuccess(c, gin.H{
		"season":  seasonToken,
		"gw":      gw,
		"players": players,
	})
}
