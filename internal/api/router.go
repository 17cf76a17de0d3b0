package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-rewind/internal/api/handlers"
	"github.com/jstittsworth/fpl-rewind/internal/season"
	"github.com/jstittsworth/fpl-rewind/internal/services"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, seasons *season.Service, summary *services.SummaryService) {
	seasonHandler := handlers.NewSeasonHandler(seasons)
	summaryHandler := handlers.NewSummaryHandler(summary)

	// Season data endpoints
	group.GET("/seasons", seasonHandler.ListSeasons)
	group.GET("/players", seasonHandler.ListPlayers)

	// Remote aggregation endpoints
	group.POST("/gw-summary", summaryHandler.GetGWSummary)
}
