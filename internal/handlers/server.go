package handlers

import (
	"log"
	"net/http"

	"github.com/akhilrajvs/SquidEventWssService/internal/global"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/gin-gonic/gin"
)

// StartServer starts the event coordinator HTTP server
func StartServer(addr string, app *global.State, dispatcher *wss.Dispatcher, wsState *wsstypes.State) error {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "event": app.EventCfg.EventName})
	})

	r.POST("/login", LoginHandler(app))

	// WebSocket endpoint; messages authenticate individually
	r.GET("/ws", gin.WrapF(wss.WsHandler(dispatcher, wsState)))

	adminGroup := r.Group("/admin", AdminAuthMiddleware(app))
	{
		adminGroup.POST("/stage", SetStageHandler(app))
		adminGroup.POST("/active-form", SetActiveFormHandler(app))
		adminGroup.POST("/round-enabled", SetRoundEnabledHandler(app))
		adminGroup.POST("/participants/:id/score", SetScoreHandler(app))
		adminGroup.POST("/participants/:id/round2/toggle", ToggleRound2Handler(app))
		adminGroup.GET("/leaderboard", LeaderboardHandler(app))
		adminGroup.POST("/export-standings", ExportStandingsHandler(app))
	}

	log.Printf("Starting event coordinator server on %s", addr)
	return r.Run(addr)
}
