package handlers

import (
	"net/http"
	"strings"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/global"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware rejects requests without a valid admin session token.
func AdminAuthMiddleware(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			WriteJSONError(c, errs.AuthorizationDenied("session token required"))
			c.Abort()
			return
		}

		claims, err := app.JwtManager.ValidateToken(token)
		if err != nil {
			WriteJSONError(c, errs.AuthorizationDenied("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.Role != model.RoleAdmin {
			WriteJSONError(c, errs.AuthorizationDenied("admin role required"))
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

type setStageRequest struct {
	Stage model.Stage `json:"stage"`
}

func SetStageHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setStageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			WriteJSONError(c, errs.Validation("invalid request body"))
			return
		}
		if err := app.Admin.SetStage(c.Request.Context(), req.Stage); err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"stage": req.Stage}, http.StatusOK)
	}
}

type setActiveFormRequest struct {
	ActiveForm *int `json:"activeForm"`
}

func SetActiveFormHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setActiveFormRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ActiveForm == nil {
			WriteJSONError(c, errs.Validation("invalid request body"))
			return
		}
		if err := app.Admin.SetActiveForm(c.Request.Context(), *req.ActiveForm); err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"activeForm": *req.ActiveForm}, http.StatusOK)
	}
}

type setRoundEnabledRequest struct {
	RoundID model.Stage `json:"roundId"`
	Enabled *bool       `json:"enabled"`
}

func SetRoundEnabledHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setRoundEnabledRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
			WriteJSONError(c, errs.Validation("invalid request body"))
			return
		}
		if err := app.Admin.SetRoundEnabled(c.Request.Context(), req.RoundID, *req.Enabled); err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"roundId": req.RoundID, "enabled": *req.Enabled}, http.StatusOK)
	}
}

type setScoreRequest struct {
	Score *float64 `json:"score"`
}

func SetScoreHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
			WriteJSONError(c, errs.Validation("score must be a number"))
			return
		}
		userID := c.Param("id")
		if err := app.Admin.SetParticipantScore(c.Request.Context(), userID, *req.Score); err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"userId": userID, "totalScore": *req.Score}, http.StatusOK)
	}
}

func ToggleRound2Handler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		completed, err := app.Admin.ToggleRound2Completed(c.Request.Context(), userID)
		if err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"userId": userID, "round2Completed": completed}, http.StatusOK)
	}
}

// LeaderboardHandler returns the live score projection, best first.
func LeaderboardHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := app.Participants.All(c.Request.Context())
		if err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"leaderboard": leaderboard.Project(all)}, http.StatusOK)
	}
}

// ExportStandingsHandler snapshots the leaderboard into Postgres.
func ExportStandingsHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := app.Participants.All(c.Request.Context())
		if err != nil {
			WriteJSONError(c, err)
			return
		}
		entries := leaderboard.Project(all)
		if err := app.Archive.ExportStandings(c.Request.Context(), entries); err != nil {
			WriteJSONError(c, err)
			return
		}
		WriteJSONResponse(c, gin.H{"exported": len(entries)}, http.StatusOK)
	}
}
