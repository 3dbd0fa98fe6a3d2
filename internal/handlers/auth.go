package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/global"
	"github.com/gin-gonic/gin"
)

const sessionLifetime = 12 * time.Hour

type loginRequest struct {
	Email         string `json:"email"`
	EventPassword string `json:"eventPassword"`
}

// LoginHandler runs the access gate and issues a session token. All
// rejections share one message so registration status never leaks.
func LoginHandler(app *global.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			WriteJSONError(c, errs.Validation("invalid request body"))
			return
		}

		verdict, err := app.Gate.Authorize(c.Request.Context(), req.Email, req.EventPassword)
		if err != nil {
			WriteJSONError(c, err)
			return
		}

		token, err := app.JwtManager.GenerateToken(verdict.UserID, verdict.Email, verdict.Role, sessionLifetime)
		if err != nil {
			WriteJSONError(c, errs.Transport("failed to issue session token", err))
			return
		}

		log.Printf("[Auth] %s entered as %s", verdict.Email, verdict.Role)
		WriteJSONResponse(c, gin.H{
			"userId": verdict.UserID,
			"email":  verdict.Email,
			"role":   verdict.Role,
			"token":  token,
		}, http.StatusOK)
	}
}
