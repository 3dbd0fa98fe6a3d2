package wsshandler

import (
	"context"
	"log"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/middleware"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/google/uuid"
)

// NewJoinEventHandler registers an authenticated session: the connection
// starts receiving every event state change plus its own record changes,
// and gets the current snapshots immediately.
func NewJoinEventHandler(auth *middleware.AuthMiddleware) func(*wsstypes.WsContext) error {
	return func(ctx *wsstypes.WsContext) error {
		requestID := uuid.New().String()

		if !auth.Authenticate(ctx) {
			return nil
		}

		st, err := ctx.State.Events.Get(context.Background())
		if err != nil {
			log.Printf("[%s] [JoinEvent] event state read failed: %v", requestID, err)
			return sendFailure(ctx, wsstypes.JOIN_EVENT, err)
		}

		p, err := ctx.State.Participants.Get(context.Background(), ctx.UserID)
		if err != nil {
			log.Printf("[%s] [JoinEvent] participant read failed: %v", requestID, err)
			return sendFailure(ctx, wsstypes.JOIN_EVENT, err)
		}

		isAdmin := ctx.Claims.Role == model.RoleAdmin
		ctx.State.Local.AddClient(ctx.UserID, ctx.Conn, isAdmin)
		ctx.State.Local.SetEventState(st)
		ctx.State.Local.SetParticipant(p)

		if err := ctx.State.Participants.SetLastConnected(context.Background(), ctx.UserID); err != nil {
			log.Printf("[%s] [JoinEvent] lastConnected update failed: %v", requestID, err)
		}

		broadcasts.BroadcastUserPresence(ctx.State.Local.AllClients(), ctx.UserID, p.Email, true)
		log.Printf("[%s] [JoinEvent] %s joined (admin=%v)", requestID, p.Email, isAdmin)

		view := engine.VisibleRound(st, p)
		payload := map[string]interface{}{
			"userId":      ctx.UserID,
			"eventState":  st,
			"participant": p,
			"view":        view,
		}

		if isAdmin {
			all, err := ctx.State.Participants.All(context.Background())
			if err != nil {
				log.Printf("[%s] [JoinEvent] leaderboard read failed: %v", requestID, err)
			} else {
				payload["leaderboard"] = leaderboard.Project(all)
			}
		}

		return broadcasts.SendJSON(ctx.Conn, map[string]interface{}{
			"type":    wsstypes.JOIN_EVENT,
			"status":  "ok",
			"message": "Joined event successfully",
			"payload": payload,
		})
	}
}
