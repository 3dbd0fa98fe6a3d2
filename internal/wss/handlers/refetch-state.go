package wsshandler

import (
	"context"
	"log"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/middleware"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/google/uuid"
)

// NewRefetchStateHandler resends the latest committed snapshots to a
// session that wants to resync (e.g. after a missed delivery).
func NewRefetchStateHandler(auth *middleware.AuthMiddleware) func(*wsstypes.WsContext) error {
	return func(ctx *wsstypes.WsContext) error {
		requestID := uuid.New().String()

		if !auth.Authenticate(ctx) {
			return nil
		}

		st, err := ctx.State.Events.Get(context.Background())
		if err != nil {
			log.Printf("[%s] [RefetchState] event state read failed: %v", requestID, err)
			return sendFailure(ctx, wsstypes.REFETCH_STATE, err)
		}
		p, err := ctx.State.Participants.Get(context.Background(), ctx.UserID)
		if err != nil {
			log.Printf("[%s] [RefetchState] participant read failed: %v", requestID, err)
			return sendFailure(ctx, wsstypes.REFETCH_STATE, err)
		}

		view := engine.VisibleRound(st, p)
		return broadcasts.SendJSON(ctx.Conn, map[string]interface{}{
			"type":    wsstypes.REFETCH_STATE,
			"status":  "ok",
			"message": "State fetched successfully",
			"payload": map[string]interface{}{
				"userId":      ctx.UserID,
				"eventState":  st,
				"participant": p,
				"view":        view,
			},
		})
	}
}
