package wsshandler

import (
	"context"
	"log"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/middleware"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/google/uuid"
)

// NewLockShapeHandler commits the one-time round 2 shape choice. The
// gating check runs against snapshots read inside this request, and the
// write itself is conditional on the shape still being unlocked.
func NewLockShapeHandler(auth *middleware.AuthMiddleware) func(*wsstypes.WsContext) error {
	return func(ctx *wsstypes.WsContext) error {
		requestID := uuid.New().String()

		if !auth.Authenticate(ctx) {
			return nil
		}

		var payload wsstypes.LockShapePayload
		if err := decodePayload(ctx.Payload, &payload); err != nil {
			log.Printf("[%s] [LockShape] payload decode error: %v", requestID, err)
			return broadcasts.SendErrorWithType(ctx.Conn, wsstypes.LOCK_SHAPE, "VALIDATION_ERROR", "Invalid payload format")
		}

		st, err := ctx.State.Events.Get(context.Background())
		if err != nil {
			return sendFailure(ctx, wsstypes.LOCK_SHAPE, err)
		}
		p, err := ctx.State.Participants.Get(context.Background(), ctx.UserID)
		if err != nil {
			return sendFailure(ctx, wsstypes.LOCK_SHAPE, err)
		}

		lock, err := engine.ValidateLockShape(st, p, ctx.State.EventCfg, model.ShapeKey(payload.Shape))
		if err != nil {
			log.Printf("[%s] [LockShape] rejected for %s: %v", requestID, p.Email, err)
			return sendFailure(ctx, wsstypes.LOCK_SHAPE, err)
		}

		if err := ctx.State.Participants.LockShape(context.Background(), ctx.UserID, lock); err != nil {
			log.Printf("[%s] [LockShape] commit failed for %s: %v", requestID, p.Email, err)
			return sendFailure(ctx, wsstypes.LOCK_SHAPE, err)
		}

		log.Printf("[%s] [LockShape] %s locked %s", requestID, p.Email, lock.Shape)

		return broadcasts.SendJSON(ctx.Conn, map[string]interface{}{
			"type":    wsstypes.LOCK_SHAPE,
			"status":  "ok",
			"message": "Shape locked permanently",
			"payload": map[string]interface{}{
				"shape": lock.Shape,
				"link":  lock.Link,
			},
		})
	}
}
