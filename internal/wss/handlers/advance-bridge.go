package wsshandler

import (
	"context"
	"log"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/middleware"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/google/uuid"
)

// NewAdvanceBridgeHandler appends one glass bridge step. The append target
// is derived from the record read inside this request, and the write is
// conditional on the persisted step still matching it: of two duplicate
// submissions exactly one commits, the other gets a stale-write conflict
// and must be retried by the caller, never here.
func NewAdvanceBridgeHandler(auth *middleware.AuthMiddleware) func(*wsstypes.WsContext) error {
	return func(ctx *wsstypes.WsContext) error {
		requestID := uuid.New().String()

		if !auth.Authenticate(ctx) {
			return nil
		}

		var payload wsstypes.AdvanceBridgePayload
		if err := decodePayload(ctx.Payload, &payload); err != nil {
			log.Printf("[%s] [AdvanceBridge] payload decode error: %v", requestID, err)
			return broadcasts.SendErrorWithType(ctx.Conn, wsstypes.ADVANCE_BRIDGE, "VALIDATION_ERROR", "Invalid payload format")
		}

		st, err := ctx.State.Events.Get(context.Background())
		if err != nil {
			return sendFailure(ctx, wsstypes.ADVANCE_BRIDGE, err)
		}
		p, err := ctx.State.Participants.Get(context.Background(), ctx.UserID)
		if err != nil {
			return sendFailure(ctx, wsstypes.ADVANCE_BRIDGE, err)
		}

		adv, err := engine.ValidateAdvanceBridge(st, p, ctx.State.EventCfg, model.BridgeChoice(payload.Choice))
		if err != nil {
			log.Printf("[%s] [AdvanceBridge] rejected for %s: %v", requestID, p.Email, err)
			return sendFailure(ctx, wsstypes.ADVANCE_BRIDGE, err)
		}

		if err := ctx.State.Participants.AdvanceBridge(context.Background(), ctx.UserID, adv); err != nil {
			if errs.Is(err, errs.KindStaleWriteConflict) {
				log.Printf("[%s] [AdvanceBridge] duplicate submission lost the race for %s", requestID, p.Email)
			} else {
				log.Printf("[%s] [AdvanceBridge] commit failed for %s: %v", requestID, p.Email, err)
			}
			return sendFailure(ctx, wsstypes.ADVANCE_BRIDGE, err)
		}

		log.Printf("[%s] [AdvanceBridge] %s stepped to %d (%s)", requestID, p.Email, adv.Entry.Step, adv.Entry.Choice)

		return broadcasts.SendJSON(ctx.Conn, map[string]interface{}{
			"type":    wsstypes.ADVANCE_BRIDGE,
			"status":  "ok",
			"message": "Bridge step recorded",
			"payload": map[string]interface{}{
				"step":   adv.Entry.Step,
				"choice": adv.Entry.Choice,
				"link":   adv.Entry.Link,
			},
		})
	}
}
