package wsshandler

import (
	"encoding/json"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
)

// decodePayload round-trips the loosely typed message payload into a
// concrete struct.
func decodePayload(payload map[string]any, dst any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// sendFailure maps a typed error onto the wire envelope. Stale-write
// conflicts tell the caller to retry the action; nothing is retried here.
func sendFailure(ctx *wsstypes.WsContext, msgType string, err error) error {
	kind := errs.KindOf(err)
	if kind == "" {
		kind = errs.KindTransport
	}
	return broadcasts.SendErrorWithType(ctx.Conn, msgType, string(kind), err.Error())
}
