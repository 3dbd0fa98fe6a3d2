package broadcasts

import (
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/akhilrajvs/SquidEventWssService/internal/state"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
)

// BroadcastEventState pushes a new event state snapshot to every session,
// each with its own recomputed round view.
func BroadcastEventState(clients map[string]*state.Session, st *model.EventState, viewFor func(userID string) *engine.RoundView) {
	for userID, sess := range clients {
		if sess == nil {
			continue
		}
		payload := map[string]interface{}{
			"eventState": st,
			"time":       time.Now().Unix(),
		}
		if view := viewFor(userID); view != nil {
			payload["view"] = view
		}
		SendJSON(sess, map[string]interface{}{
			"type":    wsstypes.EVENT_STATE_UPDATED,
			"status":  "ok",
			"payload": payload,
		})
	}
}

// BroadcastParticipant pushes a participant's own updated record back to
// that session together with the recomputed view.
func BroadcastParticipant(sess *state.Session, p *model.Participant, view *engine.RoundView) {
	if sess == nil {
		return
	}
	payload := map[string]interface{}{
		"participant": p,
		"time":        time.Now().Unix(),
	}
	if view != nil {
		payload["view"] = view
	}
	SendJSON(sess, map[string]interface{}{
		"type":    wsstypes.PARTICIPANT_UPDATED,
		"status":  "ok",
		"payload": payload,
	})
}

// BroadcastLeaderboard pushes the score projection to admin sessions.
func BroadcastLeaderboard(admins map[string]*state.Session, entries []*model.LeaderboardEntry) {
	for _, sess := range admins {
		if sess == nil {
			continue
		}
		SendJSON(sess, map[string]interface{}{
			"type":   wsstypes.LEADERBOARD_UPDATED,
			"status": "ok",
			"payload": map[string]interface{}{
				"leaderboard": entries,
				"time":        time.Now().Unix(),
			},
		})
	}
}

// BroadcastUserPresence announces joins and leaves to every session.
func BroadcastUserPresence(clients map[string]*state.Session, userID, email string, joined bool) {
	evtype := wsstypes.USER_LEFT
	message := "User has left the event"
	if joined {
		evtype = wsstypes.USER_JOINED
		message = "User has joined the event"
	}
	for _, sess := range clients {
		if sess == nil {
			continue
		}
		SendJSON(sess, map[string]interface{}{
			"type":    evtype,
			"status":  "ok",
			"message": message,
			"payload": map[string]interface{}{
				"userId": userID,
				"email":  email,
				"time":   time.Now().Unix(),
			},
		})
	}
}
