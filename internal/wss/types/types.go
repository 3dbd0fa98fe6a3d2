package wsstypes

import (
	"github.com/akhilrajvs/SquidEventWssService/internal/admin"
	"github.com/akhilrajvs/SquidEventWssService/internal/config"
	"github.com/akhilrajvs/SquidEventWssService/internal/gate"
	"github.com/akhilrajvs/SquidEventWssService/internal/jwt"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/repo"
	"github.com/akhilrajvs/SquidEventWssService/internal/state"
)

// State holds the application state shared across WebSocket and service layers
type State struct {
	EventCfg     *config.EventConfig
	Events       *repo.EventStateRepository
	Participants *repo.ParticipantRepository
	Local        *state.LocalStateManager
	Gate         *gate.AccessGate
	Admin        *admin.CommandSurface
	Leaderboard  *leaderboard.Manager
	JwtManager   *jwt.JWTManager
}

type WsContext struct {
	Conn    *state.Session
	Payload map[string]any
	UserID  string
	Claims  *jwt.CustomClaims
	State   *State
}

type WsMessage struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type JoinEventPayload struct {
	Token string `json:"token"`
}

type LockShapePayload struct {
	Token string `json:"token"`
	Shape string `json:"shape"`
}

type AdvanceBridgePayload struct {
	Token  string `json:"token"`
	Choice string `json:"choice"`
}

type RefetchStatePayload struct {
	Token string `json:"token"`
}

const (
	PING_SERVER = "PING_SERVER"

	JOIN_EVENT     = "JOIN_EVENT"
	REFETCH_STATE  = "REFETCH_STATE"
	LOCK_SHAPE     = "LOCK_SHAPE"
	ADVANCE_BRIDGE = "ADVANCE_BRIDGE"

	USER_JOINED = "USER_JOINED"
	USER_LEFT   = "USER_LEFT"

	EVENT_STATE_UPDATED = "EVENT_STATE_UPDATED"
	PARTICIPANT_UPDATED = "PARTICIPANT_UPDATED"
	LEADERBOARD_UPDATED = "LEADERBOARD_UPDATED"

	AUTH_ERROR = "AUTH_ERROR"
)
