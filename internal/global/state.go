package global

import (
	"github.com/akhilrajvs/SquidEventWssService/internal/admin"
	"github.com/akhilrajvs/SquidEventWssService/internal/config"
	"github.com/akhilrajvs/SquidEventWssService/internal/gate"
	"github.com/akhilrajvs/SquidEventWssService/internal/jwt"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/repo"
	localstate "github.com/akhilrajvs/SquidEventWssService/internal/state"
)

// State holds the application state shared across HTTP, WebSocket and
// service layers
type State struct {
	EventCfg     *config.EventConfig
	Events       *repo.EventStateRepository
	Participants *repo.ParticipantRepository
	Archive      *repo.ArchiveRepository
	Leaderboard  *leaderboard.Manager
	Local        *localstate.LocalStateManager
	Gate         *gate.AccessGate
	Admin        *admin.CommandSurface
	JwtManager   *jwt.JWTManager
}
