package model

// EventStateID is the key of the singleton event state document.
const EventStateID = "current"

type Stage int

const (
	StageRound1 Stage = 1
	StageRound2 Stage = 2
	StageBridge Stage = 3
	StageFinale Stage = 4
)

// ActiveFormClosed means no form link is visible (red light).
const ActiveFormClosed = 0

// MaxFormIndex is the highest selectable form during stage 1.
const MaxFormIndex = 4

// BridgeSteps is the number of glass bridge choices a participant makes.
const BridgeSteps = 5

// EventState is the single global document controlling what every
// participant may currently see and do. Mutated only by the admin
// command surface; everyone else holds a read-only snapshot.
type EventState struct {
	ID            string `bson:"_id" json:"id"`
	Stage         Stage  `bson:"stage" json:"stage"`
	ActiveForm    int    `bson:"activeForm" json:"activeForm"`
	Round2Enabled bool   `bson:"round2Enabled" json:"round2Enabled"`
	Round3Enabled bool   `bson:"round3Enabled" json:"round3Enabled"`
	UpdatedAt     int64  `bson:"updatedAt" json:"updatedAt"`
}

// NewEventState returns the pre-event state: stage 1, forms closed,
// every round paused.
func NewEventState() *EventState {
	return &EventState{
		ID:         EventStateID,
		Stage:      StageRound1,
		ActiveForm: ActiveFormClosed,
	}
}

// RoundEnabled reports whether the pause switch for the given round is on.
// Rounds without a pause switch are always enabled.
func (s *EventState) RoundEnabled(roundID Stage) bool {
	switch roundID {
	case StageRound2:
		return s.Round2Enabled
	case StageBridge:
		return s.Round3Enabled
	default:
		return true
	}
}

// HasPauseSwitch reports whether a round has an independent enable flag.
func HasPauseSwitch(roundID Stage) bool {
	return roundID == StageRound2 || roundID == StageBridge
}

// ValidStage reports whether s is one of the four operator-settable stages.
func ValidStage(s Stage) bool {
	return s >= StageRound1 && s <= StageFinale
}
