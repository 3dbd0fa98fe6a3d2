package model

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleParticipant Role = "PARTICIPANT"
)

type ShapeKey string

const (
	ShapeCircle   ShapeKey = "circle"
	ShapeTriangle ShapeKey = "triangle"
	ShapeStar     ShapeKey = "star"
	ShapeUmbrella ShapeKey = "umbrella"
)

// Shapes is the fixed set a participant may lock in round 2.
var Shapes = []ShapeKey{ShapeCircle, ShapeTriangle, ShapeStar, ShapeUmbrella}

func ValidShape(k ShapeKey) bool {
	for _, s := range Shapes {
		if s == k {
			return true
		}
	}
	return false
}

type BridgeChoice string

const (
	ChoiceSafe  BridgeChoice = "safe"
	ChoiceRisky BridgeChoice = "risky"
)

func ValidBridgeChoice(c BridgeChoice) bool {
	return c == ChoiceSafe || c == ChoiceRisky
}

// GlassChoice is one committed bridge step. Entries are append-only;
// once written they are never modified or removed.
type GlassChoice struct {
	Step   int          `bson:"step" json:"step"`
	Choice BridgeChoice `bson:"choice" json:"choice"`
	Link   string       `bson:"link" json:"link"`
}

// Participant is one identity's record for the whole event.
//
// Email and IsAdmin are set at creation and never change. TotalScore and
// Round2Completed are admin-writable only. SelectedShape/ShapeLocked are
// owner-writable exactly once; GlassStep/GlassChoices grow one step at a
// time, capped at BridgeSteps.
type Participant struct {
	UserID          string        `bson:"_id" json:"userId"`
	Email           string        `bson:"email" json:"email"`
	IsAdmin         bool          `bson:"isAdmin" json:"isAdmin"`
	TotalScore      float64       `bson:"totalScore" json:"totalScore"`
	Round2Completed bool          `bson:"round2Completed" json:"round2Completed"`
	SelectedShape   ShapeKey      `bson:"selectedShape,omitempty" json:"selectedShape,omitempty"`
	ShapeLocked     bool          `bson:"shapeLocked" json:"shapeLocked"`
	GlassStep       int           `bson:"glassStep" json:"glassStep"`
	GlassChoices    []GlassChoice `bson:"glassChoices" json:"glassChoices"`
	CreatedAt       int64         `bson:"createdAt" json:"createdAt"`
	LastConnected   int64         `bson:"lastConnected" json:"lastConnected"`
}

// Role classifies the record for authorization checks.
func (p *Participant) Role() Role {
	if p.IsAdmin {
		return RoleAdmin
	}
	return RoleParticipant
}

// LeaderboardEntry is one row of the score projection shown to admins.
type LeaderboardEntry struct {
	UserID        string   `json:"userId"`
	Email         string   `json:"email"`
	TotalScore    float64  `json:"totalScore"`
	Rank          int      `json:"rank"`
	SelectedShape ShapeKey `json:"selectedShape,omitempty"`
	ShapeLocked   bool     `json:"shapeLocked"`
	GlassStep     int      `json:"glassStep"`
}
