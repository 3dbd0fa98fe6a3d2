// Package engine holds the pure decision logic of the event: which round a
// participant can currently see, and whether a requested action is allowed
// against the latest known snapshots. Nothing in here touches the store;
// callers feed in snapshots and convert accepted actions into conditional
// writes.
package engine

import (
	"fmt"

	"github.com/akhilrajvs/SquidEventWssService/internal/config"
	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
)

// SubState is the actionability of the currently visible round.
type SubState string

const (
	SubClosed         SubState = "CLOSED"          // round 1, red light
	SubOpen           SubState = "OPEN"            // round 1, form link live
	SubDisabled       SubState = "DISABLED"        // round paused by admin
	SubChoosing       SubState = "CHOOSING"        // round 2, shape not yet locked
	SubLockedChoice   SubState = "LOCKED_CHOICE"   // round 2, shape locked
	SubIneligible     SubState = "INELIGIBLE"      // bridge, round 2 not verified
	SubAwaitingChoice SubState = "AWAITING_CHOICE" // bridge, next step open
	SubComplete       SubState = "COMPLETE"        // bridge, all steps done
)

// RoundView is the projection of (event state, participant) onto what the
// presentation layer may render. Unknown=true means the stage value has no
// defined round; nothing is actionable and no round is defaulted to.
type RoundView struct {
	Stage      model.Stage `json:"stage"`
	Unknown    bool        `json:"unknown"`
	Sub        SubState    `json:"sub,omitempty"`
	ActiveForm int         `json:"activeForm,omitempty"`
}

// VisibleRound computes the one round a participant may currently see.
// Rules are evaluated in order; any stage without a defined round view
// (the finale stage included) yields the explicit unknown view.
func VisibleRound(state *model.EventState, p *model.Participant) RoundView {
	switch state.Stage {
	case model.StageRound1:
		if state.ActiveForm == model.ActiveFormClosed {
			return RoundView{Stage: model.StageRound1, Sub: SubClosed}
		}
		return RoundView{Stage: model.StageRound1, Sub: SubOpen, ActiveForm: state.ActiveForm}

	case model.StageRound2:
		switch {
		case !state.Round2Enabled:
			return RoundView{Stage: model.StageRound2, Sub: SubDisabled}
		case p.ShapeLocked:
			return RoundView{Stage: model.StageRound2, Sub: SubLockedChoice}
		default:
			return RoundView{Stage: model.StageRound2, Sub: SubChoosing}
		}

	case model.StageBridge:
		switch {
		case !p.Round2Completed:
			return RoundView{Stage: model.StageBridge, Sub: SubIneligible}
		case !state.Round3Enabled:
			return RoundView{Stage: model.StageBridge, Sub: SubDisabled}
		case p.GlassStep >= model.BridgeSteps:
			return RoundView{Stage: model.StageBridge, Sub: SubComplete}
		default:
			return RoundView{Stage: model.StageBridge, Sub: SubAwaitingChoice}
		}
	}

	return RoundView{Stage: state.Stage, Unknown: true}
}

// ShapeLock is an accepted lockShape action: a single atomic write of both
// fields, conditional on the shape still being unlocked at commit time.
type ShapeLock struct {
	Shape model.ShapeKey
	Link  string
}

// ValidateLockShape checks the one-time shape choice against the gating
// table. The returned write must be committed conditionally on
// shapeLocked still being false.
func ValidateLockShape(state *model.EventState, p *model.Participant, cfg *config.EventConfig, shape model.ShapeKey) (*ShapeLock, error) {
	if !model.ValidShape(shape) {
		return nil, errs.Validation(fmt.Sprintf("unknown shape key %q", shape))
	}
	if state.Stage != model.StageRound2 {
		return nil, errs.GatingViolation("shape choice is only open during stage 2")
	}
	if !state.Round2Enabled {
		return nil, errs.GatingViolation("round 2 is paused")
	}
	if p.ShapeLocked {
		return nil, errs.GatingViolation("shape is already locked")
	}

	link, ok := cfg.ShapeLink(shape)
	if !ok {
		return nil, errs.Validation(fmt.Sprintf("no link configured for shape %q", shape))
	}
	return &ShapeLock{Shape: shape, Link: link}, nil
}

// BridgeAdvance is an accepted advanceBridge action. ExpectedStep is the
// glassStep the action observed; the append commits only if the persisted
// value still matches it (stale-write rejection otherwise).
type BridgeAdvance struct {
	ExpectedStep int
	Entry        model.GlassChoice
}

// ValidateAdvanceBridge checks one bridge step against the gating table.
// The append target is always derived from the snapshot passed in here,
// never from a value captured earlier in the request.
func ValidateAdvanceBridge(state *model.EventState, p *model.Participant, cfg *config.EventConfig, choice model.BridgeChoice) (*BridgeAdvance, error) {
	if !model.ValidBridgeChoice(choice) {
		return nil, errs.Validation(fmt.Sprintf("unknown bridge choice %q", choice))
	}
	if state.Stage != model.StageBridge {
		return nil, errs.GatingViolation("bridge is only open during the bridge stage")
	}
	if !p.Round2Completed {
		return nil, errs.GatingViolation("not eligible: round 2 completion not verified")
	}
	if !state.Round3Enabled {
		return nil, errs.GatingViolation("bridge round is paused")
	}
	if p.GlassStep >= model.BridgeSteps {
		return nil, errs.GatingViolation("all bridge steps already completed")
	}

	link, ok := cfg.BridgeLink(choice, p.GlassStep)
	if !ok {
		return nil, errs.Validation("no link configured for this bridge step")
	}

	return &BridgeAdvance{
		ExpectedStep: p.GlassStep,
		Entry: model.GlassChoice{
			Step:   p.GlassStep + 1,
			Choice: choice,
			Link:   link,
		},
	}, nil
}
