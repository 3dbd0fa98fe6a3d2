// Package admin is the operator command surface. Every operation is a
// single field-level write to the event state singleton or one targeted
// participant record; nothing here needs a multi-document transaction.
package admin

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/akhilrajvs/SquidEventWssService/internal/repo"
)

type CommandSurface struct {
	events       *repo.EventStateRepository
	participants *repo.ParticipantRepository
	leaderboard  *leaderboard.Manager
}

func NewCommandSurface(events *repo.EventStateRepository, participants *repo.ParticipantRepository, lb *leaderboard.Manager) *CommandSurface {
	return &CommandSurface{
		events:       events,
		participants: participants,
		leaderboard:  lb,
	}
}

// SetActiveForm opens one of the four round-1 form links, or closes them
// all with 0.
func (s *CommandSurface) SetActiveForm(ctx context.Context, n int) error {
	if n < model.ActiveFormClosed || n > model.MaxFormIndex {
		return errs.Validation(fmt.Sprintf("active form must be 0..%d, got %d", model.MaxFormIndex, n))
	}
	return s.events.SetField(ctx, "activeForm", n)
}

// SetStage moves the whole event to another round. The operator is trusted
// to move in any direction; no ordering between stages is enforced.
func (s *CommandSurface) SetStage(ctx context.Context, stage model.Stage) error {
	if !model.ValidStage(stage) {
		return errs.Validation(fmt.Sprintf("stage must be 1..4, got %d", stage))
	}
	log.Printf("[Admin] stage -> %d", stage)
	return s.events.SetField(ctx, "stage", stage)
}

// SetRoundEnabled flips the pause switch of a round without changing which
// round is visible.
func (s *CommandSurface) SetRoundEnabled(ctx context.Context, roundID model.Stage, enabled bool) error {
	if !model.HasPauseSwitch(roundID) {
		return errs.Validation(fmt.Sprintf("round %d has no pause switch", roundID))
	}
	field := "round2Enabled"
	if roundID == model.StageBridge {
		field = "round3Enabled"
	}
	log.Printf("[Admin] %s -> %v", field, enabled)
	return s.events.SetField(ctx, field, enabled)
}

// SetParticipantScore overwrites one participant's total score and pushes
// the new value into the leaderboard projection.
func (s *CommandSurface) SetParticipantScore(ctx context.Context, userID string, score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return errs.Validation("score must be a number")
	}
	if err := s.participants.SetScore(ctx, userID, score); err != nil {
		return err
	}
	if err := s.leaderboard.SetScore(ctx, userID, score); err != nil {
		log.Printf("[Admin] leaderboard update failed for %s: %v", userID, err)
	}
	return nil
}

// ToggleRound2Completed flips bridge eligibility for one participant and
// returns the new value. It is a flip, not a set: each toggle is an
// independent operation.
func (s *CommandSurface) ToggleRound2Completed(ctx context.Context, userID string) (bool, error) {
	p, err := s.participants.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	next := !p.Round2Completed
	if err := s.participants.SetRound2Completed(ctx, userID, next); err != nil {
		return false, err
	}
	log.Printf("[Admin] round2Completed(%s) -> %v", p.Email, next)
	return next, nil
}
