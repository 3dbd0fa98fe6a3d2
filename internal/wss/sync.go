package wss

import (
	"context"
	"log"
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/engine"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
)

const resubscribeDelay = 2 * time.Second

// Syncer propagates every committed store change to all interested
// sessions. Delivery is at-least-once and ordered per document; there is
// no ordering across documents and no atomicity between the event state
// and any participant record.
type Syncer struct {
	state *wsstypes.State
}

func NewSyncer(state *wsstypes.State) *Syncer {
	return &Syncer{state: state}
}

// Run starts the two fanout loops. Each loop resubscribes after a stream
// failure; a delivery may repeat across a resubscribe, never reorder
// within one document.
func (s *Syncer) Run(ctx context.Context) {
	go s.eventStateLoop(ctx)
	go s.participantLoop(ctx)
}

func (s *Syncer) eventStateLoop(ctx context.Context) {
	for {
		ch, err := s.state.Events.Subscribe(ctx)
		if err != nil {
			log.Printf("[Sync] event state subscribe failed: %v", err)
		} else {
			for st := range ch {
				s.state.Local.SetEventState(st)

				clients := s.state.Local.AllClients()
				broadcasts.BroadcastEventState(clients, st, func(userID string) *engine.RoundView {
					p, ok := s.state.Local.Participant(userID)
					if !ok {
						return nil
					}
					view := engine.VisibleRound(st, p)
					return &view
				})
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func (s *Syncer) participantLoop(ctx context.Context) {
	for {
		ch, err := s.state.Participants.SubscribeAll(ctx)
		if err != nil {
			log.Printf("[Sync] participant subscribe failed: %v", err)
		} else {
			for p := range ch {
				s.state.Local.SetParticipant(p)

				// the owner gets their own record plus the recomputed view
				if sess, ok := s.state.Local.GetClient(p.UserID); ok {
					var view *engine.RoundView
					if st := s.state.Local.EventState(); st != nil {
						v := engine.VisibleRound(st, p)
						view = &v
					}
					broadcasts.BroadcastParticipant(sess, p, view)
				}

				s.pushLeaderboard(ctx)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

// pushLeaderboard recomputes the score projection and fans it out to admin
// sessions. Recomputed on every participant change, not stored.
func (s *Syncer) pushLeaderboard(ctx context.Context) {
	admins := s.state.Local.AdminClients()
	if len(admins) == 0 {
		return
	}

	all, err := s.state.Participants.All(ctx)
	if err != nil {
		log.Printf("[Sync] leaderboard read failed: %v", err)
		return
	}
	broadcasts.BroadcastLeaderboard(admins, leaderboard.Project(all))
}
