package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/redis/go-redis/v9"
)

const boardKey = "event:leaderboard"

// Manager keeps the score projection in a Redis sorted set so the admin
// read-model stays cheap to rebuild on every change. The participants
// collection remains the source of truth; Rebuild resyncs from it.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// SetScore writes one participant's score into the projection.
func (m *Manager) SetScore(ctx context.Context, userID string, score float64) error {
	err := m.client.ZAdd(ctx, boardKey, redis.Z{Member: userID, Score: score}).Err()
	if err != nil {
		return fmt.Errorf("failed to update leaderboard score: %w", err)
	}
	return nil
}

// Rebuild replaces the projection with the given records.
func (m *Manager) Rebuild(ctx context.Context, participants []model.Participant) error {
	pipe := m.client.TxPipeline()
	pipe.Del(ctx, boardKey)
	for _, p := range participants {
		pipe.ZAdd(ctx, boardKey, redis.Z{Member: p.UserID, Score: p.TotalScore})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	return nil
}

// Project sorts the given records by the projection order and assigns
// 1-based ranks. Ties break by email so repeated reads are stable.
func Project(participants []model.Participant) []*model.LeaderboardEntry {
	entries := make([]*model.LeaderboardEntry, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		entries = append(entries, &model.LeaderboardEntry{
			UserID:        p.UserID,
			Email:         p.Email,
			TotalScore:    p.TotalScore,
			SelectedShape: p.SelectedShape,
			ShapeLocked:   p.ShapeLocked,
			GlassStep:     p.GlassStep,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].Email < entries[j].Email
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Top returns the highest-scored user IDs from the projection, best first.
func (m *Manager) Top(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	ids, err := m.client.ZRevRange(ctx, boardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return ids, nil
}
