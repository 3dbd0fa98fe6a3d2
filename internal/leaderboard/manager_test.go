package leaderboard

import (
	"testing"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSortsByScoreDescending(t *testing.T) {
	participants := []model.Participant{
		{UserID: "a", Email: "a@e.com", TotalScore: 10},
		{UserID: "b", Email: "b@e.com", TotalScore: 30},
		{UserID: "c", Email: "c@e.com", TotalScore: 20},
	}

	entries := Project(participants)
	require.Len(t, entries, 3)

	scores := []float64{entries[0].TotalScore, entries[1].TotalScore, entries[2].TotalScore}
	assert.Equal(t, []float64{30, 20, 10}, scores)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestProjectTieBreaksByEmail(t *testing.T) {
	participants := []model.Participant{
		{UserID: "z", Email: "zeta@e.com", TotalScore: 50},
		{UserID: "a", Email: "alpha@e.com", TotalScore: 50},
	}

	entries := Project(participants)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha@e.com", entries[0].Email)
	assert.Equal(t, "zeta@e.com", entries[1].Email)
}

func TestProjectCarriesProgressFields(t *testing.T) {
	participants := []model.Participant{
		{
			UserID:        "a",
			Email:         "a@e.com",
			TotalScore:    5,
			SelectedShape: model.ShapeStar,
			ShapeLocked:   true,
			GlassStep:     3,
		},
	}

	entries := Project(participants)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ShapeStar, entries[0].SelectedShape)
	assert.True(t, entries[0].ShapeLocked)
	assert.Equal(t, 3, entries[0].GlassStep)
}

func TestProjectEmpty(t *testing.T) {
	assert.Empty(t, Project(nil))
}
