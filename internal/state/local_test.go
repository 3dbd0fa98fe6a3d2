package state

import (
	"testing"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTracking(t *testing.T) {
	lsm := NewLocalStateManager()

	s1 := NewSession(nil)
	s2 := NewSession(nil)
	lsm.AddClient("u1", s1, false)
	lsm.AddClient("u2", s2, true)

	_, found := lsm.GetClient("u1")
	assert.True(t, found)

	all := lsm.AllClients()
	assert.Len(t, all, 2)

	admins := lsm.AdminClients()
	assert.Len(t, admins, 1)
	_, isAdmin := admins["u2"]
	assert.True(t, isAdmin)

	assert.True(t, lsm.RemoveClient("u2", s2))
	assert.Len(t, lsm.AllClients(), 1)
	assert.Empty(t, lsm.AdminClients())
}

func TestAddClientReplacesSession(t *testing.T) {
	lsm := NewLocalStateManager()
	first := NewSession(nil)
	second := NewSession(nil)

	lsm.AddClient("u1", first, false)
	lsm.AddClient("u1", second, false)

	got, found := lsm.GetClient("u1")
	require.True(t, found)
	assert.Same(t, second, got)
	assert.Len(t, lsm.AllClients(), 1)
}

func TestRemoveClientIgnoresReplacedSession(t *testing.T) {
	lsm := NewLocalStateManager()
	first := NewSession(nil)
	second := NewSession(nil)

	lsm.AddClient("u1", first, false)
	lsm.AddClient("u1", second, false)
	lsm.SetParticipant(&model.Participant{UserID: "u1", Email: "a@b.com"})

	// the replaced connection's read loop exits late; the live session
	// and its cached snapshot must survive
	assert.False(t, lsm.RemoveClient("u1", first))
	_, found := lsm.GetClient("u1")
	assert.True(t, found)
	_, found = lsm.Participant("u1")
	assert.True(t, found)

	assert.True(t, lsm.RemoveClient("u1", second))
	_, found = lsm.GetClient("u1")
	assert.False(t, found)
}

func TestParticipantCacheOnlyForConnected(t *testing.T) {
	lsm := NewLocalStateManager()
	s1 := NewSession(nil)
	lsm.AddClient("u1", s1, false)

	lsm.SetParticipant(&model.Participant{UserID: "u1", Email: "a@b.com"})
	lsm.SetParticipant(&model.Participant{UserID: "ghost", Email: "g@b.com"})

	p, ok := lsm.Participant("u1")
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", p.Email)

	_, ok = lsm.Participant("ghost")
	assert.False(t, ok)

	lsm.RemoveClient("u1", s1)
	_, ok = lsm.Participant("u1")
	assert.False(t, ok)
}

func TestEventStateCache(t *testing.T) {
	lsm := NewLocalStateManager()
	assert.Nil(t, lsm.EventState())

	st := &model.EventState{Stage: model.StageRound2, Round2Enabled: true}
	lsm.SetEventState(st)
	assert.Equal(t, st, lsm.EventState())
}
