package wss

import (
	"errors"
	"testing"

	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/stretchr/testify/assert"
)

func TestDispatchUnknownEvent(t *testing.T) {
	d := NewDispatcher()
	err := d.Dispatch("NO_SUCH_EVENT", &wsstypes.WsContext{})
	assert.Error(t, err)
}

func TestDispatchRoutesToHandler(t *testing.T) {
	d := NewDispatcher()

	called := false
	d.Register("PING_SERVER", func(ctx *wsstypes.WsContext) error {
		called = true
		return nil
	})

	err := d.Dispatch("PING_SERVER", &wsstypes.WsContext{})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	d := NewDispatcher()
	want := errors.New("handler blew up")
	d.Register("BOOM", func(ctx *wsstypes.WsContext) error { return want })

	err := d.Dispatch("BOOM", &wsstypes.WsContext{})
	assert.ErrorIs(t, err, want)
}
