package state

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Handler replies and sync fanout write the same connection from
// different goroutines; every frame must arrive intact.
func TestSessionSerializesConcurrentWrites(t *testing.T) {
	const writers = 8
	const perWriter = 25

	upgrader := websocket.Upgrader{}
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		sess := NewSession(conn)

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				for j := 0; j < perWriter; j++ {
					sess.WriteJSON(map[string]int{"writer": n, "seq": j})
				}
			}(i)
		}
		wg.Wait()
		sess.Close()
		close(done)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	received := 0
	for {
		var msg map[string]int
		if err := client.ReadJSON(&msg); err != nil {
			break
		}
		received++
	}
	<-done

	assert.Equal(t, writers*perWriter, received)
}

func TestSessionCloseWithoutConn(t *testing.T) {
	assert.NoError(t, NewSession(nil).Close())
}
