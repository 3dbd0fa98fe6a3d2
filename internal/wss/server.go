package wss

import (
	"encoding/json"
	"log"
	"net/http"

	localstate "github.com/akhilrajvs/SquidEventWssService/internal/state"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsHandler upgrades the connection and pumps inbound messages through the
// dispatcher. One goroutine per session reads; all writes, including the
// sync fanout from other goroutines, go through the session's write lock.
func WsHandler(dispatcher *Dispatcher, state *wsstypes.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("[WS] upgrade error:", err)
			return
		}
		sess := localstate.NewSession(conn)
		defer sess.Close()
		log.Println("[WS] WebSocket connection established")

		var userID, email string

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("[WS] read error: %v (user: %s)", err, userID)
				cleanupConnection(state, sess, userID, email)
				return
			}

			var wsMsg wsstypes.WsMessage
			if err := json.Unmarshal(msg, &wsMsg); err != nil {
				log.Println("[WS] invalid message format:", err)
				continue
			}

			ctx := &wsstypes.WsContext{
				Conn:    sess,
				Payload: wsMsg.Payload,
				State:   state,
			}

			if err := dispatcher.Dispatch(wsMsg.Type, ctx); err != nil {
				log.Printf("[Dispatch] error handling %s: %v", wsMsg.Type, err)
			}

			// track the authenticated identity for cleanup
			if ctx.UserID != "" {
				userID = ctx.UserID
			}
			if ctx.Claims != nil {
				email = ctx.Claims.Email
			}
		}
	}
}

func cleanupConnection(state *wsstypes.State, sess *localstate.Session, userID, email string) {
	if userID == "" {
		log.Println("[WS] skipping cleanup: session never authenticated")
		return
	}

	// a reconnect may have replaced this session already; only the live
	// one gets removed and announced
	if !state.Local.RemoveClient(userID, sess) {
		log.Printf("[WS] skipping cleanup: session already replaced (user: %s)", userID)
		return
	}

	log.Printf("[WS] cleaning up session: user=%s", userID)
	broadcasts.BroadcastUserPresence(state.Local.AllClients(), userID, email, false)
}
