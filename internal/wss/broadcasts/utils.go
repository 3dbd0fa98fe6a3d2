package broadcasts

import (
	"github.com/akhilrajvs/SquidEventWssService/internal/state"
)

// SendJSON writes through the session so replies and fanout never write
// the underlying connection concurrently.
func SendJSON(sess *state.Session, data interface{}) error {
	return sess.WriteJSON(data)
}

func SendErrorWithType(sess *state.Session, eventType string, errorType string, msg string) error {
	return SendJSON(sess, map[string]interface{}{
		"type":   eventType,
		"status": "error",
		"error": map[string]interface{}{
			"errorType": errorType,
			"message":   msg,
		},
	})
}
