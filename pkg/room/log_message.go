package room

import (
	"japjap-server/pkg/playable"
)

// logMessageLimit is how many log messages a table keeps for clients that connect mid-game
const logMessageLimit = 25

// addLogMessages adds log messages, only the most recent are kept
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = append([]*playable.LogMessage{}, m[count-logMessageLimit:]...)
	}

	d.logMessages = m
}

func newLogsResponse(messages []*playable.LogMessage) *playable.Response {
	return &playable.Response{
		Key:  "logs",
		Data: messages,
	}
}
