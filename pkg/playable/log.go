package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"japjap-server/pkg/deck"
)

// LogMessage is one line of a game's history
// "{}" in Message stands for the players in PlayerIDs
type LogMessage struct {
	UUID      string       `json:"uuid"`
	PlayerIDs []int64      `json:"playerIds"`
	Cards     []*deck.Card `json:"cards"`
	Message   string       `json:"message"`
	Time      time.Time    `json:"time"`
}

// SimpleLogMessage builds a log message about one player, or none when playerID is zero
func SimpleLogMessage(playerID int64, format string, a ...interface{}) *LogMessage {
	msg := &LogMessage{
		UUID:    uuid.NewString(),
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}

	if playerID != 0 {
		msg.PlayerIDs = []int64{playerID}
	}

	return msg
}

// SimpleLogMessageSlice wraps SimpleLogMessage for a LogChan send
func SimpleLogMessageSlice(playerID int64, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(playerID, format, a...)}
}
