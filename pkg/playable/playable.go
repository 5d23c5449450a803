package playable

import "slices"

// Playable is a game in progress at a table
// The dealer calls it from a single goroutine, implementations need no locking
type Playable interface {
	// Action applies a player's message
	// res is answered to the sender only, and updateState asks the dealer to push fresh state to everyone
	Action(playerID int64, message *PayloadIn) (res *Response, updateState bool, err error)

	// GetPlayerState is the game as seen by the player
	GetPlayerState(playerID int64) (*Response, error)

	// GetEndOfGameDetails reports the result, ok is false while the game is running
	GetEndOfGameDetails() (details *GameOverDetails, ok bool)

	// Name identifies the game type, e.g., "japjap"
	Name() string

	// LogChan delivers the game's log messages to the dealer
	LogChan() <-chan []*LogMessage
}

// Response is every message the server sends over a websocket
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK acknowledges a message, ctx is echoed back when given
func OK(ctx ...string) *Response {
	res := &Response{Key: "status", Value: "OK"}
	if len(ctx) > 0 {
		res.Context = ctx[0]
	}

	return res
}

// GameOverDetails is the result of a finished game
type GameOverDetails struct {
	// Scores are the final scores of the human players, keyed by player ID
	Scores map[int64]int
	// Winners are the human players with the lowest score
	Winners []int64
	// Log is stored with the game record
	Log interface{}
}

// IsWinner reports whether the player is among the winners
func (g *GameOverDetails) IsWinner(playerID int64) bool {
	return slices.Contains(g.Winners, playerID)
}
