package japjap

import (
	"time"

	"japjap-server/pkg/deck"
)

// RoundResult is how a round ended
type RoundResult struct {
	Round       int   `json:"round"`
	CallerID    int64 `json:"callerId"`
	CallerValue int   `json:"callerValue"`
	Turns       int   `json:"turns"`
	// Points are what each participant added to their score this round
	Points map[int64]int `json:"points"`
	// Scores are the running scores after the round
	Scores  map[int64]int          `json:"scores"`
	Hands   map[int64][]*deck.Card `json:"hands"`
	EndTime time.Time              `json:"endTime"`
}

// GameLog is persisted once the game ends
type GameLog struct {
	Players   []int64          `json:"players"`
	BotNames  map[int64]string `json:"botNames"`
	Strategy  string           `json:"strategy"`
	Threshold int              `json:"threshold"`
	Rounds    []*RoundResult   `json:"rounds"`
	Winners   []int64          `json:"winners"`
	StartTime time.Time        `json:"startTime"`
	EndTime   time.Time        `json:"endTime"`
}

// AddRound records a finished round
func (g *GameLog) AddRound(result *RoundResult) {
	g.Rounds = append(g.Rounds, result)
}
