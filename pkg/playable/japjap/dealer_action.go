package japjap

import "time"

// dealerAction is an action the "dealer" takes on its own, such as moving to the next round
type dealerAction int

const (
	dealerActionBotTurn dealerAction = iota
	dealerActionNextRound
	dealerActionEndGame
)

func (d dealerAction) String() string {
	switch d {
	case dealerActionBotTurn:
		return "botTurn"
	case dealerActionNextRound:
		return "nextRound"
	case dealerActionEndGame:
		return "endGame"
	}

	return "unknown"
}

type pendingDealerAction struct {
	Action       dealerAction
	ExecuteAfter time.Time
}
