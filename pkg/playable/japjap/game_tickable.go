package japjap

import (
	"fmt"
	"time"
)

// Interval determines how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return time.Millisecond * 100
}

// Tick runs the pending dealer action once its time has come
func (g *Game) Tick() (bool, error) {
	if g.done || g.pendingDealerAction == nil {
		return false, nil
	}

	if time.Now().Before(g.pendingDealerAction.ExecuteAfter) {
		return false, nil
	}

	action := g.pendingDealerAction.Action
	// cleared first, the action can schedule the next one
	g.pendingDealerAction = nil

	switch action {
	case dealerActionBotTurn:
		if err := g.playBotTurn(); err != nil {
			return false, err
		}
	case dealerActionNextRound:
		if err := g.nextRound(); err != nil {
			return false, err
		}
	case dealerActionEndGame:
		g.done = true
	default:
		panic(fmt.Sprintf("unknown dealer action: %d", action))
	}

	return true, nil
}
