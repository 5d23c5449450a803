package japjap

import (
	"fmt"

	"japjap-server/pkg/playable"
)

// Action performs an action on behalf of a human player
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	switch message.Action {
	case "play":
		source := Source(message.Subject)
		if err := g.Play(playerID, message.Cards, source); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "japjap":
		if err := g.CallJapJap(playerID); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}
