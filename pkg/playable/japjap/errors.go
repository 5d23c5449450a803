package japjap

import (
	"errors"
	"fmt"
)

// ErrGameIsOver is returned when an action is attempted on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrPlayerNotFound is returned when a player is not found in the game
var ErrPlayerNotFound = errors.New("player not found")

// ErrNotYourTurn is returned when a player acts out of turn
var ErrNotYourTurn = errors.New("it is not your turn")

// ErrRoundNotInProgress is returned when an action is attempted between rounds
var ErrRoundNotInProgress = errors.New("the round is not in progress")

// ErrAlreadyDealt is returned if Deal() is called twice for the same round
var ErrAlreadyDealt = errors.New("cards have already been dealt")

// ErrNoCardsSelected is returned when a play has no cards
var ErrNoCardsSelected = errors.New("select at least one card")

// ErrCardsNotInHand is returned when a play references cards the player does not hold
var ErrCardsNotInHand = errors.New("you do not have those cards")

// ErrInvalidCombination is returned when the selected cards cannot be discarded together
var ErrInvalidCombination = errors.New("cards must share a rank or form a run of three or more of the same suit")

// ErrUnknownSource is returned when the draw source is not the deck or the discard pile
var ErrUnknownSource = errors.New("draw from the deck or the discard pile")

// ErrNothingPlayedYet is returned when Jap Jap is called before the player discarded this round
var ErrNothingPlayedYet = errors.New("you must play at least once this round before calling Jap Jap")

// ErrUnknownStrategy is returned for a bot strategy name that does not exist
var ErrUnknownStrategy = errors.New("unknown strategy")

// HandTooHighError is returned when Jap Jap is called with too many points in hand
type HandTooHighError struct {
	Value int
	Limit int
}

func (h HandTooHighError) Error() string {
	return fmt.Sprintf("your hand is worth %d, it must be %d or less to call Jap Jap", h.Value, h.Limit)
}

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d–%d players, got %d", p.Min, p.Max, p.Got)
}
