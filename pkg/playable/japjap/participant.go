package japjap

import "japjap-server/pkg/deck"

// Participant is an individual seated in the game, human or bot
type Participant struct {
	PlayerID int64
	// Name is only set for bots, humans are named by the table
	Name string

	strategy  Strategy
	hand      deck.Hand
	score     int
	hasPlayed bool
}

func newParticipant(playerID int64) *Participant {
	return &Participant{
		PlayerID: playerID,
		hand:     make(deck.Hand, 0, 8),
	}
}

func newBot(playerID int64, name string, strategy Strategy) *Participant {
	p := newParticipant(playerID)
	p.Name = name
	p.strategy = strategy
	return p
}

// IsBot returns true if the participant is controlled by the server
func (p *Participant) IsBot() bool {
	return p.strategy != nil
}

// Score returns the participant's running score
func (p *Participant) Score() int {
	return p.score
}

// Hand returns a copy of the participant's hand
func (p *Participant) Hand() deck.Hand {
	return p.hand.Clone()
}

// HasPlayed returns true if the participant discarded at least once this round
func (p *Participant) HasPlayed() bool {
	return p.hasPlayed
}

func (p *Participant) resetForRound() {
	p.hand = make(deck.Hand, 0, 8)
	p.hasPlayed = false
}

// canCall returns an error if the participant cannot call Jap Jap
func (p *Participant) canCall(limit int) error {
	if !p.hasPlayed {
		return ErrNothingPlayedYet
	}

	if value := p.hand.Value(); value > limit {
		return HandTooHighError{Value: value, Limit: limit}
	}

	return nil
}
