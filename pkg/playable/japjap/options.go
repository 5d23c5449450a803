package japjap

import (
	"errors"
	"time"
)

// player limits, including bots
const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Options are options for creating a new Jap Jap game
type Options struct {
	// Bots is the number of computer opponents seated after the humans
	Bots int
	// Strategy is the name of the strategy the bots use
	Strategy string
	// HandSize is how many cards are dealt to each participant
	HandSize int
	// Threshold ends the game once a score reaches it
	Threshold int
	// JapJapLimit is the highest hand value that can call Jap Jap
	JapJapLimit int
	// ThinkingTime is how long a bot waits before it acts
	ThinkingTime time.Duration
	// RoundPause is how long the hands stay revealed before the next round
	RoundPause time.Duration
	// Seed makes shuffles and the first seat reproducible, zero uses crypto/rand
	Seed int64
}

// DefaultOptions returns the default options: one human against three bots
func DefaultOptions() Options {
	return Options{
		Bots:         3,
		Strategy:     StrategyNaive,
		HandSize:     5,
		Threshold:    90,
		JapJapLimit:  5,
		ThinkingTime: time.Millisecond * 300,
		RoundPause:   time.Second * 5,
	}
}

// Validate returns an error if the options cannot make a game
func (o Options) Validate() error {
	if o.Bots < 0 {
		return errors.New("bots cannot be negative")
	}

	if o.HandSize < 2 || o.HandSize > 7 {
		return errors.New("hand size must be between 2 and 7")
	}

	if o.Threshold <= 0 {
		return errors.New("threshold must be greater than 0")
	}

	if o.JapJapLimit < 0 {
		return errors.New("the Jap Jap limit cannot be negative")
	}

	if o.ThinkingTime < 0 || o.RoundPause < 0 {
		return errors.New("delays cannot be negative")
	}

	if _, err := StrategyByName(o.Strategy); err != nil {
		return err
	}

	return nil
}
