// Package simulate plays bot-only games of Jap Jap as fast as possible and compares strategies
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/playable/japjap"
)

// ErrTooManyTurns is returned when a game does not end within the turn limit
var ErrTooManyTurns = errors.New("the game did not end within the turn limit")

// ErrStalled is returned when a game has nothing left to do but is not over
var ErrStalled = errors.New("the game stalled")

// Config describes a batch of simulated games
type Config struct {
	// Games is how many games each strategy plays
	Games      int
	Bots       int
	Strategies []string
	HandSize   int
	Threshold  int
	// Seed makes the batch reproducible, zero is random
	Seed int64
	// MaxTurns aborts a game that runs longer
	MaxTurns int
}

// DefaultConfig returns a batch of 100 games per strategy with three bots
func DefaultConfig() Config {
	opts := japjap.DefaultOptions()
	return Config{
		Games:      100,
		Bots:       opts.Bots,
		Strategies: japjap.StrategyNames,
		HandSize:   opts.HandSize,
		Threshold:  opts.Threshold,
		MaxTurns:   10000,
	}
}

// Validate returns an error if the batch cannot be played
func (c Config) Validate() error {
	if c.Games <= 0 {
		return errors.New("games must be greater than 0")
	}

	if c.MaxTurns <= 0 {
		return errors.New("max turns must be greater than 0")
	}

	if len(c.Strategies) == 0 {
		return errors.New("at least one strategy is required")
	}

	for _, strategy := range c.Strategies {
		if _, err := japjap.NewGame(nil, nil, c.options(strategy, 0)); err != nil {
			return err
		}
	}

	return nil
}

func (c Config) options(strategy string, game int) japjap.Options {
	opts := japjap.DefaultOptions()
	opts.Bots = c.Bots
	opts.Strategy = strategy
	opts.HandSize = c.HandSize
	opts.Threshold = c.Threshold
	opts.ThinkingTime = 0
	opts.RoundPause = 0
	if c.Seed != 0 {
		opts.Seed = c.Seed + int64(game)
	}

	return opts
}

// Result summarises the games played with one strategy
type Result struct {
	Strategy string `json:"strategy"`
	Games    int    `json:"games"`
	Finished int    `json:"finished"`
	Aborted  int    `json:"aborted"`
	Rounds   int    `json:"rounds"`
	Turns    int    `json:"turns"`
	// WinningScore and LosingScore are summed over finished games
	WinningScore int           `json:"winningScore"`
	LosingScore  int           `json:"losingScore"`
	Duration     time.Duration `json:"duration"`
}

// AvgRounds is the average number of rounds in a finished game
func (r *Result) AvgRounds() float64 {
	return r.avg(r.Rounds)
}

// AvgTurnsPerRound is the average number of plays before somebody called Jap Jap
func (r *Result) AvgTurnsPerRound() float64 {
	if r.Rounds == 0 {
		return 0
	}

	return float64(r.Turns) / float64(r.Rounds)
}

// AvgWinningScore is the average final score of the winner
func (r *Result) AvgWinningScore() float64 {
	return r.avg(r.WinningScore)
}

// AvgLosingScore is the average final score of the last place
func (r *Result) AvgLosingScore() float64 {
	return r.avg(r.LosingScore)
}

func (r *Result) avg(total int) float64 {
	if r.Finished == 0 {
		return 0
	}

	return float64(total) / float64(r.Finished)
}

// Run plays cfg.Games games for every strategy
// Log messages from the games are handed to onLog when it is not nil
func Run(ctx context.Context, cfg Config, logger logrus.FieldLogger, onLog func(*playable.LogMessage)) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(cfg.Strategies))
	for _, strategy := range cfg.Strategies {
		result := &Result{Strategy: strategy}
		start := time.Now()

		for i := 0; i < cfg.Games; i++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			result.Games++
			gameLog, err := Play(cfg.options(strategy, i), cfg.MaxTurns, logger, onLog)
			if err != nil {
				logger.WithError(err).WithField("strategy", strategy).WithField("game", i).Warn("game aborted")
				result.Aborted++
				continue
			}

			result.add(gameLog)
		}

		result.Duration = time.Since(start)
		results = append(results, result)
	}

	return results, nil
}

func (r *Result) add(gameLog *japjap.GameLog) {
	r.Finished++
	r.Rounds += len(gameLog.Rounds)
	for _, round := range gameLog.Rounds {
		r.Turns += round.Turns
	}

	if len(gameLog.Rounds) == 0 {
		return
	}

	final := gameLog.Rounds[len(gameLog.Rounds)-1].Scores
	lowest, highest := -1, -1
	for _, score := range final {
		if lowest == -1 || score < lowest {
			lowest = score
		}

		if score > highest {
			highest = score
		}
	}

	r.WinningScore += lowest
	r.LosingScore += highest
}

// Play runs a single bot-only game to the end and returns its log
func Play(opts japjap.Options, maxTurns int, logger logrus.FieldLogger, onLog func(*playable.LogMessage)) (*japjap.GameLog, error) {
	game, err := japjap.NewGame(logger, nil, opts)
	if err != nil {
		return nil, err
	}

	if err := game.Deal(); err != nil {
		return nil, err
	}

	for !game.IsDone() {
		if game.TotalTurns() > maxTurns {
			return nil, fmt.Errorf("%w: %d", ErrTooManyTurns, maxTurns)
		}

		updated, err := game.Tick()
		drainLogs(game, onLog)
		if err != nil {
			return nil, err
		}

		if !updated && !game.IsDone() {
			return nil, ErrStalled
		}
	}

	return game.Log(), nil
}

func drainLogs(game *japjap.Game, onLog func(*playable.LogMessage)) {
	for {
		select {
		case messages := <-game.LogChan():
			if onLog == nil {
				continue
			}

			for _, msg := range messages {
				onLog(msg)
			}
		default:
			return
		}
	}
}
