package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"japjap-server/pkg/deck"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/playable/japjap"
)

// humanID is the player ID of the person at the terminal
const humanID int64 = 1

var errQuit = errors.New("quit")

type playConfig struct {
	bots         int
	strategy     string
	threshold    int
	handSize     int
	seed         int64
	thinkingTime time.Duration
	roundPause   time.Duration
}

func (c *playConfig) options() japjap.Options {
	opts := japjap.DefaultOptions()
	opts.Bots = c.bots
	opts.Strategy = c.strategy
	opts.Threshold = c.threshold
	opts.HandSize = c.handSize
	opts.Seed = c.seed
	opts.ThinkingTime = c.thinkingTime
	opts.RoundPause = c.roundPause
	return opts
}

func newPlayCmd() *cobra.Command {
	defaults := japjap.DefaultOptions()
	cfg := &playConfig{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against bots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := japjap.NewGame(logrus.StandardLogger(), []int64{humanID}, cfg.options())
			if err != nil {
				return err
			}

			if err := game.Deal(); err != nil {
				return err
			}

			t := newTerminal(game, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := t.run(); err != nil && !errors.Is(err, errQuit) {
				return err
			}

			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&cfg.bots, "bots", "b", defaults.Bots, "number of bots (env: JAPJAP_BOTS)")
	fs.StringVarP(&cfg.strategy, "strategy", "s", defaults.Strategy, "bot strategy, naive or greedy (env: JAPJAP_STRATEGY)")
	fs.IntVar(&cfg.threshold, "threshold", defaults.Threshold, "score that ends the game (env: JAPJAP_THRESHOLD)")
	fs.IntVar(&cfg.handSize, "hand-size", defaults.HandSize, "cards dealt to each player (env: JAPJAP_HAND_SIZE)")
	fs.Int64Var(&cfg.seed, "seed", 0, "seed for a reproducible game, 0 is random (env: JAPJAP_SEED)")
	fs.DurationVar(&cfg.thinkingTime, "thinking-time", defaults.ThinkingTime, "how long bots think (env: JAPJAP_THINKING_TIME)")
	fs.DurationVar(&cfg.roundPause, "round-pause", 2*time.Second, "pause after a round (env: JAPJAP_ROUND_PAUSE)")
	bindEnv(fs)

	return cmd
}

// terminal drives a game from a line based reader
type terminal struct {
	game  *japjap.Game
	in    *bufio.Scanner
	out   io.Writer
	names map[int64]string
	sleep func(time.Duration)
}

func newTerminal(game *japjap.Game, in io.Reader, out io.Writer) *terminal {
	return &terminal{
		game:  game,
		in:    bufio.NewScanner(in),
		out:   out,
		names: make(map[int64]string),
		sleep: time.Sleep,
	}
}

func (t *terminal) run() error {
	t.printf("Jap Jap: get your hand to %d or less, then call it. Type help for commands.\n", japjap.DefaultOptions().JapJapLimit)

	prompted := false
	for !t.game.IsDone() {
		t.printLogs()

		state, err := t.state()
		if err != nil {
			return err
		}

		if !state.IsTurn || state.GameState.Phase != japjap.PhaseTurn.String() {
			prompted = false
			t.sleep(t.game.Interval())
			if _, err := t.game.Tick(); err != nil {
				return err
			}

			continue
		}

		if !prompted {
			t.printState(state)
			prompted = true
		}

		t.printf("> ")
		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return err
			}

			return errQuit
		}

		updated, err := t.handle(t.in.Text())
		if err != nil {
			if errors.Is(err, errQuit) {
				return err
			}

			t.printf("error: %v\n", err)
			continue
		}

		if updated {
			prompted = false
		}
	}

	t.printLogs()
	t.printResult()
	return nil
}

func (t *terminal) state() (*japjap.Response, error) {
	res, err := t.game.GetPlayerState(humanID)
	if err != nil {
		return nil, err
	}

	state := res.Data.(*japjap.Response)
	for _, p := range state.GameState.Participants {
		t.names[p.PlayerID] = p.Name
	}
	t.names[humanID] = "You"

	return state, nil
}

// handle runs a single command, it returns true if the game moved on
func (t *terminal) handle(line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "p", "play":
		if len(fields) != 3 {
			return false, errors.New("usage: play <cards> <deck|discard>, e.g. play 2h,2s deck")
		}

		cards, err := deck.ParseCards(fields[1])
		if err != nil {
			return false, err
		}

		source, err := parseSource(fields[2])
		if err != nil {
			return false, err
		}

		return true, t.game.Play(humanID, cards, source)
	case "j", "japjap":
		return true, t.game.CallJapJap(humanID)
	case "s", "state":
		state, err := t.state()
		if err != nil {
			return false, err
		}

		t.printState(state)
		return false, nil
	case "h", "help":
		t.printf("play <cards> <deck|discard>  discard a combination and draw, e.g. p 2h,2s d\n")
		t.printf("japjap                       call Jap Jap\n")
		t.printf("state                        show the table\n")
		t.printf("quit                         leave the game\n")
		return false, nil
	case "q", "quit", "exit":
		return false, errQuit
	}

	return false, fmt.Errorf("unknown command: %s", fields[0])
}

func parseSource(s string) (japjap.Source, error) {
	switch s {
	case "d", "deck":
		return japjap.SourceDeck, nil
	case "x", "discard":
		return japjap.SourceDiscard, nil
	}

	return "", fmt.Errorf("unknown source: %s", s)
}

func (t *terminal) printState(state *japjap.Response) {
	gs := state.GameState
	t.printf("\nRound %d, discard: %s (%d cards), deck: %d cards\n", gs.Round, cardString(gs.DiscardTop), gs.DiscardCount, gs.DeckCount)
	for _, p := range gs.Participants {
		t.printf("  %-12s score %3d, %d cards\n", t.name(p.PlayerID), p.Score, p.CardsInHand)
	}

	t.printf("Your hand: %s (worth %d)\n", handString(state.Hand), state.HandValue)
	if state.CanCall {
		t.printf("You can call Jap Jap!\n")
	}
}

func (t *terminal) printResult() {
	details, over := t.game.GetEndOfGameDetails()
	if !over {
		return
	}

	if details.IsWinner(humanID) {
		t.printf("You won with %d points!\n", details.Scores[humanID])
		return
	}

	t.printf("You lost with %d points.\n", details.Scores[humanID])
}

func (t *terminal) printLogs() {
	for {
		select {
		case messages := <-t.game.LogChan():
			for _, msg := range messages {
				t.printf("%s\n", t.formatLog(msg))
			}
		default:
			return
		}
	}
}

// formatLog replaces {} with the names of the players in the message
func (t *terminal) formatLog(msg *playable.LogMessage) string {
	names := make([]string, len(msg.PlayerIDs))
	for i, id := range msg.PlayerIDs {
		names[i] = t.name(id)
	}

	text := strings.ReplaceAll(msg.Message, "{}", strings.Join(names, " and "))
	if len(msg.Cards) > 0 {
		text += ": " + handString(msg.Cards)
	}

	return text
}

func (t *terminal) name(playerID int64) string {
	if name, ok := t.names[playerID]; ok && name != "" {
		return name
	}

	if playerID == humanID {
		return "You"
	}

	return fmt.Sprintf("Player %d", playerID)
}

func (t *terminal) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(t.out, format, a...)
}

func cardString(card *deck.Card) string {
	if card == nil {
		return "none"
	}

	return fmt.Sprintf("%s [%s]", card.String(), deck.CardToString(card))
}

func handString(cards []*deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = cardString(card)
	}

	return strings.Join(parts, " ")
}
