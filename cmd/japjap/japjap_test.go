package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"japjap-server/internal/simulate"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/playable/japjap"
)

func newTestTerminal(t *testing.T, input string) (*terminal, *bytes.Buffer) {
	t.Helper()

	opts := japjap.DefaultOptions()
	opts.Bots = 1
	opts.Seed = 3
	opts.ThinkingTime = 0
	opts.RoundPause = 0

	game, err := japjap.NewGame(logrus.StandardLogger(), []int64{humanID}, opts)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.NoError(t, game.Deal())

	out := &bytes.Buffer{}
	term := newTerminal(game, strings.NewReader(input), out)
	term.sleep = func(time.Duration) {}
	return term, out
}

func Test_parseSource(t *testing.T) {
	source, err := parseSource("d")
	assert.NoError(t, err)
	assert.Equal(t, japjap.SourceDeck, source)

	source, err = parseSource("discard")
	assert.NoError(t, err)
	assert.Equal(t, japjap.SourceDiscard, source)

	_, err = parseSource("pile")
	assert.EqualError(t, err, "unknown source: pile")
}

func Test_terminal_handle(t *testing.T) {
	term, out := newTestTerminal(t, "")

	updated, err := term.handle("   ")
	assert.NoError(t, err)
	assert.False(t, updated)

	_, err = term.handle("dance")
	assert.EqualError(t, err, "unknown command: dance")

	_, err = term.handle("play 2h")
	assert.Error(t, err)

	_, err = term.handle("play zz deck")
	assert.EqualError(t, err, `could not parse card: "zz"`)

	_, err = term.handle("quit")
	assert.Equal(t, errQuit, err)

	updated, err = term.handle("help")
	assert.NoError(t, err)
	assert.False(t, updated)
	assert.Contains(t, out.String(), "call Jap Jap")
}

func Test_terminal_formatLog(t *testing.T) {
	term, _ := newTestTerminal(t, "")
	term.names[-1] = "Robo"

	msg := playable.SimpleLogMessage(-1, "{} called Jap Jap with %d", 3)
	assert.Equal(t, "Robo called Jap Jap with 3", term.formatLog(msg))

	msg = playable.SimpleLogMessage(0, "Game over, {} won")
	msg.PlayerIDs = []int64{humanID, -1}
	assert.Equal(t, "Game over, You and Robo won", term.formatLog(msg))

	assert.Equal(t, "Player 7", term.name(7))
}

func Test_terminal_run_quit(t *testing.T) {
	term, out := newTestTerminal(t, "state\nquit\n")
	assert.Equal(t, errQuit, term.run())
	assert.Contains(t, out.String(), "Your hand:")
}

func Test_writeResults(t *testing.T) {
	out := &bytes.Buffer{}
	err := writeResults(out, []*simulate.Result{{
		Strategy:     "greedy",
		Games:        2,
		Finished:     2,
		Rounds:       10,
		Turns:        50,
		WinningScore: 40,
		LosingScore:  190,
	}})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[0], "STRATEGY"))
		assert.Equal(t, []string{"greedy", "2", "0", "5.0", "5.0", "20.0", "95.0", "0s"}, strings.Fields(lines[1]))
	}
}

func Test_newCmd(t *testing.T) {
	cmd := newCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"simulate", "--games", "1", "--strategy", "greedy", "--bots", "2", "--seed", "5"})
	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "greedy")
}
