package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"japjap-server/internal/simulate"
	"japjap-server/pkg/playable"
)

func newSimulateCmd() *cobra.Command {
	cfg := simulate.DefaultConfig()
	var showLogs bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play bot-only games and compare the strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var onLog func(*playable.LogMessage)
			if showLogs {
				onLog = func(msg *playable.LogMessage) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%v %s\n", msg.PlayerIDs, msg.Message)
				}
			}

			results, err := simulate.Run(cmd.Context(), cfg, logrus.StandardLogger(), onLog)
			if err != nil {
				return err
			}

			return writeResults(cmd.OutOrStdout(), results)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&cfg.Games, "games", "g", cfg.Games, "games to play per strategy (env: JAPJAP_GAMES)")
	fs.IntVarP(&cfg.Bots, "bots", "b", cfg.Bots, "bots at the table (env: JAPJAP_BOTS)")
	fs.StringSliceVarP(&cfg.Strategies, "strategy", "s", cfg.Strategies, "strategies to compare (env: JAPJAP_STRATEGY)")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "score that ends a game (env: JAPJAP_THRESHOLD)")
	fs.IntVar(&cfg.HandSize, "hand-size", cfg.HandSize, "cards dealt to each bot (env: JAPJAP_HAND_SIZE)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "seed for reproducible games, 0 is random (env: JAPJAP_SEED)")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "abort a game after this many plays (env: JAPJAP_MAX_TURNS)")
	fs.BoolVar(&showLogs, "logs", false, "print every game log message (env: JAPJAP_LOGS)")
	bindEnv(fs)

	return cmd
}

func writeResults(out io.Writer, results []*simulate.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STRATEGY\tGAMES\tABORTED\tROUNDS/GAME\tTURNS/ROUND\tWINNER\tLAST\tTIME")
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
			r.Strategy,
			r.Games,
			r.Aborted,
			r.AvgRounds(),
			r.AvgTurnsPerRound(),
			r.AvgWinningScore(),
			r.AvgLosingScore(),
			r.Duration.Round(1e6),
		)
	}

	return w.Flush()
}
