package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
	"github.com/westonized/ballin-octo-wookie/internal/session"
)

const (
	flagSessions  = "sessions"
	flagRuns      = "runs"
	flagCuts      = "cuts"
	flagCutMin    = "cut-min"
	flagCutMax    = "cut-max"
	flagTakeMin   = "take-min"
	flagTakeMax   = "take-max"
	flagInsertMin = "insert-min"
	flagInsertMax = "insert-max"
	flagPerfect   = "perfect"
)

// SimulateCmd plays chains of scripted sessions and reports how often each
// session named the moved card.
func SimulateCmd(app *appContext) *cobra.Command {
	def := session.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play scripted sessions and report the identification rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var cfg session.Config
			if err := app.v.Unmarshal(&cfg); err != nil {
				return err
			}
			runner, err := session.NewRunner(cfg, logger)
			if err != nil {
				return err
			}

			sessions, runs := app.v.GetInt(flagSessions), app.v.GetInt(flagRuns)
			if sessions <= 0 || runs <= 0 {
				return fmt.Errorf("sessions and runs must be positive, got %d and %d", sessions, runs)
			}
			streams := make([]cards.Randomness, runs)
			for i := range streams {
				if streams[i], err = app.randomness("run-" + strconv.Itoa(i)); err != nil {
					return err
				}
			}
			rep, err := runner.Simulate(sessions, runs, func(run int) cards.Randomness { return streams[run] })
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.v.GetBool(flagJSON) {
				return json.NewEncoder(out).Encode(rep)
			}
			for i, hits := range rep.Hits {
				fmt.Fprintf(out, "session %d: %d/%d (%.1f%%)\n", i+1, hits, rep.Runs, 100*rep.Rate(i))
			}
			return nil
		},
	}

	cmd.Flags().Int(flagSessions, 10, "sessions per run")
	cmd.Flags().Int(flagRuns, 100, "independent runs")
	cmd.Flags().Int(flagCuts, def.Cuts, "cuts per session")
	cmd.Flags().Int(flagCutMin, def.CutMin, "smallest cut")
	cmd.Flags().Int(flagCutMax, def.CutMax, "largest cut, exclusive")
	cmd.Flags().Int(flagTakeMin, def.TakeMin, "first position a card is taken from")
	cmd.Flags().Int(flagTakeMax, def.TakeMax, "take position bound, exclusive")
	cmd.Flags().Int(flagInsertMin, def.InsertMin, "first position a card is inserted at")
	cmd.Flags().Int(flagInsertMax, def.InsertMax, "insert position bound, exclusive")
	cmd.Flags().Bool(flagPerfect, def.Perfect, "use a perfect riffle")
	cmd.Flags().Bool(flagJSON, false, "print the report as JSON")
	return cmd
}
