package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
	"github.com/westonized/ballin-octo-wookie/internal/trick"
)

const flagKnowledge = "knowledge"

// FindCmd names the moved card in a packet against a knowledge token.
func FindCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [packet-token]",
		Short: "Name the card moved into or out of a packet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tr, err := trick.FromKnowledge(app.v.GetString(flagKnowledge), trick.WithLogger(logger))
			if err != nil {
				return err
			}
			packet, err := cards.Load(args[0])
			if err != nil {
				return err
			}
			c, err := tr.FindCard(packet)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		},
	}
	cmd.Flags().String(flagKnowledge, "", "knowledge or deck token holding the reference deck")
	_ = cmd.MarkFlagRequired(flagKnowledge)
	return cmd
}

// PerformCmd reconciles a packet against the deck it was dealt from and
// prints the grown knowledge.
func PerformCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perform [previous-deck-token] [packet-token]",
		Short: "Name the moved card and fold the observation into knowledge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			previous, err := cards.Load(args[0])
			if err != nil {
				return err
			}
			token, err := trick.Append(app.v.GetString(flagKnowledge), previous)
			if err != nil {
				return err
			}
			tr, err := trick.FromKnowledge(token, trick.WithLogger(logger))
			if err != nil {
				return err
			}
			res, err := tr.Perform(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.v.GetBool(flagJSON) {
				return json.NewEncoder(out).Encode(res)
			}
			fmt.Fprintf(out, "%s %s\n", res.Card, res.Role)
			_, err = fmt.Fprintln(out, res.NewKnowledge)
			return err
		},
	}
	cmd.Flags().String(flagKnowledge, "", "knowledge returned by an earlier perform")
	cmd.Flags().Bool(flagJSON, false, "print the result as JSON")
	return cmd
}
