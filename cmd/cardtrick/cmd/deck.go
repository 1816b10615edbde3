package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
)

const flagOp = "op"

// NewDeckCmd prints a fresh deck in canonical order.
func NewDeckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Print the token of a new ordered deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cards.NewDeck().Serialize())
			return err
		},
	}
}

// ManipulateCmd applies a list of manipulations to a deck token.
func ManipulateCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manipulate [deck-token]",
		Short: "Apply cuts and shuffles to a deck token",
		Long: `Apply --op in order. Each op is one of:

  cut:N      move the top N cards to the bottom
  split:N    move the top N cards onto a new packet
  riffle     perfect out-shuffle
  imperfect  hand riffle drawn from --seed

Prints the resulting deck, then one line per packet split off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := cards.Load(args[0])
			if err != nil {
				return err
			}
			rng, err := app.randomness("manipulate")
			if err != nil {
				return err
			}
			specs, err := cmd.Flags().GetStringSlice(flagOp)
			if err != nil {
				return err
			}

			var packets []*cards.Deck
			for _, spec := range specs {
				m, packet, err := parseOp(spec, rng)
				if err != nil {
					return err
				}
				if err := d.Manipulate(m); err != nil {
					return fmt.Errorf("%s: %w", spec, err)
				}
				if packet != nil {
					packets = append(packets, packet)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, d.Serialize())
			for _, p := range packets {
				fmt.Fprintln(out, p.Serialize())
			}
			return nil
		},
	}
	cmd.Flags().StringSlice(flagOp, nil, "manipulation to apply (repeatable)")
	return cmd
}

// parseOp turns "cut:12", "split:26", "riffle" or "imperfect" into a
// manipulation. A split also returns the packet it fills.
func parseOp(spec string, rng cards.Randomness) (cards.Manipulation, *cards.Deck, error) {
	name, arg, hasArg := strings.Cut(spec, ":")
	n := 0
	if hasArg {
		var err error
		if n, err = strconv.Atoi(arg); err != nil {
			return cards.Manipulation{}, nil, fmt.Errorf("op %q: %w", spec, err)
		}
	}

	switch {
	case name == "cut" && hasArg:
		return cards.Cut(n), nil, nil
	case name == "split" && hasArg:
		packet := cards.NewEmptyDeck()
		return cards.CutTo(n, packet), packet, nil
	case name == "riffle" && !hasArg:
		return cards.RiffleShuffle(), nil, nil
	case name == "imperfect" && !hasArg:
		return cards.NonPerfectRiffleShuffle(rng), nil, nil
	default:
		return cards.Manipulation{}, nil, fmt.Errorf("unknown op %q", spec)
	}
}
