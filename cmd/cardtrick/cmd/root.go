package cmd

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
)

const (
	BinaryName = "cardtrick"
	// EnvPrefix prefixes environment overrides, e.g. CARDTRICK_LOG_LEVEL.
	EnvPrefix = "CARDTRICK"

	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagSeed      = "seed"
	flagJSON      = "json"
)

// appContext is shared by every subcommand of one root.
type appContext struct {
	v *viper.Viper
}

// NewRootCmd creates the root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	app := &appContext{v: viper.New()}
	app.v.SetEnvPrefix(EnvPrefix)
	app.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           BinaryName,
		Short:         "Track a card through cuts and riffle shuffles",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			return app.v.BindPFlags(cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagLogFormat, "plain", "log format (plain|json)")
	rootCmd.PersistentFlags().String(flagSeed, "", "seed for shuffles and draws; random when empty")

	rootCmd.AddCommand(
		NewDeckCmd(),
		ManipulateCmd(app),
		FindCmd(app),
		PerformCmd(app),
		SimulateCmd(app),
	)
	return rootCmd
}

// logger writes to w at the configured level and format.
func (a *appContext) logger(w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(a.v.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.LevelOption(level)}
	switch format := a.v.GetString(flagLogFormat); format {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log.NewLogger(w, opts...), nil
}

// randomness returns a HashRNG over the configured seed, or over fresh
// entropy when no seed is set.
func (a *appContext) randomness(salt string) (cards.Randomness, error) {
	seed := []byte(a.v.GetString(flagSeed))
	if len(seed) == 0 {
		seed = make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
	}
	return cards.NewHashRNG(append(seed, salt...)), nil
}
