package session

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
)

// Config scripts one trick session. Ranges are half-open: [Min, Max).
type Config struct {
	Cuts      int  `mapstructure:"cuts"`
	CutMin    int  `mapstructure:"cut-min"`
	CutMax    int  `mapstructure:"cut-max"`
	TakeMin   int  `mapstructure:"take-min"`
	TakeMax   int  `mapstructure:"take-max"`
	InsertMin int  `mapstructure:"insert-min"`
	InsertMax int  `mapstructure:"insert-max"`
	Perfect   bool `mapstructure:"perfect"`
}

// DefaultConfig is six cuts, an imperfect riffle, and a card moved between
// positions 2 and 23 of the halves. A take or insert within two cards of
// either end of a packet can leave a wrong candidate in the lead, so the
// defaults stay clear of those positions.
func DefaultConfig() Config {
	return Config{
		Cuts:      6,
		CutMin:    2,
		CutMax:    50,
		TakeMin:   2,
		TakeMax:   24,
		InsertMin: 2,
		InsertMax: 24,
	}
}

func (c Config) Validate() error {
	if c.Cuts < 0 {
		return errorsmod.Wrapf(cards.ErrOutOfRange, "cuts %d", c.Cuts)
	}
	for _, r := range []struct {
		name     string
		min, max int
	}{
		{"cut", c.CutMin, c.CutMax},
		{"take", c.TakeMin, c.TakeMax},
		{"insert", c.InsertMin, c.InsertMax},
	} {
		if r.min < 0 || r.max <= r.min {
			return errorsmod.Wrapf(cards.ErrOutOfRange, "%s range [%d, %d)", r.name, r.min, r.max)
		}
	}
	return nil
}

func draw(rng cards.Randomness, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}
