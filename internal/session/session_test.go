package session

import (
	"math/rand"
	"strconv"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
	"github.com/westonized/ballin-octo-wookie/internal/trick"
)

func newRunner(t *testing.T, cfg Config) *Runner {
	t.Helper()
	r, err := NewRunner(cfg, log.NewNopLogger())
	require.NoError(t, err)
	return r
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := map[string]func(*Config){
		"negative cuts":   func(c *Config) { c.Cuts = -1 },
		"empty cut range": func(c *Config) { c.CutMax = c.CutMin },
		"negative take":   func(c *Config) { c.TakeMin = -2 },
		"inverted insert": func(c *Config) { c.InsertMin, c.InsertMax = 10, 3 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), cards.ErrOutOfRange, name)

		_, err := NewRunner(cfg, log.NewNopLogger())
		require.Error(t, err, name)
	}
}

// Moves stay two cards clear of both ends of the 26-card halves.
func TestDefaultConfig_AvoidsPacketEdges(t *testing.T) {
	cfg := DefaultConfig()
	half := cards.DeckSize / 2

	require.GreaterOrEqual(t, cfg.TakeMin, 2)
	require.LessOrEqual(t, cfg.TakeMax, half-2)
	require.GreaterOrEqual(t, cfg.InsertMin, 2)
	require.LessOrEqual(t, cfg.InsertMax, half+1-2)

	rep, err := newRunner(t, cfg).Simulate(4, 20, func(run int) cards.Randomness {
		return rand.New(rand.NewSource(int64(run)))
	})
	require.NoError(t, err)
	for i := range rep.Hits {
		require.Equal(t, 20, rep.Hits[i], "session %d", i)
	}
}

func TestRun_LeavesActualUntouched(t *testing.T) {
	r := newRunner(t, DefaultConfig())
	actual := cards.NewDeck()

	out, err := r.Run(actual, "", rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, cards.NewDeck().Serialize(), actual.Serialize())
	require.Equal(t, cards.DeckSize, out.Next.Count())
	require.True(t, out.Correct())
}

func TestRun_SameSeedSameOutcome(t *testing.T) {
	r := newRunner(t, DefaultConfig())

	a, err := r.Run(cards.NewDeck(), "", cards.NewHashRNG([]byte("seed")))
	require.NoError(t, err)
	b, err := r.Run(cards.NewDeck(), "", cards.NewHashRNG([]byte("seed")))
	require.NoError(t, err)

	require.Equal(t, a.Packet, b.Packet)
	require.Equal(t, a.Result, b.Result)
	require.Equal(t, a.Next.Serialize(), b.Next.Serialize())
}

func TestRun_Perfect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Perfect = true
	r := newRunner(t, cfg)

	for seed := int64(0); seed < 20; seed++ {
		out, err := r.Run(cards.NewDeck(), "", rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		require.True(t, out.Correct(), "seed %d", seed)
	}
}

func TestRun_OutOfRangeTake(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TakeMin, cfg.TakeMax = 30, 40
	r := newRunner(t, cfg)

	_, err := r.Run(cards.NewDeck(), "", rand.New(rand.NewSource(3)))
	require.ErrorIs(t, err, cards.ErrOutOfRange)
}

func TestRun_MalformedKnowledge(t *testing.T) {
	r := newRunner(t, DefaultConfig())
	_, err := r.Run(cards.NewDeck(), "bogus", rand.New(rand.NewSource(3)))
	require.ErrorIs(t, err, cards.ErrDeserialization)
}

func TestRun_KnowledgeGrows(t *testing.T) {
	r := newRunner(t, DefaultConfig())
	rng := rand.New(rand.NewSource(11))

	actual := cards.NewDeck()
	knowledge := ""
	for s := 0; s < 5; s++ {
		out, err := r.Run(actual, knowledge, rng)
		require.NoError(t, err)
		require.Greater(t, len(out.Result.NewKnowledge), len(knowledge))

		k, err := trick.ParseKnowledge(out.Result.NewKnowledge)
		require.NoError(t, err)
		require.Len(t, k.Observations(), s+1)

		knowledge = out.Result.NewKnowledge
		actual = out.Next
	}
}

func TestSimulate(t *testing.T) {
	r := newRunner(t, DefaultConfig())

	rep, err := r.Simulate(6, 25, func(run int) cards.Randomness {
		return cards.NewHashRNG([]byte("run-" + strconv.Itoa(run)))
	})
	require.NoError(t, err)
	require.Equal(t, 25, rep.Runs)
	require.Len(t, rep.Hits, 6)
	for i := range rep.Hits {
		require.Equal(t, 25, rep.Hits[i], "session %d", i)
		require.Equal(t, 1.0, rep.Rate(i))
	}
	require.Zero(t, rep.Rate(6))
	require.Zero(t, Report{}.Rate(0))
}
