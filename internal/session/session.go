package session

import (
	"errors"

	"cosmossdk.io/log"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
	"github.com/westonized/ballin-octo-wookie/internal/trick"
)

// Runner plays scripted sessions against the trick engine.
type Runner struct {
	cfg    Config
	logger log.Logger
}

// NewRunner validates cfg and returns a runner that logs to logger.
func NewRunner(cfg Config, logger log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, logger: logger.With("module", "session")}, nil
}

// Outcome is one played session.
type Outcome struct {
	Moved  cards.Card
	Packet string
	Result trick.Result
	// Next is the riffled deck, before the split. The following session starts
	// from it.
	Next *cards.Deck
}

func (o Outcome) Correct() bool {
	return o.Result.Card == o.Moved
}

// Run plays one session from actual and asks the engine which card moved.
// knowledge is what the previous session returned ("" for none). actual is
// not modified.
func (r *Runner) Run(actual *cards.Deck, knowledge string, rng cards.Randomness) (Outcome, error) {
	previous, err := trick.Append(knowledge, actual)
	if err != nil {
		return Outcome{}, err
	}

	d := actual.Clone()
	for i := 0; i < r.cfg.Cuts; i++ {
		if err := d.Manipulate(cards.Cut(draw(rng, r.cfg.CutMin, r.cfg.CutMax))); err != nil {
			return Outcome{}, err
		}
	}
	shuffle := cards.NonPerfectRiffleShuffle(rng)
	if r.cfg.Perfect {
		shuffle = cards.RiffleShuffle()
	}
	if err := d.Manipulate(shuffle); err != nil {
		return Outcome{}, err
	}
	next := d.Clone()

	receiving := cards.NewEmptyDeck()
	if err := d.Manipulate(cards.CutTo(d.Count()/2, receiving)); err != nil {
		return Outcome{}, err
	}
	moved, err := d.TakeCard(draw(rng, r.cfg.TakeMin, r.cfg.TakeMax))
	if err != nil {
		return Outcome{}, err
	}
	if err := receiving.InsertCard(moved, draw(rng, r.cfg.InsertMin, r.cfg.InsertMax)); err != nil {
		return Outcome{}, err
	}

	packet := d
	if rng.Intn(2) == 1 {
		packet = receiving
	}

	res, err := trick.Perform(previous, packet.Serialize())
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Moved: moved, Packet: packet.Serialize(), Result: res, Next: next}
	r.logger.Debug("session played",
		"moved", moved.String(),
		"named", res.Card.String(),
		"role", res.Role,
		"correct", out.Correct(),
	)
	return out, nil
}

// Report counts correct identifications per session index across runs.
type Report struct {
	Runs int   `json:"runs"`
	Hits []int `json:"hits"`
}

// Rate is the share of runs in which session i named the moved card.
func (r Report) Rate(i int) float64 {
	if r.Runs == 0 || i < 0 || i >= len(r.Hits) {
		return 0
	}
	return float64(r.Hits[i]) / float64(r.Runs)
}

// Simulate plays runs independent chains of sessions, each starting from a
// fresh deck with no knowledge. rngFor supplies the randomness of each run.
// A session the engine cannot reconcile counts as a miss and leaves the
// knowledge as it was.
func (r *Runner) Simulate(sessions, runs int, rngFor func(run int) cards.Randomness) (Report, error) {
	rep := Report{Runs: runs, Hits: make([]int, sessions)}
	for run := 0; run < runs; run++ {
		rng := rngFor(run)
		actual := cards.NewDeck()
		knowledge := ""
		for s := 0; s < sessions; s++ {
			out, err := r.Run(actual, knowledge, rng)
			if errors.Is(err, trick.ErrInconsistentState) {
				r.logger.Info("session not reconciled", "run", run, "session", s, "err", err)
				// The riffled deck is lost with the error; restart the chain.
				actual = cards.NewDeck()
				continue
			}
			if err != nil {
				return Report{}, err
			}
			if out.Correct() {
				rep.Hits[s]++
			}
			knowledge = out.Result.NewKnowledge
			actual = out.Next
		}
	}
	return rep, nil
}
