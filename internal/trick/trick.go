package trick

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
)

// Trick names the card a session moved between the two packets of a split
// deck.
//
// In exact mode it is bound to a DeckRing the caller built from decks it
// manipulated itself. In learned mode it is rebuilt from a knowledge token:
// the newest reference deck stands in for the ring, and the positions of
// earlier observations weigh ambiguous packets.
type Trick struct {
	ring      *DeckRing
	knowledge Knowledge
	learned   histogram
	logger    log.Logger
}

type Option func(*Trick)

// WithLogger sets the logger used for reconciliation diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(t *Trick) {
		t.logger = logger.With("module", ModuleName)
	}
}

// New binds a trick to ring (exact mode).
func New(ring *DeckRing, opts ...Option) *Trick {
	t := &Trick{
		ring:    ring,
		learned: histogram{},
		logger:  log.NewNopLogger(),
	}
	if d, err := cards.NewDeckFromCards(ring.Cards()); err == nil {
		t.knowledge = Knowledge{}.WithReference(d)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromKnowledge rebuilds a trick from a knowledge token (learned mode).
func FromKnowledge(token string, opts ...Option) (*Trick, error) {
	k, err := ParseKnowledge(token)
	if err != nil {
		return nil, err
	}
	ref, err := k.Reference()
	if err != nil {
		return nil, err
	}
	t := &Trick{
		ring:      NewDeckRing(ref),
		knowledge: k,
		learned:   histogram{},
		logger:    log.NewNopLogger(),
	}
	for _, o := range k.Observations() {
		t.learned.add(o)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Trick) Ring() *DeckRing {
	return t.ring
}

// Knowledge returns the token this trick reasons from.
func (t *Trick) Knowledge() string {
	return t.knowledge.String()
}

// Result is the outcome of Perform.
type Result struct {
	Card cards.Card `json:"card"`
	Role Role       `json:"role"`
	// NewKnowledge is the prior knowledge followed by this observation.
	NewKnowledge string `json:"knowledge"`
}

// FindCard names the card moved into or out of deck. The card comes from the
// ring, so it is equal by value to the one in the packet that holds it.
func (t *Trick) FindCard(deck *cards.Deck) (cards.Card, error) {
	best, _, _, err := t.identify(deck.Cards())
	if err != nil {
		return cards.Card{}, err
	}
	return t.ring.OfIndex(best.index), nil
}

// Perform reconciles the observed packet token against the trick's reference
// and records what it found.
func (t *Trick) Perform(observed string) (Result, error) {
	packet, err := cards.Load(observed)
	if err != nil {
		return Result{}, err
	}
	best, role, size, err := t.identify(packet.Cards())
	if errors.Is(err, ErrCardNotFound) {
		return Result{}, errorsmod.Wrapf(ErrInconsistentState, "%v", err)
	}
	if err != nil {
		return Result{}, err
	}

	ref, err := cards.NewDeckFromCards(t.ring.Cards())
	if err != nil {
		return Result{}, errorsmod.Wrapf(ErrInconsistentState, "%v", err)
	}
	c := t.ring.OfIndex(best.index)
	next := t.knowledge.WithObservation(Observation{
		Card:      c,
		Role:      role,
		Size:      size,
		Previous:  ref.Serialize(),
		Observed:  packet.Serialize(),
		Positions: best.positions,
	})
	return Result{Card: c, Role: role, NewKnowledge: next.String()}, nil
}

func (t *Trick) identify(packet []cards.Card) (candidate, Role, int, error) {
	r, err := newReconciler(t.ring, t.learned)
	if err != nil {
		return candidate{}, "", 0, err
	}
	idx, err := r.indices(packet)
	if err != nil {
		return candidate{}, "", 0, err
	}
	role, size, cands, err := r.candidates(idx)
	if err != nil {
		return candidate{}, "", 0, err
	}
	best, err := r.choose(role, size, cands)
	if err != nil {
		t.logger.Debug("packet not reconciled", "role", role, "candidates", len(cands), "err", err)
		return candidate{}, "", 0, err
	}
	t.logger.Debug("packet reconciled",
		"role", role,
		"candidates", len(cands),
		"card", t.ring.OfIndex(best.index).String(),
		"weight", best.weight,
	)
	return best, role, size, nil
}

// Perform reconciles observed against previous without any other state.
// previous is a knowledge token whose newest reference is the deck before the
// session; a bare deck token will do.
func Perform(previous, observed string) (Result, error) {
	t, err := FromKnowledge(previous)
	if err != nil {
		return Result{}, err
	}
	return t.Perform(observed)
}
