package trick

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
)

// DeckRing is a circular index space over snapshots of one or more decks.
// Index arithmetic wraps, so a card can be addressed relative to an anchor no
// matter which physical pile it later ends up in.
type DeckRing struct {
	cards []cards.Card
}

// NewDeckRing returns a ring holding decks in order, oldest first.
func NewDeckRing(decks ...*cards.Deck) *DeckRing {
	r := &DeckRing{}
	for _, d := range decks {
		r.Add(d)
	}
	return r
}

// Add appends a copy of d's current order. Later changes to d do not reach
// the ring.
func (r *DeckRing) Add(d *cards.Deck) {
	r.cards = append(r.cards, d.Cards()...)
}

// Len returns the number of cards in the ring.
func (r *DeckRing) Len() int {
	return len(r.cards)
}

// Cards returns a copy of the ring contents in addition order.
func (r *DeckRing) Cards() []cards.Card {
	return append([]cards.Card(nil), r.cards...)
}

func (r *DeckRing) wrap(idx int) int {
	n := len(r.cards)
	if n == 0 {
		return 0
	}
	return (idx%n + n) % n
}

// OfIndex returns the card at idx mod Len. An empty ring yields the zero Card.
func (r *DeckRing) OfIndex(idx int) cards.Card {
	if len(r.cards) == 0 {
		return cards.Card{}
	}
	return r.cards[r.wrap(idx)]
}

// Next returns the card after idx, wrapping from the last card to the first.
func (r *DeckRing) Next(idx int) cards.Card {
	return r.OfIndex(r.wrap(idx) + 1)
}

// NextIs reports whether c follows the card at idx.
func (r *DeckRing) NextIs(idx int, c cards.Card) bool {
	return len(r.cards) > 0 && r.Next(idx) == c
}

// FindCard points at the first occurrence of c.
func (r *DeckRing) FindCard(c cards.Card) (TrickPointer, error) {
	for i, x := range r.cards {
		if x == c {
			return TrickPointer{ring: r, index: i}, nil
		}
	}
	return TrickPointer{}, errorsmod.Wrapf(ErrCardNotFound, "%s is not in the ring", c)
}

// At returns a pointer to idx mod Len.
func (r *DeckRing) At(idx int) TrickPointer {
	return TrickPointer{ring: r, index: r.wrap(idx)}
}

// TrickPointer is a position on a DeckRing. It does not own the ring; the
// ring must outlive it.
type TrickPointer struct {
	ring  *DeckRing
	index int
}

func (p TrickPointer) Ring() *DeckRing { return p.ring }

func (p TrickPointer) Index() int { return p.index }

func (p TrickPointer) Card() cards.Card {
	if p.ring == nil {
		return cards.Card{}
	}
	return p.ring.OfIndex(p.index)
}

func (p TrickPointer) Next() TrickPointer { return p.Offset(1) }

func (p TrickPointer) Prev() TrickPointer { return p.Offset(-1) }

// Offset moves k positions around the ring; negative k moves backwards.
func (p TrickPointer) Offset(k int) TrickPointer {
	if p.ring == nil || p.ring.Len() == 0 {
		return p
	}
	return TrickPointer{ring: p.ring, index: p.ring.wrap(p.index + k%p.ring.Len())}
}

// Distance is the number of forward steps from p to q, in [0, Len).
func (p TrickPointer) Distance(q TrickPointer) int {
	if p.ring == nil {
		return 0
	}
	return p.ring.wrap(q.index - p.index)
}
