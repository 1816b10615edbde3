package cards

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/westonized/ballin-octo-wookie/internal/codec"
)

// Deck is an ordered pile of cards; index 0 is the top card.
//
// A Deck is owned by whoever holds it. Every method that fails leaves the deck
// exactly as it was.
type Deck struct {
	cards []Card
}

// NewDeck returns a full deck in canonical order: spades, hearts, diamonds,
// clubs, each Ace through King.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for s := Spades; s <= Clubs; s++ {
		for r := Ace; r <= King; r++ {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// NewEmptyDeck returns a deck holding no cards.
func NewEmptyDeck() *Deck {
	return &Deck{}
}

// NewDeckFromCards copies cs into a new deck. Invalid or repeated cards are
// rejected.
func NewDeckFromCards(cs []Card) (*Deck, error) {
	seen := make(map[Card]bool, len(cs))
	for i, c := range cs {
		if !c.Valid() {
			return nil, errorsmod.Wrapf(ErrInvalidCard, "position %d: rank=%d suit=%d", i, c.Rank, c.Suit)
		}
		if seen[c] {
			return nil, errorsmod.Wrapf(ErrInvalidCard, "position %d: duplicate %s", i, c)
		}
		seen[c] = true
	}
	return &Deck{cards: append([]Card(nil), cs...)}, nil
}

// Count returns the number of cards in d.
func (d *Deck) Count() int {
	return len(d.cards)
}

// Cards returns a copy of the deck, top first.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Clone returns an independent copy of d.
func (d *Deck) Clone() *Deck {
	return &Deck{cards: d.Cards()}
}

// CardAt returns the card at position i, counted from the top.
func (d *Deck) CardAt(i int) (Card, error) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, errorsmod.Wrapf(ErrOutOfRange, "card %d of %d", i, len(d.cards))
	}
	return d.cards[i], nil
}

// IndexOf returns the position of c, or -1.
func (d *Deck) IndexOf(c Card) int {
	for i, x := range d.cards {
		if x == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is in d.
func (d *Deck) Contains(c Card) bool {
	return d.IndexOf(c) >= 0
}

// TakeCard removes and returns the card at position i.
func (d *Deck) TakeCard(i int) (Card, error) {
	c, err := d.CardAt(i)
	if err != nil {
		return Card{}, err
	}
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return c, nil
}

// InsertCard puts c at position i; i == Count() places it at the bottom.
func (d *Deck) InsertCard(c Card, i int) error {
	if i < 0 || i > len(d.cards) {
		return errorsmod.Wrapf(ErrOutOfRange, "insert at %d into %d cards", i, len(d.cards))
	}
	if !c.Valid() {
		return errorsmod.Wrapf(ErrInvalidCard, "rank=%d suit=%d", c.Rank, c.Suit)
	}
	if d.Contains(c) {
		return errorsmod.Wrapf(ErrInvalidCard, "%s is already in the deck", c)
	}
	d.cards = append(d.cards, Card{})
	copy(d.cards[i+1:], d.cards[i:])
	d.cards[i] = c
	return nil
}

// Serialize encodes the current order as a netstring of two-byte card codes.
// Equal decks always produce identical tokens.
func (d *Deck) Serialize() string {
	payload := make([]byte, 0, 2*len(d.cards))
	for _, c := range d.cards {
		payload = append(payload, c.String()...)
	}
	return codec.Field(string(payload))
}

func (d *Deck) String() string {
	return d.Serialize()
}

// Load rebuilds a deck from a Serialize token.
func Load(token string) (*Deck, error) {
	r := codec.NewReader(token)
	payload, err := r.Next()
	if err != nil {
		return nil, errorsmod.Wrapf(ErrDeserialization, "%v", err)
	}
	if !r.Done() {
		return nil, errorsmod.Wrap(ErrDeserialization, "trailing bytes after deck")
	}
	if len(payload)%2 != 0 {
		return nil, errorsmod.Wrapf(ErrDeserialization, "odd payload length %d", len(payload))
	}

	cs := make([]Card, 0, len(payload)/2)
	seen := make(map[Card]bool, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		c, err := ParseCard(payload[i : i+2])
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, errorsmod.Wrapf(ErrDeserialization, "duplicate card %s", c)
		}
		seen[c] = true
		cs = append(cs, c)
	}
	return &Deck{cards: cs}, nil
}
