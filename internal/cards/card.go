package cards

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// Rank is 1 (Ace) .. 13 (King).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suit in canonical deck order.
type Suit uint8

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

const (
	rankChars = "A23456789TJQK"
	suitChars = "SHDC"

	// DeckSize is the number of cards in a standard deck.
	DeckSize = 52
)

// Card is a single playing card. Two cards are the same card iff rank and
// suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

func (r Rank) Valid() bool { return r >= Ace && r <= King }

func (s Suit) Valid() bool { return s >= Spades && s <= Clubs }

func (c Card) Valid() bool { return c.Rank.Valid() && c.Suit.Valid() }

// String returns the two-byte code [SHDC][A23456789TJQK], e.g. "SA", "HT".
// Invalid cards render as "??".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{suitChars[c.Suit-1], rankChars[c.Rank-1]})
}

// MarshalText implements encoding.TextMarshaler.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errorsmod.Wrapf(ErrInvalidCard, "rank=%d suit=%d", c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard is the inverse of Card.String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, errorsmod.Wrapf(ErrDeserialization, "card code %q", s)
	}
	suit := strings.IndexByte(suitChars, s[0])
	rank := strings.IndexByte(rankChars, s[1])
	if suit < 0 || rank < 0 {
		return Card{}, errorsmod.Wrapf(ErrDeserialization, "card code %q", s)
	}
	return Card{Rank: Rank(rank + 1), Suit: Suit(suit + 1)}, nil
}

// MustParseCard is ParseCard for literals in tests and examples.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(fmt.Sprintf("cards: %v", err))
	}
	return c
}
