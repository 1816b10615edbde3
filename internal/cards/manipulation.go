package cards

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
)

// Kind identifies a manipulation variant.
type Kind string

const (
	KindCut             Kind = "cut"
	KindCutTo           Kind = "cutTo"
	KindRiffle          Kind = "riffle"
	KindImperfectRiffle Kind = "imperfectRiffle"
)

// Manipulation is one operation applied to a deck with Deck.Manipulate.
// Build it with Cut, CutTo, RiffleShuffle or NonPerfectRiffleShuffle.
type Manipulation struct {
	kind Kind
	n    int
	dest *Deck
	rng  Randomness
}

// Cut moves the top n cards to the bottom.
func Cut(n int) Manipulation {
	return Manipulation{kind: KindCut, n: n}
}

// CutTo moves the top n cards, in order, on top of dest.
func CutTo(n int, dest *Deck) Manipulation {
	return Manipulation{kind: KindCutTo, n: n, dest: dest}
}

// RiffleShuffle is a perfect out-shuffle: the top ceil(L/2) cards and the
// bottom floor(L/2) cards interleave one by one, top half first.
func RiffleShuffle() Manipulation {
	return Manipulation{kind: KindRiffle}
}

// NonPerfectRiffleShuffle interleaves the same halves in clumps whose sizes
// and starting half are drawn from rng.
func NonPerfectRiffleShuffle(rng Randomness) Manipulation {
	return Manipulation{kind: KindImperfectRiffle, rng: rng}
}

func (m Manipulation) Kind() Kind { return m.kind }

// N is the cut size for KindCut and KindCutTo.
func (m Manipulation) N() int { return m.n }

func (m Manipulation) String() string {
	switch m.kind {
	case KindCut, KindCutTo:
		return string(m.kind) + "(" + strconv.Itoa(m.n) + ")"
	default:
		return string(m.kind)
	}
}

// Manipulate applies m in place. Arguments are validated before anything
// moves, so a failed call changes nothing.
func (d *Deck) Manipulate(m Manipulation) error {
	switch m.kind {
	case KindCut:
		if err := d.checkCut(m.n); err != nil {
			return err
		}
		d.cards = cut(d.cards, m.n)
		return nil

	case KindCutTo:
		if err := d.checkCut(m.n); err != nil {
			return err
		}
		if m.dest == nil {
			return errorsmod.Wrap(ErrInvalidManipulation, "cutTo: nil destination")
		}
		if m.dest == d {
			return errorsmod.Wrap(ErrInvalidManipulation, "cutTo: destination is the source deck")
		}
		moved := append([]Card(nil), d.cards[:m.n]...)
		d.cards = append(d.cards[:0:0], d.cards[m.n:]...)
		m.dest.cards = append(moved, m.dest.cards...)
		return nil

	case KindRiffle:
		d.cards = riffle(d.cards)
		return nil

	case KindImperfectRiffle:
		if m.rng == nil {
			return errorsmod.Wrap(ErrInvalidManipulation, "imperfectRiffle: nil randomness")
		}
		d.cards = imperfectRiffle(d.cards, m.rng)
		return nil

	default:
		return errorsmod.Wrapf(ErrInvalidManipulation, "unknown kind %q", m.kind)
	}
}

func (d *Deck) checkCut(n int) error {
	if n < 0 || n > len(d.cards) {
		return errorsmod.Wrapf(ErrOutOfRange, "cut %d of %d cards", n, len(d.cards))
	}
	return nil
}

// Position reports where the card at pos in a deck of count cards lands after
// m. Only the deterministic single-deck variants (Cut, RiffleShuffle) have an
// answer.
func (m Manipulation) Position(pos, count int) (int, error) {
	if pos < 0 || pos >= count {
		return 0, errorsmod.Wrapf(ErrOutOfRange, "position %d of %d", pos, count)
	}
	switch m.kind {
	case KindCut:
		if m.n < 0 || m.n > count {
			return 0, errorsmod.Wrapf(ErrOutOfRange, "cut %d of %d cards", m.n, count)
		}
		return (pos - m.n + count) % count, nil
	case KindRiffle:
		top := (count + 1) / 2
		if pos < top {
			return 2 * pos, nil
		}
		return 2*(pos-top) + 1, nil
	default:
		return 0, errorsmod.Wrapf(ErrInvalidManipulation, "%s has no positional form", m.kind)
	}
}

// TrackPosition folds Position over ops.
func TrackPosition(pos, count int, ops ...Manipulation) (int, error) {
	for _, op := range ops {
		next, err := op.Position(pos, count)
		if err != nil {
			return 0, err
		}
		pos = next
	}
	return pos, nil
}

func cut(cs []Card, n int) []Card {
	out := make([]Card, 0, len(cs))
	out = append(out, cs[n:]...)
	return append(out, cs[:n]...)
}

func halves(cs []Card) (top, bottom []Card) {
	mid := (len(cs) + 1) / 2
	return cs[:mid], cs[mid:]
}

func riffle(cs []Card) []Card {
	top, bottom := halves(cs)
	out := make([]Card, 0, len(cs))
	for i := range top {
		out = append(out, top[i])
		if i < len(bottom) {
			out = append(out, bottom[i])
		}
	}
	return out
}

// clumpWeights[i] is the relative chance that a half drops i+1 cards before
// the other half takes over.
var clumpWeights = [...]int{6, 3, 2, 1}

func clumpSize(rng Randomness) int {
	total := 0
	for _, w := range clumpWeights {
		total += w
	}
	r := rng.Intn(total)
	for i, w := range clumpWeights {
		if r < w {
			return i + 1
		}
		r -= w
	}
	return len(clumpWeights)
}

func imperfectRiffle(cs []Card, rng Randomness) []Card {
	top, bottom := halves(cs)
	packets := [2][]Card{top, bottom}
	out := make([]Card, 0, len(cs))

	cur := rng.Intn(2)
	for len(packets[0]) > 0 && len(packets[1]) > 0 {
		k := min(clumpSize(rng), len(packets[cur]))
		out = append(out, packets[cur][:k]...)
		packets[cur] = packets[cur][k:]
		cur = 1 - cur
	}
	out = append(out, packets[0]...)
	return append(out, packets[1]...)
}
