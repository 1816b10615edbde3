package trick

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
)

// Role says how the identified card relates to the observed packet.
type Role string

const (
	// RoleTaken: the card was taken out of the packet.
	RoleTaken Role = "taken"
	// RoleInserted: the card was put into the packet.
	RoleInserted Role = "inserted"
)

// weightEpsilon separates a real lead from float noise when ranking
// candidates.
const weightEpsilon = 1e-9

// A session over a reference ring of N cards is: cuts, a riffle of the top
// ceil(N/2) against the bottom floor(N/2), a split that moves the top
// floor(N/2) cards to a receiving packet, and one card moved from the
// remainder into the receiving packet.
//
// Cuts rotate the ring and a riffle keeps each half in order, so the
// receiving packet before the insert is a prefix of two ring arcs whose
// starts lie half a ring apart, and the remainder before the take is the
// matching pair of suffixes whose ends lie half a ring apart. A candidate is
// a card whose removal (or re-insertion) restores that shape.

type candidate struct {
	index     int
	positions []int
	weight    float64
}

type reconciler struct {
	ring    *DeckRing
	learned histogram
}

func newReconciler(ring *DeckRing, learned histogram) (*reconciler, error) {
	if ring.Len() < 2 {
		return nil, errorsmod.Wrapf(ErrInconsistentState, "reference of %d cards", ring.Len())
	}
	seen := make(map[cards.Card]bool, ring.Len())
	for _, c := range ring.cards {
		if seen[c] {
			return nil, errorsmod.Wrapf(ErrInconsistentState, "%s appears twice in the reference", c)
		}
		seen[c] = true
	}
	return &reconciler{ring: ring, learned: learned}, nil
}

// indices maps a packet to ring positions.
func (r *reconciler) indices(packet []cards.Card) ([]int, error) {
	out := make([]int, len(packet))
	seen := make(map[int]bool, len(packet))
	for i, c := range packet {
		p, err := r.ring.FindCard(c)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInconsistentState, "%s is not in the reference", c)
		}
		if seen[p.Index()] {
			return nil, errorsmod.Wrapf(ErrInconsistentState, "%s appears twice in the packet", c)
		}
		seen[p.Index()] = true
		out[i] = p.Index()
	}
	return out, nil
}

// chainEnds splits a packet into runs of ring-consecutive cards that appear
// in packet order. It returns the ring index of each run's first and last
// card.
func (r *reconciler) chainEnds(idx []int) (starts, ends []int) {
	n := r.ring.Len()
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	for i, x := range idx {
		pos[x] = i
	}
	for i, x := range idx {
		if p := pos[(x+n-1)%n]; p < 0 || p > i {
			starts = append(starts, x)
		}
		if s := pos[(x+1)%n]; s < 0 || s < i {
			ends = append(ends, x)
		}
	}
	return starts, ends
}

func (r *reconciler) halfApart(a, b int) bool {
	n := r.ring.Len()
	d := r.ring.At(a).Distance(r.ring.At(b))
	return d == (n+1)/2 || d == n/2
}

func (r *reconciler) twoArcs(marks []int) bool {
	switch len(marks) {
	case 0, 1:
		return true
	case 2:
		return r.halfApart(marks[0], marks[1])
	default:
		return false
	}
}

func (r *reconciler) validReceiving(idx []int) bool {
	starts, _ := r.chainEnds(idx)
	return r.twoArcs(starts)
}

func (r *reconciler) validRemainder(idx []int) bool {
	_, ends := r.chainEnds(idx)
	return r.twoArcs(ends)
}

// candidates lists every card that explains the packet, with the role the
// packet size implies and the packet length its positions refer to.
func (r *reconciler) candidates(idx []int) (Role, int, []candidate, error) {
	n := r.ring.Len()
	split := n / 2

	switch len(idx) {
	case split + 1:
		var out []candidate
		rest := make([]int, 0, len(idx)-1)
		for i := range idx {
			rest = append(append(rest[:0], idx[:i]...), idx[i+1:]...)
			if r.validReceiving(rest) {
				out = append(out, candidate{index: idx[i], positions: []int{i}})
			}
		}
		return RoleInserted, len(idx), out, nil

	case n - split - 1:
		present := make([]bool, n)
		for _, x := range idx {
			present[x] = true
		}
		var out []candidate
		full := make([]int, len(idx)+1)
		for x := 0; x < n; x++ {
			if present[x] {
				continue
			}
			var positions []int
			for p := 0; p <= len(idx); p++ {
				copy(full, idx[:p])
				full[p] = x
				copy(full[p+1:], idx[p:])
				if r.validRemainder(full) {
					positions = append(positions, p)
				}
			}
			if len(positions) > 0 {
				out = append(out, candidate{index: x, positions: positions})
			}
		}
		return RoleTaken, len(idx) + 1, out, nil

	default:
		return "", 0, nil, errorsmod.Wrapf(ErrInconsistentState,
			"packet of %d cards cannot come from a reference of %d", len(idx), n)
	}
}

// tent is the prior on where a hand cut lands in a packet: the middle is
// likelier than the edges.
func tent(p, size int) float64 {
	return float64(min(p+1, size-p))
}

// choose weighs the candidates and returns the heaviest. It fails with
// ErrCardNotFound when there is none and ErrInconsistentState when the lead
// is shared.
func (r *reconciler) choose(role Role, size int, cands []candidate) (candidate, error) {
	if len(cands) == 0 {
		return candidate{}, errorsmod.Wrap(ErrCardNotFound, "no card explains the packet")
	}
	best := -1
	tied := false
	for i := range cands {
		w := 0.0
		for _, p := range cands[i].positions {
			w += tent(p, size)/float64(size) + r.learned.mass(role, size, p)
		}
		cands[i].weight = w

		switch {
		case best < 0 || w > cands[best].weight+weightEpsilon:
			best, tied = i, false
		case w > cands[best].weight-weightEpsilon:
			tied = true
		}
	}
	if tied {
		return candidate{}, errorsmod.Wrapf(ErrInconsistentState,
			"%d candidates share the lead at %s", len(cands), r.ring.OfIndex(cands[best].index))
	}
	return cands[best], nil
}

// histogram accumulates the positions past observations settled on, keyed by
// role and packet size.
type histogram map[histogramKey][]float64

type histogramKey struct {
	role Role
	size int
}

func (h histogram) add(o Observation) {
	if len(o.Positions) == 0 || o.Size <= 0 || o.Size > cards.DeckSize+1 {
		return
	}
	key := histogramKey{role: o.Role, size: o.Size}
	bins := h[key]
	if bins == nil {
		bins = make([]float64, o.Size)
		h[key] = bins
	}
	share := 1 / float64(len(o.Positions))
	for _, p := range o.Positions {
		if p >= 0 && p < len(bins) {
			bins[p] += share
		}
	}
}

func (h histogram) mass(role Role, size, p int) float64 {
	bins := h[histogramKey{role: role, size: size}]
	if p < 0 || p >= len(bins) {
		return 0
	}
	return bins[p]
}
