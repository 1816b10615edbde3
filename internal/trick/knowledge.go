package trick

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
	"github.com/westonized/ballin-octo-wookie/internal/codec"
)

// Knowledge is an append-only log carried between sessions. Its token is a
// sequence of netstring records. A record's payload is itself a list of
// netstring fields whose first field names the record kind:
//
//	ring         <deck token>
//	observation  <card> <role> <size> <previous> <observed> <position>...
//
// A bare deck token is also a valid record and reads as a ring record, so a
// deck token on its own is a knowledge token and may be appended to one.
type Knowledge struct {
	token   string
	records []record
}

const (
	kindRing        = "ring"
	kindObservation = "observation"
)

type record struct {
	kind string
	deck *cards.Deck
	obs  Observation
}

// Observation is what one reconciled packet taught us.
type Observation struct {
	Card cards.Card
	Role Role
	// Size is the packet length the positions refer to: the observed length
	// for RoleInserted, one more than that for RoleTaken.
	Size      int
	Previous  string
	Observed  string
	Positions []int
}

// ParseKnowledge decodes a knowledge token. The empty string is empty
// knowledge.
func ParseKnowledge(token string) (Knowledge, error) {
	payloads, err := codec.Split(token)
	if err != nil {
		return Knowledge{}, errorsmod.Wrapf(cards.ErrDeserialization, "%v", err)
	}
	k := Knowledge{token: token, records: make([]record, 0, len(payloads))}
	for i, p := range payloads {
		rec, err := parseRecord(p)
		if err != nil {
			return Knowledge{}, errorsmod.Wrapf(err, "record %d", i)
		}
		k.records = append(k.records, rec)
	}
	return k, nil
}

// NewKnowledge returns a token holding the single reference deck d.
func NewKnowledge(d *cards.Deck) string {
	return Knowledge{}.WithReference(d).String()
}

// Append adds deck as the newest reference of a knowledge token.
func Append(knowledge string, deck *cards.Deck) (string, error) {
	k, err := ParseKnowledge(knowledge)
	if err != nil {
		return "", err
	}
	return k.WithReference(deck).String(), nil
}

func isBareDeck(payload string) bool {
	return payload == "" || payload[0] < '0' || payload[0] > '9'
}

func parseRecord(payload string) (record, error) {
	if isBareDeck(payload) {
		d, err := cards.Load(codec.Field(payload))
		if err != nil {
			return record{}, err
		}
		return record{kind: kindRing, deck: d}, nil
	}

	fields, err := codec.Split(payload)
	if err != nil {
		return record{}, errorsmod.Wrapf(cards.ErrDeserialization, "%v", err)
	}
	if len(fields) == 0 {
		return record{}, errorsmod.Wrap(cards.ErrDeserialization, "empty record")
	}

	switch fields[0] {
	case kindRing:
		if len(fields) != 2 {
			return record{}, errorsmod.Wrapf(cards.ErrDeserialization, "ring record has %d fields", len(fields))
		}
		d, err := cards.Load(fields[1])
		if err != nil {
			return record{}, err
		}
		return record{kind: kindRing, deck: d}, nil

	case kindObservation:
		obs, err := parseObservation(fields[1:])
		if err != nil {
			return record{}, err
		}
		return record{kind: kindObservation, obs: obs}, nil

	default:
		return record{}, errorsmod.Wrapf(cards.ErrDeserialization, "unknown record kind %q", fields[0])
	}
}

func parseObservation(fields []string) (Observation, error) {
	if len(fields) < 6 {
		return Observation{}, errorsmod.Wrapf(cards.ErrDeserialization, "observation has %d fields", len(fields)+1)
	}
	c, err := cards.ParseCard(fields[0])
	if err != nil {
		return Observation{}, err
	}
	role := Role(fields[1])
	if role != RoleTaken && role != RoleInserted {
		return Observation{}, errorsmod.Wrapf(cards.ErrDeserialization, "unknown role %q", fields[1])
	}
	prev, err := cards.Load(fields[3])
	if err != nil {
		return Observation{}, err
	}
	if !prev.Contains(c) {
		return Observation{}, errorsmod.Wrapf(cards.ErrDeserialization, "%s is not in the previous deck", c)
	}
	observed, err := cards.Load(fields[4])
	if err != nil {
		return Observation{}, err
	}
	// Size is fixed by the observed packet.
	want := observed.Count()
	if role == RoleTaken {
		want++
	}
	size, err := strconv.Atoi(fields[2])
	if err != nil || size != want {
		return Observation{}, errorsmod.Wrapf(cards.ErrDeserialization, "packet size %q, want %d for %s", fields[2], want, role)
	}

	positions := make([]int, 0, len(fields)-5)
	for _, f := range fields[5:] {
		p, err := strconv.Atoi(f)
		if err != nil || p < 0 || p >= size {
			return Observation{}, errorsmod.Wrapf(cards.ErrDeserialization, "position %q in packet of %d", f, size)
		}
		positions = append(positions, p)
	}
	return Observation{
		Card:      c,
		Role:      role,
		Size:      size,
		Previous:  fields[3],
		Observed:  fields[4],
		Positions: positions,
	}, nil
}

// WithReference returns k extended by a ring record for d. k is unchanged.
func (k Knowledge) WithReference(d *cards.Deck) Knowledge {
	enc := codec.Field(codec.Join(kindRing, d.Serialize()))
	return k.with(enc, record{kind: kindRing, deck: d.Clone()})
}

// WithObservation returns k extended by o. k is unchanged.
func (k Knowledge) WithObservation(o Observation) Knowledge {
	fields := []string{
		kindObservation,
		o.Card.String(),
		string(o.Role),
		strconv.Itoa(o.Size),
		o.Previous,
		o.Observed,
	}
	for _, p := range o.Positions {
		fields = append(fields, strconv.Itoa(p))
	}
	o.Positions = append([]int(nil), o.Positions...)
	return k.with(codec.Field(codec.Join(fields...)), record{kind: kindObservation, obs: o})
}

func (k Knowledge) with(enc string, rec record) Knowledge {
	records := make([]record, len(k.records), len(k.records)+1)
	copy(records, k.records)
	return Knowledge{token: k.token + enc, records: append(records, rec)}
}

// Reference returns a copy of the newest reference deck.
func (k Knowledge) Reference() (*cards.Deck, error) {
	for i := len(k.records) - 1; i >= 0; i-- {
		if k.records[i].kind == kindRing {
			return k.records[i].deck.Clone(), nil
		}
	}
	return nil, errorsmod.Wrap(cards.ErrDeserialization, "knowledge holds no reference deck")
}

// Observations returns every recorded observation, oldest first.
func (k Knowledge) Observations() []Observation {
	var out []Observation
	for _, r := range k.records {
		if r.kind == kindObservation {
			out = append(out, r.obs)
		}
	}
	return out
}

// Len is the number of records.
func (k Knowledge) Len() int {
	return len(k.records)
}

func (k Knowledge) String() string {
	return k.token
}
