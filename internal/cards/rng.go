package cards

import (
	"crypto/sha256"
	"encoding/binary"
)

// Randomness is the draw capability an imperfect shuffle consumes.
// *math/rand.Rand satisfies it.
type Randomness interface {
	// Intn returns a value in [0, n). n > 0.
	Intn(n int) int
}

// HashRNG is a deterministic stream derived from sha256(seed || counter).
// The same seed always yields the same sequence of draws on every platform.
type HashRNG struct {
	seed    [32]byte
	counter uint64
	buf     [32]byte
	bufPos  int
}

// NewHashRNG returns a generator whose stream is fixed by seed.
func NewHashRNG(seed []byte) *HashRNG {
	return &HashRNG{seed: sha256.Sum256(seed), bufPos: sha256.Size}
}

func (r *HashRNG) read(p []byte) {
	for len(p) > 0 {
		if r.bufPos >= len(r.buf) {
			r.refill()
		}
		n := copy(p, r.buf[r.bufPos:])
		r.bufPos += n
		p = p[n:]
	}
}

func (r *HashRNG) refill() {
	var in [32 + 8]byte
	copy(in[:32], r.seed[:])
	binary.LittleEndian.PutUint64(in[32:], r.counter)
	r.counter++
	r.buf = sha256.Sum256(in[:])
	r.bufPos = 0
}

// Intn draws uniformly from [0, n) by rejection sampling. It panics if n <= 0,
// like math/rand.
func (r *HashRNG) Intn(n int) int {
	if n <= 0 {
		panic("cards: HashRNG.Intn: n must be > 0")
	}
	bound := uint64(n)
	// Largest multiple of bound that fits; draws at or above it are rejected.
	limit := ^uint64(0) - ^uint64(0)%bound
	var b [8]byte
	for {
		r.read(b[:])
		v := binary.LittleEndian.Uint64(b[:])
		if v < limit {
			return int(v % bound)
		}
	}
}
