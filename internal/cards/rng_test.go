package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashRNG_Deterministic(t *testing.T) {
	a := NewHashRNG([]byte("seed"))
	b := NewHashRNG([]byte("seed"))
	for i := 0; i < 200; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestHashRNG_SeedsDiffer(t *testing.T) {
	a := NewHashRNG([]byte("one"))
	b := NewHashRNG([]byte("two"))
	same := 0
	for i := 0; i < 64; i++ {
		if a.Intn(1<<30) == b.Intn(1<<30) {
			same++
		}
	}
	require.Less(t, same, 2)
}

func TestHashRNG_Range(t *testing.T) {
	r := NewHashRNG(nil)
	counts := make([]int, 7)
	for i := 0; i < 7000; i++ {
		v := r.Intn(7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
		counts[v]++
	}
	for v, n := range counts {
		require.Greater(t, n, 700, "value %d drawn %d times", v, n)
	}
	require.Equal(t, 0, r.Intn(1))
}

func TestHashRNG_PanicsOnNonPositive(t *testing.T) {
	r := NewHashRNG([]byte("x"))
	require.Panics(t, func() { r.Intn(0) })
	require.Panics(t, func() { r.Intn(-3) })
}
