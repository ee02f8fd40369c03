package bipgen

import (
	"math/rand/v2"
	"time"
)

// NewRand creates a PCG-backed random source for a run.
// A zero seed is replaced by a time-based one; the seed actually used is
// returned so it can be logged and replayed.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^pcgStream)), seed
}

const pcgStream = 0x9e3779b97f4a7c15

// between returns a uniform integer in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
