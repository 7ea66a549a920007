package bot

import (
	"math/rand/v2"
	"sync"
)

// Reactions picks distinct phrases from a fixed pool.
type Reactions struct {
	mu   sync.Mutex
	rng  *rand.Rand
	pool []string
}

// NewReactions seeds the picker. Equal seeds produce equal sequences.
func NewReactions(seed uint64) *Reactions {
	return &Reactions{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pool: reactionPool,
	}
}

// Pick returns n distinct phrases, sampled without replacement.
// n is capped at the pool size.
func (r *Reactions) Pick(n int) []string {
	shuffled := append([]string(nil), r.pool...)
	n = min(max(n, 0), len(shuffled))

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		j := i + r.rng.IntN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}

func rand64() uint64 { return rand.Uint64() }
