package core

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the random source used to pick members.
type Rand interface {
	IntN(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a Rand seeded once from the clock. It is safe for concurrent use.
func NewRand() Rand {
	seed := uint64(time.Now().UnixNano())
	return &lockedRand{src: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}
