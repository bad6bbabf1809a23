package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness used for tokens, quote sampling and choice shuffling
type Source interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Shuffle pseudo-randomizes the order of n elements using swap
	Shuffle(n int, swap func(i, j int))
}

// Roller is a Source safe for concurrent use
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a uniform value in [0, n). Non-positive n yields 0.
func (r *Roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.random.Intn(n)
}

// Shuffle randomizes the order of n elements
func (r *Roller) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.random.Shuffle(n, swap)
}
