package randsrc

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a mutex-guarded PCG generator, safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New seeds a generator. A zero seed derives one from the wall clock so
// that repeated runs differ, as the simulated services expect.
func New(seed int64) *Source {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return &Source{rng: rand.New(rand.NewPCG(s, s>>1|1))}
}

func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
