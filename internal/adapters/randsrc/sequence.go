package randsrc

import "sync"

// Sequence replays fixed values in [0, 1), cycling when exhausted. IntN
// scales the next value, so 0.5 yields n/2.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("randsrc: IntN called with n <= 0")
	}

	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
