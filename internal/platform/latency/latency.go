package latency

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
)

// Simulator stands in for a network round trip by waiting a fixed delay on
// the supplied clock. A zero delay returns immediately.
type Simulator struct {
	clock clockz.Clock
	delay time.Duration
}

func New(clock clockz.Clock, delay time.Duration) *Simulator {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &Simulator{clock: clock, delay: delay}
}

// None is a simulator that never waits.
func None() *Simulator {
	return &Simulator{clock: clockz.RealClock}
}

func (s *Simulator) Delay() time.Duration { return s.delay }

// Wait blocks for the configured delay or until ctx is done.
func (s *Simulator) Wait(ctx context.Context) error {
	if s == nil || s.delay <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.delay):
		return nil
	}
}
